package todo

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/todo-go/internal/utils"
)

//go:embed todo.schema.json
var schemaJSON []byte

const schemaURL = "todo.schema.json"

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true
	if err := compiler.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema resource: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// Schema returns the bundled JSON Schema for the task file.
func Schema() []byte {
	out := make([]byte, len(schemaJSON))
	copy(out, schemaJSON)
	return out
}

// ValidationError represents a validation error with context.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// SchemaErrors collects the leaf errors of a failed schema validation.
type SchemaErrors []*ValidationError

func (e SchemaErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, ve := range e {
		parts = append(parts, ve.Error())
	}
	return strings.Join(parts, "; ")
}

// ValidationResult contains validation results.
type ValidationResult struct {
	Valid    bool
	Errors   []error
	Warnings []string
}

// validateDocument checks raw task file bytes against the bundled schema.
func validateDocument(data []byte) error {
	schema, err := compileSchema()
	if err != nil {
		return &PersistenceError{Op: "validate", Err: err}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return &PersistenceError{Op: "parse", Err: err}
	}

	if err := schema.Validate(doc); err != nil {
		return &PersistenceError{Op: "validate", Err: schemaErrors(err)}
	}
	return nil
}

func schemaErrors(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	var out SchemaErrors
	collectSchemaErrors(&out, ve)
	if len(out) == 0 {
		return err
	}
	return out
}

func collectSchemaErrors(out *SchemaErrors, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		*out = append(*out, &ValidationError{
			Path: utils.JSONPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(out, cause)
	}
}

// Validate checks the lifecycle invariants of every task. Violations are
// errors; suspicious but harmless values are warnings.
func (l *List) Validate() *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   make([]error, 0),
		Warnings: make([]string, 0),
	}

	for i, task := range l.Todos {
		path := fmt.Sprintf("todos[%d]", i)
		for _, err := range validateTask(task, path) {
			result.Valid = false
			result.Errors = append(result.Errors, err)
		}
		if task.Duration != nil && *task.Duration < 0 {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s.duration: negative value %d", path, *task.Duration))
		}
	}
	return result
}

func validateTask(task Task, path string) []error {
	var errs []error
	if task.Complete != (task.CompleteDate != nil) {
		errs = append(errs, &ValidationError{
			Path: path + ".complete_date",
			Err:  fmt.Errorf("must be set iff complete is true (complete=%t)", task.Complete),
		})
	}
	if task.Tracking && task.StartDate == nil {
		errs = append(errs, &ValidationError{
			Path: path + ".start_date",
			Err:  fmt.Errorf("missing for a tracked task"),
		})
	}
	if task.Duration != nil && !task.Tracking {
		errs = append(errs, &ValidationError{
			Path: path + ".duration",
			Err:  fmt.Errorf("set on a task that was never tracked"),
		})
	}
	if task.Duration != nil && !task.Complete {
		errs = append(errs, &ValidationError{
			Path: path + ".duration",
			Err:  fmt.Errorf("set on a task that is not complete"),
		})
	}
	return errs
}
