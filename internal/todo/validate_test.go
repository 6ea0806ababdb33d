package todo

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func TestListValidate(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		list      List
		wantValid bool
		wantPath  string
	}{
		{
			name: "valid lifecycle",
			list: List{Todos: []Task{
				NewTask("a", false, now),
				NewTask("b", true, now),
				NewTask("c", true, now).Completed(now.Add(time.Hour)),
				NewTask("d", false, now).Completed(now.Add(time.Hour)),
			}},
			wantValid: true,
		},
		{
			name:      "empty list",
			list:      List{},
			wantValid: true,
		},
		{
			name: "complete without complete_date",
			list: List{Todos: []Task{
				{Title: "a", Complete: true},
			}},
			wantValid: false,
			wantPath:  "todos[0].complete_date",
		},
		{
			name: "complete_date on pending task",
			list: List{Todos: []Task{
				{Title: "a", CompleteDate: int64Ptr(1)},
			}},
			wantValid: false,
			wantPath:  "todos[0].complete_date",
		},
		{
			name: "tracked without start_date",
			list: List{Todos: []Task{
				NewTask("ok", false, now),
				{Title: "a", Tracking: true},
			}},
			wantValid: false,
			wantPath:  "todos[1].start_date",
		},
		{
			name: "duration on untracked task",
			list: List{Todos: []Task{
				{Title: "a", Complete: true, CompleteDate: int64Ptr(5), Duration: int64Ptr(5)},
			}},
			wantValid: false,
			wantPath:  "todos[0].duration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.list.Validate()
			if result.Valid != tt.wantValid {
				t.Fatalf("Valid = %t, want %t (errors: %v)", result.Valid, tt.wantValid, result.Errors)
			}
			if tt.wantPath == "" {
				return
			}
			var ve *ValidationError
			if !errors.As(result.Errors[0], &ve) {
				t.Fatalf("error type = %T, want *ValidationError", result.Errors[0])
			}
			if ve.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", ve.Path, tt.wantPath)
			}
		})
	}
}

func TestDecodeReportsSchemaPaths(t *testing.T) {
	_, err := Decode([]byte(`{"todos": [{"title": "ok", "tracking": false, "complete": false}, {"title": 3, "tracking": false, "complete": false}]}`))
	if err == nil {
		t.Fatal("expected error")
	}

	var perr *PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("error type = %T, want *PersistenceError", err)
	}
	if perr.Op != "validate" {
		t.Errorf("Op = %q, want validate", perr.Op)
	}

	var schemaErrs SchemaErrors
	if !errors.As(err, &schemaErrs) {
		t.Fatalf("expected SchemaErrors in chain, got %v", err)
	}
	if !strings.Contains(schemaErrs.Error(), "todos[1].title") {
		t.Errorf("expected path todos[1].title in %q", schemaErrs.Error())
	}
}

func TestSchemaIsCopy(t *testing.T) {
	a := Schema()
	a[0] = 'x'
	if Schema()[0] == 'x' {
		t.Error("Schema() returned shared backing array")
	}
}
