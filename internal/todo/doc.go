// Package todo loads, validates, and persists the task list.
//
// The task file (db.json) is a single JSON document:
//
//	{
//	  "todos": [
//	    {
//	      "title": "Write report",
//	      "start_date": 1700000000000,
//	      "complete_date": null,
//	      "duration": null,
//	      "tracking": true,
//	      "complete": false
//	    }
//	  ]
//	}
//
// Timestamps are integer milliseconds since the Unix epoch; duration is
// elapsed milliseconds. Unset values are written as null.
//
// # Addressing
//
// Users address tasks by 1-based position in insertion order. The Store
// works with 0-based indices; use ParsePosition to translate.
//
// # Invariants
//
//   - complete_date is set iff complete is true
//   - duration is set only if the task was tracked when completed
//   - start_date is set iff tracking has been started
//
// # File Format
//
// The Store rewrites the whole document after every mutation, using
// 2-space indentation and a trailing newline. Writes go to a temporary file
// that is renamed over the target, so a failed write never leaves a
// truncated document behind.
package todo
