// Package checklist holds the checklist rows, the derived completion
// progress, and the view that keeps both in sync with a key-value store.
//
// Two keys are persisted:
//
//	rows      [{"category":"Math","description":"Homework 3","date":"2020-09-10","selected":false}, ...]
//	progress  50
//
// Older stores may carry "type" instead of "category"; both are read,
// only "category" is written.
//
// # Loading
//
// Stored values are decoded into one of three outcomes:
//
//   - DecodeAbsent: the key is not present
//   - DecodeMalformed: the value is not JSON or does not have the expected shape
//   - DecodeValid: the value decoded cleanly
//
// Anything other than a valid, non-empty row list falls back to DefaultRows
// with progress 0. A valid row list is used as stored, including the stored
// progress value, which is not recomputed on load.
//
// # Toggling
//
// Toggle flips one row on a copy of the row slice, recomputes progress and
// writes both keys. The two writes are independent; a failure in either is
// reported on the result but never rolls back the in-memory state.
package checklist
