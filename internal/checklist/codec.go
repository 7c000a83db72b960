package checklist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/checklist-go/internal/utils"
)

// DecodeStatus classifies a stored value.
type DecodeStatus string

const (
	DecodeAbsent    DecodeStatus = "absent"
	DecodeMalformed DecodeStatus = "malformed"
	DecodeValid     DecodeStatus = "valid"
)

// rowsSchema describes the shape of the "rows" value. Only types are
// checked; dates stay opaque strings.
const rowsSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "properties": {
      "category": {"type": "string"},
      "type": {"type": "string"},
      "description": {"type": "string"},
      "date": {"type": "string"},
      "selected": {"type": "boolean"}
    },
    "required": ["description", "date"],
    "anyOf": [
      {"required": ["category"]},
      {"required": ["type"]}
    ]
  }
}`

var compiledRowsSchema = jsonschema.MustCompileString("checklist-rows.schema.json", rowsSchema)

// DecodeError describes why a stored value could not be used.
type DecodeError struct {
	Key  string // Store key
	Path string // Location inside the value, e.g. "[1].selected"
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("decode %s: %s: %s", e.Key, e.Path, e.Err)
	}
	return fmt.Sprintf("decode %s: %s", e.Key, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// EncodeRows serializes rows for the store.
func EncodeRows(rows []Row) (string, error) {
	if rows == nil {
		rows = []Row{}
	}
	data, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("encode rows: %w", err)
	}
	return string(data), nil
}

// DecodeRows parses a stored "rows" value. found reports whether the store
// had the key at all; an empty string counts as absent.
func DecodeRows(raw string, found bool) ([]Row, DecodeStatus, error) {
	if !found || strings.TrimSpace(raw) == "" {
		return nil, DecodeAbsent, nil
	}

	var doc interface{}
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, DecodeMalformed, &DecodeError{Key: KeyRows, Err: err}
	}
	if dec.More() {
		return nil, DecodeMalformed, &DecodeError{Key: KeyRows, Err: fmt.Errorf("trailing data after value")}
	}

	if err := compiledRowsSchema.Validate(doc); err != nil {
		return nil, DecodeMalformed, schemaDecodeError(err)
	}

	var rows []Row
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return nil, DecodeMalformed, &DecodeError{Key: KeyRows, Err: err}
	}
	if rows == nil {
		rows = []Row{}
	}
	return rows, DecodeValid, nil
}

// EncodeProgress serializes a progress value for the store.
func EncodeProgress(progress float64) string {
	return strconv.FormatFloat(progress, 'f', -1, 64)
}

// DecodeProgress parses a stored "progress" value. Anything that is not a
// JSON number in [0, 100] is malformed; callers fall back to 0.
func DecodeProgress(raw string, found bool) (float64, DecodeStatus, error) {
	if !found || strings.TrimSpace(raw) == "" {
		return 0, DecodeAbsent, nil
	}

	var v interface{}
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	if err := dec.Decode(&v); err != nil {
		return 0, DecodeMalformed, &DecodeError{Key: KeyProgress, Err: err}
	}
	if dec.More() {
		return 0, DecodeMalformed, &DecodeError{Key: KeyProgress, Err: fmt.Errorf("trailing data after value")}
	}
	n, ok := v.(float64)
	if !ok {
		return 0, DecodeMalformed, &DecodeError{Key: KeyProgress, Err: fmt.Errorf("expected number, got %T", v)}
	}
	if math.IsNaN(n) || n < 0 || n > 100 {
		return 0, DecodeMalformed, &DecodeError{Key: KeyProgress, Err: fmt.Errorf("%v is outside 0..100", n)}
	}
	return n, DecodeValid, nil
}

// schemaDecodeError reduces a schema validation error to its first leaf cause.
func schemaDecodeError(err error) *DecodeError {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return &DecodeError{Key: KeyRows, Err: err}
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &DecodeError{
		Key:  KeyRows,
		Path: utils.JSONPointerToPath(ve.InstanceLocation),
		Err:  fmt.Errorf("%s", ve.Message),
	}
}
