package entities

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrMissingField   = errors.New("missing field")
	ErrMalformedField = errors.New("malformed field")
)

// Row is one record of a table keyed by column name.
type Row map[string]string

// Table is a whole-table snapshot. Columns keeps header order so that
// extra columns survive a read-modify-write cycle.
type Table struct {
	Name    string   `json:"name"`
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Clone returns a deep copy of the table.
func (t Table) Clone() Table {
	out := Table{
		Name:    t.Name,
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]Row, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = row.Clone()
	}
	return out
}

// HasColumn reports whether the header contains col.
func (t Table) HasColumn(col string) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// Find returns the index of the first row whose column equals value, or -1.
func (t Table) Find(col, value string) int {
	for i, row := range t.Rows {
		if v, ok := row[col]; ok && v == value {
			return i
		}
	}
	return -1
}

// Clone returns a copy of the row.
func (r Row) Clone() Row {
	out := make(Row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Text returns the raw value of col. A column absent from the row is a
// missing field; an empty value is returned as-is.
func (r Row) Text(col string) (string, error) {
	v, ok := r[col]
	if !ok {
		return "", &FieldError{Column: col, Kind: ErrMissingField}
	}
	return v, nil
}

// Amount parses col as a non-negative currency amount.
func (r Row) Amount(col string) (float64, error) {
	raw, err := r.Text(col)
	if err != nil {
		return 0, err
	}
	v, err := ParseAmount(raw)
	if err != nil {
		return 0, &FieldError{Column: col, Value: raw, Kind: ErrMalformedField, Err: err}
	}
	return v, nil
}

// Date parses col with the accepted date layouts.
func (r Row) Date(col string) (time.Time, error) {
	raw, err := r.Text(col)
	if err != nil {
		return time.Time{}, err
	}
	v, err := ParseDate(raw)
	if err != nil {
		return time.Time{}, &FieldError{Column: col, Value: raw, Kind: ErrMalformedField, Err: err}
	}
	return v, nil
}

// FieldError reports a column that is absent or cannot be parsed.
type FieldError struct {
	Column string
	Value  string
	Kind   error // ErrMissingField or ErrMalformedField
	Err    error
}

func (e *FieldError) Error() string {
	if e.Kind == ErrMissingField {
		return fmt.Sprintf("missing field %s", e.Column)
	}
	if e.Err != nil {
		return fmt.Sprintf("malformed field %s: %v", e.Column, e.Err)
	}
	return fmt.Sprintf("malformed field %s: %q", e.Column, e.Value)
}

func (e *FieldError) Is(target error) bool {
	return target == e.Kind
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// NotFoundError reports an identifier absent from its table.
type NotFoundError struct {
	Entity string // "pilot", "drone", "mission"
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
