package types

import (
	"strings"
)

// A Row is an identifier plus one value per non-identifier column
type Row struct {
	ID     Value
	Values []Value
}

// NewRow returns a new row. It is not checked against any schema.
func NewRow(id Value, values ...Value) Row {
	return Row{
		ID:     id,
		Values: append([]Value(nil), values...),
	}
}

// Check returns a SchemaMismatch error describing the first way in which
// the row violates the schema or nil if it conforms
func (r Row) Check(s *Schema) error {
	if r.ID == nil {
		return NewError(KindSchemaMismatch, "", "row has no identifier")
	}
	if r.ID.Tag() != s.IDType() {
		return NewError(KindSchemaMismatch, r.ID.Format(), "identifier is %s but schema requires %s", r.ID.Tag(), s.IDType())
	}
	if !r.ID.Valid() {
		return NewError(KindSchemaMismatch, r.ID.Format(), "invalid identifier")
	}
	if len(r.Values) != s.Len() {
		return NewError(KindSchemaMismatch, r.Format(), "row has %d values but schema has %d columns", len(r.Values), s.Len())
	}
	for i, col := range s.columns {
		v := r.Values[i]
		if v == nil {
			return NewError(KindSchemaMismatch, r.Format(), "missing value for column %s", col.Name)
		}
		if v.Tag() != col.Type {
			return NewError(KindSchemaMismatch, v.Format(), "column %s is %s but value is %s", col.Name, col.Type, v.Tag())
		}
		if !v.Valid() {
			return NewError(KindSchemaMismatch, v.Format(), "invalid value for column %s", col.Name)
		}
	}
	return nil
}

// Validate returns true iff the row conforms to the schema
func (r Row) Validate(s *Schema) bool {
	return r.Check(s) == nil
}

// Format renders the identifier followed by each value
func (r Row) Format() string {
	parts := make([]string, 0, len(r.Values)+1)
	parts = append(parts, formatValue(r.ID))
	parts = append(parts, formatValues(r.Values)...)
	return strings.Join(parts, ", ")
}

// Equal returns true iff both rows have equal identifiers and values
func (r Row) Equal(other Row) bool {
	if r.ID != other.ID || len(r.Values) != len(other.Values) {
		return false
	}
	for i := range r.Values {
		if r.Values[i] != other.Values[i] {
			return false
		}
	}
	return true
}

func (r Row) clone() Row {
	return Row{
		ID:     r.ID,
		Values: append([]Value(nil), r.Values...),
	}
}

func formatValue(v Value) string {
	if v == nil {
		return ""
	}
	return v.Format()
}

func formatValues(values []Value) []string {
	formatted := make([]string, len(values))
	for i, v := range values {
		formatted[i] = formatValue(v)
	}
	return formatted
}
