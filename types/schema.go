package types

import (
	"fmt"
	"strings"
)

// IdentifierName is the implicit name of every table's identifier column
const IdentifierName = "id"

// A Column is a typed, named non-identifier column of a table
type Column struct {
	Type TypeTag
	Name string
}

// A Schema is the ordered type contract that the rows of a table must
// satisfy. It is immutable once constructed.
type Schema struct {
	idType  TypeTag
	columns []Column
}

// NewSchema returns a new Schema given the identifier type and the parallel
// types and names of the remaining columns
func NewSchema(idType TypeTag, columnTypes []TypeTag, columnNames []string) (*Schema, error) {
	if idType == "" {
		return nil, NewError(KindMissingIdentifier, "", "schema has no identifier type")
	}
	if !idType.Known() {
		return nil, NewError(KindUnknownTypeTag, string(idType), "invalid identifier type")
	}
	if len(columnTypes) != len(columnNames) {
		return nil, NewError(KindArityMismatch, "", "%d column types but %d column names", len(columnTypes), len(columnNames))
	}
	columns := make([]Column, len(columnTypes))
	for i, tag := range columnTypes {
		if !tag.Known() {
			return nil, NewError(KindUnknownTypeTag, string(tag), "invalid type for column %s", columnNames[i])
		}
		if strings.EqualFold(columnNames[i], IdentifierName) {
			return nil, NewError(KindInvalidSchema, columnNames[i], "column name is reserved for the identifier")
		}
		columns[i] = Column{Type: tag, Name: columnNames[i]}
	}
	return &Schema{
		idType:  idType,
		columns: columns,
	}, nil
}

// IDType returns the type of the identifier column
func (s *Schema) IDType() TypeTag {
	return s.idType
}

// ColumnTypes returns the types of the non-identifier columns in order
func (s *Schema) ColumnTypes() []TypeTag {
	tags := make([]TypeTag, len(s.columns))
	for i, col := range s.columns {
		tags[i] = col.Type
	}
	return tags
}

// ColumnNames returns the names of the non-identifier columns in order
func (s *Schema) ColumnNames() []string {
	names := make([]string, len(s.columns))
	for i, col := range s.columns {
		names[i] = col.Name
	}
	return names
}

// Columns returns a copy of the non-identifier columns
func (s *Schema) Columns() []Column {
	return append([]Column(nil), s.columns...)
}

// Len returns the number of non-identifier columns
func (s *Schema) Len() int {
	return len(s.columns)
}

// Equal returns true iff both schemata have the same identifier type and
// the same columns in the same order
func (s *Schema) Equal(other *Schema) bool {
	if s.idType != other.idType || len(s.columns) != len(other.columns) {
		return false
	}
	for i := range s.columns {
		if s.columns[i] != other.columns[i] {
			return false
		}
	}
	return true
}

// String renders the schema as definition text with the identifier first
func (s *Schema) String() string {
	lines := []string{fmt.Sprintf("%s %s", s.idType, IdentifierName)}
	for _, col := range s.columns {
		lines = append(lines, fmt.Sprintf("%s %s", col.Type, col.Name))
	}
	return strings.Join(lines, "\n")
}
