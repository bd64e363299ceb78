package types

import (
	"iter"
	"strings"
)

// A Table is a named, ordered collection of rows that all conform to
// one schema. Every mutating method checks its input before touching the
// rows so a failed call leaves the table unchanged.
type Table struct {
	name   string
	schema *Schema
	rows   []Row
}

// NewTable returns a new empty table
func NewTable(name string, schema *Schema) (*Table, error) {
	if name == "" {
		return nil, NewError(KindParse, name, "table name must not be empty")
	}
	if schema == nil {
		return nil, NewError(KindInvalidSchema, name, "table has no schema")
	}
	return &Table{
		name:   name,
		schema: schema,
		rows:   []Row{},
	}, nil
}

// Name returns the name of the table
func (t *Table) Name() string {
	return t.name
}

// Schema returns the schema of the table
func (t *Table) Schema() *Schema {
	return t.schema
}

// Len returns the number of rows in the table
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns a copy of the rows in storage order
func (t *Table) Rows() []Row {
	rows := make([]Row, len(t.rows))
	for i, row := range t.rows {
		rows[i] = row.clone()
	}
	return rows
}

// Get returns the row with the given identifier
func (t *Table) Get(id Value) (Row, bool) {
	i := t.indexOf(id)
	if i < 0 {
		return Row{}, false
	}
	return t.rows[i].clone(), true
}

// Insert appends a new row to the table
func (t *Table) Insert(row Row) error {
	if row.ID != nil && t.indexOf(row.ID) >= 0 {
		return NewError(KindDuplicateIdentifier, row.ID.Format(), "row already exists in %s", t.name)
	}
	if err := row.Check(t.schema); err != nil {
		return err
	}
	t.rows = append(t.rows, row.clone())
	return nil
}

// Update replaces the row sharing the new row's identifier, keeping its
// position
func (t *Table) Update(row Row) error {
	if err := row.Check(t.schema); err != nil {
		return err
	}
	i := t.indexOf(row.ID)
	if i < 0 {
		return NewError(KindRowNotFound, row.ID.Format(), "cannot update row in %s", t.name)
	}
	t.rows[i] = row.clone()
	return nil
}

// Delete removes the row with the given identifier
func (t *Table) Delete(id Value) error {
	if id == nil {
		return NewError(KindTypeMismatch, "", "missing identifier")
	}
	if id.Tag() != t.schema.IDType() {
		return NewError(KindTypeMismatch, id.Format(), "identifier is %s but schema requires %s", id.Tag(), t.schema.IDType())
	}
	i := t.indexOf(id)
	if i < 0 {
		return NewError(KindRowNotFound, id.Format(), "cannot delete row from %s", t.name)
	}
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	return nil
}

// DropDuplicates removes every row whose non-identifier values format the
// same as those of an earlier row. It returns the number of rows removed.
func (t *Table) DropDuplicates() int {
	seen := map[string]bool{}
	kept := make([]Row, 0, len(t.rows))
	for _, row := range t.rows {
		key := contentKey(row)
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, row)
	}
	removed := len(t.rows) - len(kept)
	t.rows = kept
	return removed
}

// ListRows returns the formatted rows in storage order. The sequence reads
// the table each time it is ranged over.
func (t *Table) ListRows() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, row := range t.rows {
			if !yield(row.Format()) {
				return
			}
		}
	}
}

func (t *Table) indexOf(id Value) int {
	for i, row := range t.rows {
		if row.ID == id {
			return i
		}
	}
	return -1
}

// contentKey joins the formatted values with a unit separator so that
// values containing commas cannot collide
func contentKey(row Row) string {
	return strings.Join(formatValues(row.Values), "\x1f")
}
