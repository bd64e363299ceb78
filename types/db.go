package types

// A Database is a collection of uniquely named tables
type Database struct {
	name   string
	tables []*Table
}

// NewDatabase returns a new database with no tables
func NewDatabase(name string) (*Database, error) {
	if name == "" {
		return nil, NewError(KindParse, name, "database name must not be empty")
	}
	return &Database{
		name:   name,
		tables: []*Table{},
	}, nil
}

// Name returns the name of the database
func (db *Database) Name() string {
	return db.name
}

// AddTable adds a table to the database
func (db *Database) AddTable(t *Table) error {
	if _, ok := db.GetTable(t.Name()); ok {
		return NewError(KindTableExists, t.Name(), "table already exists in %s", db.name)
	}
	db.tables = append(db.tables, t)
	return nil
}

// RemoveTable removes a table and all of its rows
func (db *Database) RemoveTable(name string) error {
	for i, t := range db.tables {
		if t.Name() == name {
			db.tables = append(db.tables[:i], db.tables[i+1:]...)
			return nil
		}
	}
	return NewError(KindTableNotFound, name, "table does not exist in %s", db.name)
}

// GetTable returns the table with the given name
func (db *Database) GetTable(name string) (*Table, bool) {
	for _, t := range db.tables {
		if t.Name() == name {
			return t, true
		}
	}
	return nil, false
}

// ListTables returns the names of the tables in the order they were added
func (db *Database) ListTables() []string {
	names := make([]string, len(db.tables))
	for i, t := range db.tables {
		names[i] = t.Name()
	}
	return names
}

// Tables returns the tables in the order they were added
func (db *Database) Tables() []*Table {
	return append([]*Table(nil), db.tables...)
}
