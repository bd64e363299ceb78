// Package dbms is the catalog of named databases that front ends talk to.
// The types package has no locking of its own so every operation here
// runs inside an exclusive section for the database it touches.
package dbms

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/ulmenhaus/tabula/osm"
	"github.com/ulmenhaus/tabula/parse"
	"github.com/ulmenhaus/tabula/storage"
	"github.com/ulmenhaus/tabula/types"
)

type entry struct {
	mu sync.Mutex
	db *types.Database
}

// A DBMS holds a set of uniquely named databases
type DBMS struct {
	mu        sync.RWMutex
	databases map[string]*entry

	exportDir string
}

// NewDBMS returns an empty DBMS that exports databases into exportDir
func NewDBMS(exportDir string) *DBMS {
	return &DBMS{
		databases: map[string]*entry{},
		exportDir: exportDir,
	}
}

// ListDatabases returns the names of all databases in lexical order
func (s *DBMS) ListDatabases() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.databases))
	for name := range s.databases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateDatabase adds a new empty database
func (s *DBMS) CreateDatabase(name string) error {
	db, err := types.NewDatabase(name)
	if err != nil {
		return err
	}
	return s.AddDatabase(db)
}

// AddDatabase adds an existing database, e.g. one that was just imported
func (s *DBMS) AddDatabase(db *types.Database) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.databases[db.Name()]; ok {
		return types.NewError(types.KindDatabaseExists, db.Name(), "database already exists")
	}
	s.databases[db.Name()] = &entry{db: db}
	return nil
}

// DropDatabase removes a database and all of its tables
func (s *DBMS) DropDatabase(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.databases[name]; !ok {
		return types.NewError(types.KindDatabaseNotFound, name, "database does not exist")
	}
	delete(s.databases, name)
	return nil
}

// WithDatabase runs f while holding the database's exclusive section
func (s *DBMS) WithDatabase(name string, f func(db *types.Database) error) error {
	s.mu.RLock()
	e, ok := s.databases[name]
	s.mu.RUnlock()
	if !ok {
		return types.NewError(types.KindDatabaseNotFound, name, "database does not exist")
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return f(e.db)
}

// WithTable runs f on a table while holding its database's exclusive section
func (s *DBMS) WithTable(dbName, tableName string, f func(t *types.Table) error) error {
	return s.WithDatabase(dbName, func(db *types.Database) error {
		t, ok := db.GetTable(tableName)
		if !ok {
			return types.NewError(types.KindTableNotFound, tableName, "table does not exist in %s", dbName)
		}
		return f(t)
	})
}

// ListTables returns the names of a database's tables
func (s *DBMS) ListTables(dbName string) ([]string, error) {
	var names []string
	err := s.WithDatabase(dbName, func(db *types.Database) error {
		names = db.ListTables()
		return nil
	})
	return names, err
}

// CreateTable adds an empty table whose schema is given as definition text
func (s *DBMS) CreateTable(dbName, tableName, schemaText string) error {
	schema, err := parse.Schema(schemaText)
	if err != nil {
		return err
	}
	return s.WithDatabase(dbName, func(db *types.Database) error {
		table, err := types.NewTable(tableName, schema)
		if err != nil {
			return err
		}
		return db.AddTable(table)
	})
}

// DropTable removes a table from a database
func (s *DBMS) DropTable(dbName, tableName string) error {
	return s.WithDatabase(dbName, func(db *types.Database) error {
		return db.RemoveTable(tableName)
	})
}

// Schema returns the schema of a table
func (s *DBMS) Schema(dbName, tableName string) (*types.Schema, error) {
	var schema *types.Schema
	err := s.WithTable(dbName, tableName, func(t *types.Table) error {
		schema = t.Schema()
		return nil
	})
	return schema, err
}

// ListRows returns the formatted rows of a table
func (s *DBMS) ListRows(dbName, tableName string) ([]string, error) {
	rows := []string{}
	err := s.WithTable(dbName, tableName, func(t *types.Table) error {
		for row := range t.ListRows() {
			rows = append(rows, row)
		}
		return nil
	})
	return rows, err
}

// InsertRow parses the row text against the table's schema and inserts it
func (s *DBMS) InsertRow(dbName, tableName, rowText string) error {
	return s.WithTable(dbName, tableName, func(t *types.Table) error {
		row, err := parse.Row(t.Schema(), rowText)
		if err != nil {
			return err
		}
		return t.Insert(row)
	})
}

// UpdateRow parses the row text against the table's schema and replaces
// the row with the same identifier
func (s *DBMS) UpdateRow(dbName, tableName, rowText string) error {
	return s.WithTable(dbName, tableName, func(t *types.Table) error {
		row, err := parse.Row(t.Schema(), rowText)
		if err != nil {
			return err
		}
		return t.Update(row)
	})
}

// DeleteRow removes the row whose identifier has the given text
func (s *DBMS) DeleteRow(dbName, tableName, idText string) error {
	return s.WithTable(dbName, tableName, func(t *types.Table) error {
		id, err := parse.Identifier(t.Schema(), idText)
		if err != nil {
			return err
		}
		return t.Delete(id)
	})
}

// DropDuplicates removes duplicate rows from a table and returns how many
// were removed
func (s *DBMS) DropDuplicates(dbName, tableName string) (int, error) {
	var removed int
	err := s.WithTable(dbName, tableName, func(t *types.Table) error {
		removed = t.DropDuplicates()
		return nil
	})
	return removed, err
}

// Export writes a database to <exportDir>/<name>.json and returns the path
// along with the serialized document
func (s *DBMS) Export(dbName string) (string, []byte, error) {
	if dbName == "" || filepath.Base(dbName) != dbName || dbName == "." || dbName == ".." {
		return "", nil, types.NewError(types.KindParse, dbName, "database name cannot be used as a file name")
	}
	if err := os.MkdirAll(s.exportDir, 0700); err != nil {
		return "", nil, errors.Wrapf(err, "failed to create %s", s.exportDir)
	}
	path := filepath.Join(s.exportDir, dbName+osm.JSONSuffix)
	var snapshot []byte
	err := s.WithDatabase(dbName, func(db *types.Database) error {
		mapper, err := osm.NewObjectStoreMapper(path)
		if err != nil {
			return err
		}
		if err := mapper.Store(db); err != nil {
			return err
		}
		snapshot, err = mapper.GetSnapshot(db)
		return err
	})
	if err != nil {
		return "", nil, errors.Wrapf(err, "failed to export %s", dbName)
	}
	return path, snapshot, nil
}

// Import decodes a JSON document and adds the database to the catalog
func (s *DBMS) Import(src io.Reader) (string, error) {
	db, err := osm.NewStreamMapper(&storage.JSONStore{}).LoadSnapshot(src)
	if err != nil {
		return "", err
	}
	return db.Name(), s.AddDatabase(db)
}
