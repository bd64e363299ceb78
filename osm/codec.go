package osm

import (
	"github.com/ulmenhaus/tabula/parse"
	"github.com/ulmenhaus/tabula/storage"
	"github.com/ulmenhaus/tabula/types"
)

// Encode converts a database to its storage representation
func Encode(db *types.Database) *storage.EncodedDatabase {
	encoded := &storage.EncodedDatabase{
		Name:   db.Name(),
		Tables: []storage.EncodedTable{},
	}
	for _, table := range db.Tables() {
		encoded.Tables = append(encoded.Tables, encodeTable(table))
	}
	return encoded
}

func encodeTable(table *types.Table) storage.EncodedTable {
	schema := table.Schema()
	pairs := [][]string{{string(schema.IDType()), types.IdentifierName}}
	for _, col := range schema.Columns() {
		pairs = append(pairs, []string{string(col.Type), col.Name})
	}
	rows := [][]string{}
	for _, row := range table.Rows() {
		encodedRow := []string{row.ID.Format()}
		for _, v := range row.Values {
			encodedRow = append(encodedRow, v.Format())
		}
		rows = append(rows, encodedRow)
	}
	return storage.EncodedTable{
		Name:   table.Name(),
		Schema: pairs,
		Rows:   rows,
	}
}

// Decode reconstructs a database from its storage representation. Any
// problem with the document is reported as a DecodeError and no database
// is returned.
func Decode(encoded *storage.EncodedDatabase) (*types.Database, error) {
	if encoded == nil {
		return nil, types.NewError(types.KindDecode, "", "missing document")
	}
	db, err := types.NewDatabase(encoded.Name)
	if err != nil {
		return nil, types.WrapError(types.KindDecode, err, "invalid database")
	}
	for i, et := range encoded.Tables {
		table, err := decodeTable(et)
		if err != nil {
			return nil, types.WrapError(types.KindDecode, err, "table %d of %s", i, encoded.Name)
		}
		if err := db.AddTable(table); err != nil {
			return nil, types.WrapError(types.KindDecode, err, "table %d of %s", i, encoded.Name)
		}
	}
	return db, nil
}

func decodeTable(et storage.EncodedTable) (*types.Table, error) {
	pairs := make([]parse.Pair, len(et.Schema))
	for i, raw := range et.Schema {
		if len(raw) != 2 {
			return nil, types.NewError(types.KindDecode, et.Name, "schema entry %d has %d elements", i, len(raw))
		}
		pairs[i] = parse.Pair{Tag: raw[0], Name: raw[1]}
	}
	schema, err := parse.SchemaFromPairs(pairs)
	if err != nil {
		return nil, err
	}
	table, err := types.NewTable(et.Name, schema)
	if err != nil {
		return nil, err
	}
	for _, raw := range et.Rows {
		row, err := decodeRow(schema, raw)
		if err != nil {
			return nil, err
		}
		if err := table.Insert(row); err != nil {
			return nil, err
		}
	}
	return table, nil
}

func decodeRow(schema *types.Schema, raw []string) (types.Row, error) {
	if len(raw) != schema.Len()+1 {
		return types.Row{}, types.NewError(types.KindArityMismatch, "", "row has %d values but schema has %d", len(raw), schema.Len()+1)
	}
	id, err := schema.IDType().Parse(raw[0])
	if err != nil {
		return types.Row{}, err
	}
	values := make([]types.Value, schema.Len())
	for i, tag := range schema.ColumnTypes() {
		v, err := tag.Parse(raw[i+1])
		if err != nil {
			return types.Row{}, err
		}
		values[i] = v
	}
	return types.NewRow(id, values...), nil
}
