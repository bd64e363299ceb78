// Package parse turns schema-definition text and row text into the typed
// entities of the types package.
//
// A schema definition has one column per line:
//
//	INT id
//	STRING name
//	MONEY price
//
// and a row is a semicolon separated line with the identifier first:
//
//	1; Milk; $10.00
package parse

import (
	"strings"

	"github.com/ulmenhaus/tabula/types"
)

// A Pair is a (type tag, column name) entry of a schema definition
type Pair struct {
	Tag  string
	Name string
}

// Schema parses a schema definition. Blank lines are ignored.
func Schema(text string) (*types.Schema, error) {
	pairs := []Pair{}
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, types.NewError(types.KindArityMismatch, line, "column definitions must be `<type> <name>`")
		}
		pairs = append(pairs, Pair{Tag: fields[0], Name: fields[1]})
	}
	return SchemaFromPairs(pairs)
}

// SchemaFromPairs derives a schema from ordered (tag, name) pairs. The pair
// named id (case-insensitive) sets the identifier type and may appear
// anywhere; the other pairs become columns in the order given.
func SchemaFromPairs(pairs []Pair) (*types.Schema, error) {
	var idType types.TypeTag
	columnTypes := []types.TypeTag{}
	columnNames := []string{}
	for _, pair := range pairs {
		tag, err := types.ParseTypeTag(pair.Tag)
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(pair.Name, types.IdentifierName) {
			if idType != "" {
				return nil, types.NewError(types.KindInvalidSchema, pair.Name, "identifier defined more than once")
			}
			idType = tag
			continue
		}
		columnTypes = append(columnTypes, tag)
		columnNames = append(columnNames, pair.Name)
	}
	if idType == "" {
		return nil, types.NewError(types.KindMissingIdentifier, "", "no column is named id")
	}
	return types.NewSchema(idType, columnTypes, columnNames)
}

// Row parses a semicolon separated row against the schema. Values other
// than the identifier may be surrounded by whitespace.
func Row(schema *types.Schema, line string) (types.Row, error) {
	line = strings.TrimRight(line, "\r\n")
	fields := strings.Split(line, ";")
	if len(fields) != schema.Len()+1 {
		return types.Row{}, types.NewError(types.KindArityMismatch, line, "expected %d fields but got %d", schema.Len()+1, len(fields))
	}
	id, err := schema.IDType().Parse(fields[0])
	if err != nil {
		return types.Row{}, err
	}
	values := make([]types.Value, schema.Len())
	for i, tag := range schema.ColumnTypes() {
		v, err := tag.Parse(strings.TrimSpace(fields[i+1]))
		if err != nil {
			return types.Row{}, err
		}
		values[i] = v
	}
	return types.NewRow(id, values...), nil
}

// Identifier parses a bare identifier of the schema's identifier type
func Identifier(schema *types.Schema, text string) (types.Value, error) {
	return schema.IDType().Parse(text)
}
