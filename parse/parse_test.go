package parse

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/ulmenhaus/tabula/types"
)

func TestSchema(t *testing.T) {
	cases := []struct {
		name    string
		text    string
		idType  types.TypeTag
		columns []types.Column
		kind    types.ErrorKind
	}{
		{
			name:   "identifier first",
			text:   "INT id\nSTRING name\nMONEY price",
			idType: types.TagInt,
			columns: []types.Column{
				{Type: types.TagString, Name: "name"},
				{Type: types.TagMoney, Name: "price"},
			},
		},
		{
			name:   "identifier in the middle",
			text:   "string name\nchar ID\nmoney_interval range\n\n",
			idType: types.TagChar,
			columns: []types.Column{
				{Type: types.TagString, Name: "name"},
				{Type: types.TagMoneyInterval, Name: "range"},
			},
		},
		{
			name:    "identifier only with surrounding blank lines",
			text:    "\n  real   Id  \n\n",
			idType:  types.TagReal,
			columns: nil,
		},
		{
			name: "no identifier",
			text: "STRING name\nMONEY price",
			kind: types.KindMissingIdentifier,
		},
		{
			name: "empty definition",
			text: "",
			kind: types.KindMissingIdentifier,
		},
		{
			name: "unknown type",
			text: "INT id\nDATE born",
			kind: types.KindUnknownTypeTag,
		},
		{
			name: "extra field",
			text: "INT id\nSTRING first name",
			kind: types.KindArityMismatch,
		},
		{
			name: "two identifiers",
			text: "INT id\nSTRING id",
			kind: types.KindInvalidSchema,
		},
	}
	for i, tc := range cases {
		t.Run(fmt.Sprintf("%d-%s", i, tc.name), func(t *testing.T) {
			s, err := Schema(tc.text)
			if tc.kind != types.KindUnknown {
				require.Error(t, err)
				require.Equal(t, tc.kind, types.KindOf(err))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.idType, s.IDType())
			require.Equal(t, tc.columns, s.Columns())
		})
	}
}

func TestSchemaStringParsesBack(t *testing.T) {
	s, err := Schema("money_interval budget\nSTRING id\nreal weight")
	require.NoError(t, err)
	again, err := Schema(s.String())
	require.NoError(t, err)
	require.True(t, s.Equal(again))
}

func TestRow(t *testing.T) {
	schema, err := Schema("INT id\nSTRING name\nMONEY price")
	require.NoError(t, err)

	cases := []struct {
		name     string
		line     string
		expected types.Row
		kind     types.ErrorKind
	}{
		{
			name:     "basic row",
			line:     "1; Milk; $10.00",
			expected: types.NewRow(types.Integer(1), types.String("Milk"), types.Money(1000)),
		},
		{
			name:     "trailing newline",
			line:     "2;Bread;$2\n",
			expected: types.NewRow(types.Integer(2), types.String("Bread"), types.Money(200)),
		},
		{
			name: "too few fields",
			line: "1; Milk",
			kind: types.KindArityMismatch,
		},
		{
			name: "too many fields",
			line: "1; Milk; $10.00; extra",
			kind: types.KindArityMismatch,
		},
		{
			name: "bad identifier",
			line: "one; Milk; $10.00",
			kind: types.KindParse,
		},
		{
			name: "padded identifier",
			line: " 1; Milk; $10.00",
			kind: types.KindParse,
		},
		{
			name: "bad money",
			line: "1; Milk; $10.5",
			kind: types.KindParse,
		},
	}
	for i, tc := range cases {
		t.Run(fmt.Sprintf("%d-%s", i, tc.name), func(t *testing.T) {
			row, err := Row(schema, tc.line)
			if tc.kind != types.KindUnknown {
				require.Error(t, err)
				require.Equal(t, tc.kind, types.KindOf(err))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expected, row)
			require.True(t, row.Validate(schema))
		})
	}
}

func TestIdentifier(t *testing.T) {
	schema, err := Schema("CHAR id\nSTRING name")
	require.NoError(t, err)
	id, err := Identifier(schema, "k")
	require.NoError(t, err)
	require.Equal(t, types.Char("k"), id)

	_, err = Identifier(schema, "kk")
	require.Equal(t, types.KindParse, types.KindOf(err))
}
