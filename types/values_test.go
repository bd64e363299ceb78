package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	cases := []struct {
		name     string
		tag      TypeTag
		input    string
		expected Value
	}{
		{
			name:     "string",
			tag:      TagString,
			input:    "Milk and honey",
			expected: String("Milk and honey"),
		},
		{
			name:     "empty string",
			tag:      TagString,
			input:    "",
			expected: String(""),
		},
		{
			name:     "char",
			tag:      TagChar,
			input:    "x",
			expected: Char("x"),
		},
		{
			name:     "multibyte char",
			tag:      TagChar,
			input:    "é",
			expected: Char("é"),
		},
		{
			name:     "integer",
			tag:      TagInt,
			input:    "-42",
			expected: Integer(-42),
		},
		{
			name:     "real",
			tag:      TagReal,
			input:    "0.5",
			expected: Real(0.5),
		},
		{
			name:     "money with cents",
			tag:      TagMoney,
			input:    "$12.50",
			expected: Money(1250),
		},
		{
			name:     "money without cents",
			tag:      TagMoney,
			input:    "$10",
			expected: Money(1000),
		},
		{
			name:     "maximum money",
			tag:      TagMoney,
			input:    "$10000000000000.00",
			expected: MaxMoney,
		},
		{
			name:     "money interval",
			tag:      TagMoneyInterval,
			input:    "$1.00-$2.50",
			expected: MoneyInterval{Lower: 100, Upper: 250},
		},
		{
			name:     "degenerate money interval",
			tag:      TagMoneyInterval,
			input:    "$3-$3",
			expected: MoneyInterval{Lower: 300, Upper: 300},
		},
	}
	for i, tc := range cases {
		t.Run(fmt.Sprintf("%d-%s", i, tc.name), func(t *testing.T) {
			v, err := tc.tag.Parse(tc.input)
			require.NoError(t, err)
			require.Equal(t, tc.expected, v)
			require.True(t, v.Valid())
			require.Equal(t, tc.tag, v.Tag())
		})
	}
}

func TestParseFailures(t *testing.T) {
	cases := []struct {
		name  string
		tag   TypeTag
		input string
	}{
		{name: "invalid utf-8 string", tag: TagString, input: "caf\xe9"},
		{name: "empty char", tag: TagChar, input: ""},
		{name: "two chars", tag: TagChar, input: "ab"},
		{name: "fractional integer", tag: TagInt, input: "1.5"},
		{name: "word integer", tag: TagInt, input: "seven"},
		{name: "padded integer", tag: TagInt, input: " 7"},
		{name: "word real", tag: TagReal, input: "half"},
		{name: "nan real", tag: TagReal, input: "NaN"},
		{name: "infinite real", tag: TagReal, input: "+Inf"},
		{name: "one cent digit", tag: TagMoney, input: "$12.5"},
		{name: "three cent digits", tag: TagMoney, input: "$12.500"},
		{name: "no dollar sign", tag: TagMoney, input: "12.50"},
		{name: "negative money", tag: TagMoney, input: "-$1.00"},
		{name: "money over maximum", tag: TagMoney, input: "$10000000000000.01"},
		{name: "money overflowing int64", tag: TagMoney, input: "$99999999999999999999999"},
		{name: "inverted interval", tag: TagMoneyInterval, input: "$2.00-$1.00"},
		{name: "interval missing bound", tag: TagMoneyInterval, input: "$2.00"},
		{name: "interval bad bound", tag: TagMoneyInterval, input: "$2.0-$3.00"},
		{name: "unknown tag", tag: TypeTag("date"), input: "today"},
	}
	for i, tc := range cases {
		t.Run(fmt.Sprintf("%d-%s", i, tc.name), func(t *testing.T) {
			v, err := tc.tag.Parse(tc.input)
			require.Error(t, err)
			require.Nil(t, v)
			if tc.tag.Known() {
				require.True(t, errors.Is(err, ErrParse))
			} else {
				require.True(t, errors.Is(err, ErrUnknownTypeTag))
			}
		})
	}
}

func TestRoundTrip(t *testing.T) {
	values := []Value{
		String(""),
		String("semi; colon, comma"),
		Char("q"),
		Char("ß"),
		Integer(0),
		Integer(-9223372036854775808),
		Integer(9223372036854775807),
		Real(0),
		Real(-1.25),
		Real(1e-300),
		Real(123456789.123456789),
		Money(0),
		Money(5),
		Money(1250),
		MaxMoney,
		MoneyInterval{Lower: 0, Upper: MaxMoney},
		MoneyInterval{Lower: 99, Upper: 100},
	}
	for i, v := range values {
		t.Run(fmt.Sprintf("%d-%s-%s", i, v.Tag(), v.Format()), func(t *testing.T) {
			require.True(t, v.Valid())
			parsed, err := v.Tag().Parse(v.Format())
			require.NoError(t, err)
			require.Equal(t, v, parsed)
		})
	}
}

func TestValid(t *testing.T) {
	cases := []struct {
		name     string
		value    Value
		expected bool
	}{
		{name: "negative money", value: Money(-1), expected: false},
		{name: "money over maximum", value: MaxMoney + 1, expected: false},
		{name: "inverted interval", value: MoneyInterval{Lower: 2, Upper: 1}, expected: false},
		{name: "interval with invalid bound", value: MoneyInterval{Lower: -1, Upper: 1}, expected: false},
		{name: "long char", value: Char("no"), expected: false},
		{name: "string", value: String("anything"), expected: true},
		{name: "invalid utf-8 string", value: String("\xff"), expected: false},
	}
	for i, tc := range cases {
		t.Run(fmt.Sprintf("%d-%s", i, tc.name), func(t *testing.T) {
			require.Equal(t, tc.expected, tc.value.Valid())
		})
	}
}

func TestMoneyFormat(t *testing.T) {
	require.Equal(t, "$0.05", Money(5).Format())
	require.Equal(t, "$12.50", Money(1250).Format())
	require.Equal(t, "$1.00-$2.50", MoneyInterval{Lower: 100, Upper: 250}.Format())
	require.Equal(t, int64(12), Money(1250).Dollars())
	require.Equal(t, int64(50), Money(1250).Cents())
}

func TestParseTypeTag(t *testing.T) {
	tag, err := ParseTypeTag("MONEY_INTERVAL")
	require.NoError(t, err)
	require.Equal(t, TagMoneyInterval, tag)

	_, err = ParseTypeTag("decimal")
	require.True(t, errors.Is(err, ErrUnknownTypeTag))
	require.Equal(t, KindUnknownTypeTag, KindOf(err))
}
