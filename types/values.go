package types

import (
	"math"
	"strconv"
	"unicode/utf8"
)

// A Value is the content of a single typed cell. Every implementation is
// a comparable value type so two Values are equal iff they have the same
// kind and the same underlying primitive.
type Value interface {
	// Format returns the canonical textual form of the value. Parsing
	// the result with the value's tag yields an equal value.
	Format() string
	// Valid returns true iff the wrapped primitive satisfies the
	// constraints of the value kind
	Valid() bool
	// Tag returns the type tag of the value kind
	Tag() TypeTag
}

// A String is an array of characters. It must be valid UTF-8 so that it
// survives the JSON document unchanged.
type String string

// ParseString returns the input as a String
func ParseString(input string) (Value, error) {
	s := String(input)
	if !s.Valid() {
		return nil, NewError(KindParse, input, "string is not valid UTF-8")
	}
	return s, nil
}

// Format formats the string
func (s String) Format() string {
	return string(s)
}

// Valid is always true for strings
func (s String) Valid() bool {
	return utf8.ValidString(string(s))
}

func (s String) Tag() TypeTag {
	return TagString
}

// A Char is a single character
type Char string

// ParseChar returns a new Char if the input is exactly one character
func ParseChar(input string) (Value, error) {
	c := Char(input)
	if !c.Valid() {
		return nil, NewError(KindParse, input, "char must be a single character")
	}
	return c, nil
}

// Format formats the char
func (c Char) Format() string {
	return string(c)
}

// Valid returns true iff the char holds exactly one valid code point
func (c Char) Valid() bool {
	return utf8.ValidString(string(c)) && utf8.RuneCountInString(string(c)) == 1
}

func (c Char) Tag() TypeTag {
	return TagChar
}

// An Integer is a whole number
type Integer int64

// ParseInteger parses the decimal representation of a whole number
func ParseInteger(input string) (Value, error) {
	n, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		return nil, NewError(KindParse, input, "invalid integer")
	}
	return Integer(n), nil
}

// Format formats the integer
func (d Integer) Format() string {
	return strconv.FormatInt(int64(d), 10)
}

// Valid is always true for integers
func (d Integer) Valid() bool {
	return true
}

func (d Integer) Tag() TypeTag {
	return TagInt
}

// A Real is a finite floating point number
type Real float64

// ParseReal parses a floating point number. NaN and infinities are rejected.
func ParseReal(input string) (Value, error) {
	f, err := strconv.ParseFloat(input, 64)
	if err != nil {
		return nil, NewError(KindParse, input, "invalid real number")
	}
	r := Real(f)
	if !r.Valid() {
		return nil, NewError(KindParse, input, "real number must be finite")
	}
	return r, nil
}

// Format returns the shortest representation that parses back to the
// same number
func (r Real) Format() string {
	return strconv.FormatFloat(float64(r), 'g', -1, 64)
}

// Valid returns true iff the number is finite
func (r Real) Valid() bool {
	return !math.IsNaN(float64(r)) && !math.IsInf(float64(r), 0)
}

func (r Real) Tag() TypeTag {
	return TagReal
}
