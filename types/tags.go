package types

import (
	"strings"
)

// A TypeTag is the symbolic name of a value kind as it appears in schema
// definitions and encoded documents
type TypeTag string

const (
	TagString        TypeTag = "string"
	TagChar          TypeTag = "char"
	TagInt           TypeTag = "int"
	TagReal          TypeTag = "real"
	TagMoney         TypeTag = "money"
	TagMoneyInterval TypeTag = "money_interval"
)

// AllTypeTags returns every known tag in declaration order
func AllTypeTags() []TypeTag {
	return []TypeTag{TagString, TagChar, TagInt, TagReal, TagMoney, TagMoneyInterval}
}

// ParseTypeTag matches the input case-insensitively against the known tags
func ParseTypeTag(input string) (TypeTag, error) {
	tag := TypeTag(strings.ToLower(input))
	if !tag.Known() {
		return "", NewError(KindUnknownTypeTag, input, "expected one of %s", tagList())
	}
	return tag, nil
}

// Known returns true iff the tag names one of the value kinds
func (t TypeTag) Known() bool {
	switch t {
	case TagString, TagChar, TagInt, TagReal, TagMoney, TagMoneyInterval:
		return true
	}
	return false
}

// Parse constructs a Value of the kind named by the tag from its textual form
func (t TypeTag) Parse(input string) (Value, error) {
	switch t {
	case TagString:
		return ParseString(input)
	case TagChar:
		return ParseChar(input)
	case TagInt:
		return ParseInteger(input)
	case TagReal:
		return ParseReal(input)
	case TagMoney:
		return ParseMoney(input)
	case TagMoneyInterval:
		return ParseMoneyInterval(input)
	}
	return nil, NewError(KindUnknownTypeTag, string(t), "expected one of %s", tagList())
}

func tagList() string {
	names := []string{}
	for _, tag := range AllTypeTags() {
		names = append(names, string(tag))
	}
	return strings.Join(names, ", ")
}
