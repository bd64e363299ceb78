package types

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// MaxMoney is the largest representable amount of money in cents
// (ten trillion dollars)
const MaxMoney Money = 10_000_000_000_000 * 100

var moneyPattern = regexp.MustCompile(`^\$(\d+)(?:\.(\d{2}))?$`)

// A Money denotes a non-negative amount of money in cents
type Money int64

// ParseMoney parses amounts of the form $12 or $12.50
func ParseMoney(input string) (Value, error) {
	ma, err := parseMoney(input)
	if err != nil {
		return nil, err
	}
	return ma, nil
}

func parseMoney(input string) (Money, error) {
	match := moneyPattern.FindStringSubmatch(input)
	if match == nil {
		return 0, NewError(KindParse, input, "money must look like $12 or $12.50")
	}
	dollars, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil || dollars > int64(MaxMoney/100) {
		return 0, NewError(KindParse, input, "amount exceeds maximum of %s", MaxMoney.Format())
	}
	var cents int64
	if match[2] != "" {
		// two digits guaranteed by the pattern
		cents, _ = strconv.ParseInt(match[2], 10, 64)
	}
	ma := Money(dollars*100 + cents)
	if !ma.Valid() {
		return 0, NewError(KindParse, input, "amount exceeds maximum of %s", MaxMoney.Format())
	}
	return ma, nil
}

// Format formats the Money as $<dollars>.<cents>
func (ma Money) Format() string {
	return fmt.Sprintf("$%d.%02d", ma.Dollars(), ma.Cents())
}

// Dollars returns the whole dollars of the amount
func (ma Money) Dollars() int64 {
	return int64(ma) / 100
}

// Cents returns the cents of the amount less the whole dollars
func (ma Money) Cents() int64 {
	return int64(ma) % 100
}

// Valid returns true iff the amount is between zero and MaxMoney
func (ma Money) Valid() bool {
	return ma >= 0 && ma <= MaxMoney
}

func (ma Money) Tag() TypeTag {
	return TagMoney
}

// A MoneyInterval is an inclusive range of amounts of money
type MoneyInterval struct {
	Lower Money
	Upper Money
}

// NewMoneyInterval returns a new interval or an error if the bounds are
// invalid or inverted
func NewMoneyInterval(lower, upper Money) (MoneyInterval, error) {
	mi := MoneyInterval{Lower: lower, Upper: upper}
	if !mi.Valid() {
		return MoneyInterval{}, NewError(KindParse, mi.Format(), "lower bound must not exceed upper bound")
	}
	return mi, nil
}

// ParseMoneyInterval parses intervals of the form $1.00-$2.50
func ParseMoneyInterval(input string) (Value, error) {
	parts := strings.Split(input, "-")
	if len(parts) != 2 {
		return nil, NewError(KindParse, input, "money interval must look like $1.00-$2.50")
	}
	lower, err := parseMoney(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, NewError(KindParse, input, "invalid lower bound")
	}
	upper, err := parseMoney(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, NewError(KindParse, input, "invalid upper bound")
	}
	mi, err := NewMoneyInterval(lower, upper)
	if err != nil {
		return nil, NewError(KindParse, input, "lower bound must not exceed upper bound")
	}
	return mi, nil
}

// Format formats the interval as <lower>-<upper>
func (mi MoneyInterval) Format() string {
	return mi.Lower.Format() + "-" + mi.Upper.Format()
}

// Valid returns true iff both bounds are valid and not inverted
func (mi MoneyInterval) Valid() bool {
	return mi.Lower.Valid() && mi.Upper.Valid() && mi.Lower <= mi.Upper
}

func (mi MoneyInterval) Tag() TypeTag {
	return TagMoneyInterval
}
