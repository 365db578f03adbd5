package positions

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary amount in the display currency of the portfolio.
//
// The zero value is a valid zero amount, so lots decoded with missing fields never carry NaN.
type Money struct {
	value decimal.Decimal // as major unit value
}

func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Money {
	return Money{value: newDecimal(value)}
}

// String returns the amount with exactly two decimals, e.g. "1905.00".
func (m Money) String() string { return m.value.StringFixed(2) }

// Format returns the amount formatted for a given currency code, e.g. "$1,905.00" for USD.
func (m Money) Format(currency string) string {
	// to get a never nil currency I need to call the Money constructor
	cur := *money.New(0, currency).Currency()
	dec := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(amount Money) bool      { return m.value.LessThan(amount.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg()} }
func (m Money) Add(n Money) Money               { return Money{value: m.value.Add(n.value)} }
func (m Money) Sub(n Money) Money               { return Money{value: m.value.Sub(n.value)} }
func (m Money) Mul(n Quantity) Money            { return Money{value: m.value.Mul(n.value)} }

// Round2 rounds to cents, half away from zero.
func (m Money) Round2() Money { return Money{value: round2(m.value)} }

// Ratio returns m / n as a percentage, rounded to 2 decimals.
// A zero denominator yields 0.
func (m Money) Ratio(n Money) Percent {
	if n.value.IsZero() {
		return Percent{}
	}
	return Percent{value: round2(m.value.Mul(hundred).Div(n.value))}
}

// SignedString returns the amount with an explicit sign, 0 is represented as "-".
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// AsFloat is only meant for presentation layers (charts) that need a float.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }

func (m Money) MarshalJSON() ([]byte, error) { return m.value.MarshalJSON() }

func (m *Money) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		m.value = decimal.Zero
		return nil
	}
	return m.value.UnmarshalJSON(b)
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (m Money) MarshalCSV() (string, error) { return m.String(), nil }
