package positions

import "github.com/shopspring/decimal"

// Percent is a percentage expressed in points: P(2.55) is 2.55%.
type Percent struct {
	value decimal.Decimal
}

func P[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Percent {
	return Percent{value: newDecimal(value)}
}

func (p Percent) Equal(q Percent) bool { return p.value.Equal(q.value) }
func (p Percent) IsZero() bool         { return p.value.IsZero() }
func (p Percent) IsNegative() bool     { return p.value.IsNegative() }
func (p Percent) Round2() Percent      { return Percent{value: round2(p.value)} }

// AsFloat is only meant for presentation layers (charts) that need a float.
func (p Percent) AsFloat() float64 { return p.value.InexactFloat64() }

func (p Percent) String() string {
	return p.value.StringFixed(2) + "%"
}

func (p Percent) SignedString() string {
	if p.value.Round(2).IsZero() {
		return "-"
	}
	if p.value.IsPositive() {
		return "+" + p.String()
	}
	return p.String()
}

func (p Percent) MarshalJSON() ([]byte, error) { return p.value.MarshalJSON() }

func (p *Percent) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		p.value = decimal.Zero
		return nil
	}
	return p.value.UnmarshalJSON(b)
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (p Percent) MarshalCSV() (string, error) { return p.value.StringFixed(2), nil }
