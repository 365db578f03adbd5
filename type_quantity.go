package positions

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float32:
		return decimal.NewFromFloat32(v)
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int32:
		return decimal.NewFromInt32(v)
	case int64:
		return decimal.NewFromInt(v)
	case uint:
		return decimal.NewFromUint64(uint64(v))
	case uint32:
		return decimal.NewFromUint64(uint64(v))
	case uint64:
		return decimal.NewFromUint64(v)
	default:
		panic("unsupported type")
	}
}

// round2 rounds half away from zero to 2 decimal places.
func round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

// mean returns round2(sum / n), and 0 for an empty group.
func mean(sum decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return round2(sum.Div(decimal.NewFromInt(int64(n))))
}

// Quantity is a number of shares. Lots hold whole shares, sums stay exact.
type Quantity struct {
	value decimal.Decimal
}

func Q[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Quantity {
	return Quantity{value: newDecimal(value)}
}

func (t Quantity) Equal(p Quantity) bool           { return t.value.Equal(p.value) }
func (t Quantity) LessThan(quantity Quantity) bool { return t.value.LessThan(quantity.value) }
func (t Quantity) Add(p Quantity) Quantity         { return Quantity{value: t.value.Add(p.value)} }
func (t Quantity) Sub(p Quantity) Quantity         { return Quantity{value: t.value.Sub(p.value)} }
func (t Quantity) GreaterThan(p Quantity) bool     { return t.value.GreaterThan(p.value) }
func (t Quantity) IsNegative() bool                { return t.value.IsNegative() }
func (t Quantity) IsPositive() bool                { return t.value.IsPositive() }
func (t Quantity) IsZero() bool                    { return t.value.IsZero() }

// IsWhole reports whether the quantity is an integer number of shares.
func (t Quantity) IsWhole() bool { return t.value.Equal(t.value.Truncate(0)) }

// Int64 returns the integer part of the quantity.
func (t Quantity) Int64() int64 { return t.value.IntPart() }

func (q Quantity) String() string { return q.value.String() }

func (t Quantity) MarshalJSON() ([]byte, error) {
	return t.value.MarshalJSON()
}
func (t *Quantity) UnmarshalJSON(decimalBytes []byte) error {
	if string(decimalBytes) == "null" {
		t.value = decimal.Zero
		return nil
	}
	return t.value.UnmarshalJSON(decimalBytes)
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (t Quantity) MarshalCSV() (string, error) { return t.String(), nil }
