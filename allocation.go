package positions

import "slices"

// Slice is one part of an allocation chart.
type Slice struct {
	Label   string  `json:"label" csv:"label"`
	Value   Money   `json:"value" csv:"value"`
	Percent Percent `json:"percent" csv:"percent"`
	Color   string  `json:"color,omitempty" csv:"color"`
}

// EquityAllocation returns the share of each symbol in the total equity value,
// largest first. Rows of equal value keep their input order.
//
// Colors are taken from palette in input order, so that a symbol keeps its color
// whatever its rank. palette may be nil.
func EquityAllocation(rows []Row, palette *Palette) []Slice {
	var total Money
	for _, r := range rows {
		total = total.Add(r.Value)
	}
	res := make([]Slice, 0, len(rows))
	for _, r := range rows {
		s := Slice{
			Label:   r.Symbol,
			Value:   r.Value,
			Percent: r.Value.Ratio(total),
		}
		if palette != nil {
			s.Color = palette.Color(r.Symbol)
		}
		res = append(res, s)
	}
	sortByValue(res)
	return res
}

func sortByValue(s []Slice) {
	slices.SortStableFunc(s, func(a, b Slice) int {
		return b.Value.value.Cmp(a.Value.value)
	})
}

// AssetAllocation splits total assets between cash and equities.
func AssetAllocation(cash, equities Money) []Slice {
	total := cash.Add(equities)
	return []Slice{
		{Label: "Cash", Value: cash, Percent: cash.Ratio(total)},
		{Label: "Equities", Value: equities, Percent: equities.Ratio(total)},
	}
}
