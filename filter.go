package positions

import "strings"

// Match reports whether symbol contains text, ignoring case.
// An empty text matches every symbol.
func Match(symbol, text string) bool {
	if text == "" {
		return true
	}
	return strings.Contains(strings.ToLower(symbol), strings.ToLower(text))
}

// Filter returns the elements of rows whose symbol matches text (see Match), in order.
func Filter[T any](rows []T, text string, symbol func(T) string) []T {
	res := make([]T, 0, len(rows))
	for _, r := range rows {
		if Match(symbol(r), text) {
			res = append(res, r)
		}
	}
	return res
}

// FilterLots filters lots by symbol.
func FilterLots(lots []Lot, text string) []Lot {
	return Filter(lots, text, func(l Lot) string { return l.Symbol })
}

// FilterRows filters aggregated rows by symbol.
func FilterRows(rows []Row, text string) []Row {
	return Filter(rows, text, func(r Row) string { return r.Symbol })
}
