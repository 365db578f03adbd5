package positions

import (
	"maps"
	"slices"
)

// Expanded is the set of symbols whose lots are shown under their aggregated row.
//
// A symbol is collapsed until toggled, several symbols can be expanded at once.
// The zero value is an empty set ready to use. Expanded is not safe for concurrent use.
type Expanded struct {
	set map[string]struct{}
}

// NewExpanded returns a set with the given symbols expanded.
func NewExpanded(symbols ...string) *Expanded {
	e := new(Expanded)
	for _, s := range symbols {
		e.Expand(s)
	}
	return e
}

// Toggle flips the state of symbol and returns true if it is now expanded.
func (e *Expanded) Toggle(symbol string) bool {
	if e.IsExpanded(symbol) {
		e.Collapse(symbol)
		return false
	}
	e.Expand(symbol)
	return true
}

// Expand marks symbol as expanded.
func (e *Expanded) Expand(symbol string) {
	if e.set == nil {
		e.set = make(map[string]struct{})
	}
	e.set[symbol] = struct{}{}
}

// Collapse marks symbol as collapsed.
func (e *Expanded) Collapse(symbol string) { delete(e.set, symbol) }

// IsExpanded reports whether symbol is expanded. A nil set has nothing expanded.
func (e *Expanded) IsExpanded(symbol string) bool {
	if e == nil {
		return false
	}
	_, ok := e.set[symbol]
	return ok
}

// Len returns the number of expanded symbols.
func (e *Expanded) Len() int {
	if e == nil {
		return 0
	}
	return len(e.set)
}

// Symbols returns the expanded symbols in alphabetical order.
func (e *Expanded) Symbols() []string {
	if e == nil {
		return []string{}
	}
	return slices.Sorted(maps.Keys(e.set))
}

// Reset collapses every symbol.
func (e *Expanded) Reset() { clear(e.set) }
