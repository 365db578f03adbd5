package positions

// PivotRow is an aggregated row as displayed, with its lots when expanded.
type PivotRow struct {
	Row
	Expanded bool  `json:"expanded"`
	Details  []Lot `json:"details,omitempty"`
}

// Pivot is the complete position table for a filter text and an expand state.
type Pivot struct {
	Filter string     `json:"filter"`
	Rows   []PivotRow `json:"rows"`
	Totals Totals     `json:"totals"`
	// RawBySymbol holds every input lot, filtered or not, keyed by symbol.
	RawBySymbol map[string][]Lot `json:"-"`
}

// NewPivot builds the position table of lots filtered by text.
//
// Rows and Totals are computed from the same filtered lots. expanded may be nil,
// then every row is collapsed.
func NewPivot(lots []Lot, text string, expanded *Expanded) *Pivot {
	filtered := FilterLots(lots, text)
	raw := GroupBySymbol(lots)

	rows := Aggregate(filtered)
	p := &Pivot{
		Filter:      text,
		Rows:        make([]PivotRow, 0, len(rows)),
		Totals:      ComputeTotals(filtered),
		RawBySymbol: raw,
	}
	for _, r := range rows {
		pr := PivotRow{Row: r}
		if expanded.IsExpanded(r.Symbol) {
			pr.Expanded = true
			pr.Details = raw[r.Symbol]
		}
		p.Rows = append(p.Rows, pr)
	}
	return p
}

// AggregatedRows returns the rows without expansion details.
func (p *Pivot) AggregatedRows() []Row {
	rows := make([]Row, 0, len(p.Rows))
	for _, r := range p.Rows {
		rows = append(rows, r.Row)
	}
	return rows
}

// Lots returns the filtered lots in row order.
func (p *Pivot) Lots() []Lot {
	var lots []Lot
	for _, r := range p.Rows {
		lots = append(lots, p.RawBySymbol[r.Symbol]...)
	}
	return lots
}
