package positions

// colors is the chart color cycle, assigned to symbols in first request order.
var colors = []string{
	"#a855f7", "#3b82f6", "#f97316", "#ec4899", "#10b981",
	"#f59e0b", "#ef4444", "#8b5cf6", "#06b6d4", "#84cc16",
	"#f43f5e", "#34d399", "#f472b6", "#60a5fa", "#a78bfa",
	"#fb7185", "#a3e635", "#fbbf24", "#06b6d4", "#f97316",
}

// Palette assigns a stable color to each symbol.
//
// Its zero value is ready to use. A Palette is owned by its caller, typically
// for the lifetime of one chart, and is not safe for concurrent use.
type Palette struct {
	assigned map[string]string
}

// Color returns the color of symbol, assigning the next one in the cycle on first use.
func (p *Palette) Color(symbol string) string {
	if c, ok := p.assigned[symbol]; ok {
		return c
	}
	if p.assigned == nil {
		p.assigned = make(map[string]string)
	}
	c := colors[len(p.assigned)%len(colors)]
	p.assigned[symbol] = c
	return c
}

// Reset forgets every assignment.
func (p *Palette) Reset() { clear(p.assigned) }
