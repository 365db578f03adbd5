package positions

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Lots are persisted as JSONL, one lot per line, with a stable field order so
// that files stay human-readable and diff friendly.

// DecodeLots reads lots from a JSONL stream. Blank lines are ignored.
// name is for error messages only.
func DecodeLots(name string, r io.Reader) ([]Lot, error) {
	lots := make([]Lot, 0)
	scanner := bufio.NewScanner(r)
	i := 0
	for scanner.Scan() {
		i++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var l Lot
		if err := json.Unmarshal(line, &l); err != nil {
			return nil, fmt.Errorf("parse error %s:%d: not a correct json: %w", name, i, err)
		}
		if err := l.Validate(); err != nil {
			return nil, fmt.Errorf("invalid lot %s:%d: %w", name, i, err)
		}
		lots = append(lots, l)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", name, err)
	}
	return lots, nil
}

// EncodeLots writes lots as JSONL.
func EncodeLots(w io.Writer, lots []Lot) error {
	for _, l := range lots {
		line, err := encodeLot(l)
		if err != nil {
			return fmt.Errorf("cannot encode %s lot: %w", l.Symbol, err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", line); err != nil {
			return err
		}
	}
	return nil
}

func encodeLot(l Lot) ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("date", l.Date)
	w.Append("symbol", l.Symbol)
	w.Append("quantity", l.Quantity)
	w.Append("pricePaid", l.PricePaid)
	w.Append("lastPrice", l.LastPrice)
	w.Optional("change", l.Change)
	w.Optional("changePercent", l.ChangePercent)
	w.Optional("daysGain", l.DaysGain)
	w.Append("totalGain", l.TotalGain)
	w.Optional("totalGainPercent", l.TotalGainPercent)
	w.Append("value", l.Value)
	return w.MarshalJSON()
}

// LoadLots reads the JSONL lots file at path.
func LoadLots(path string) ([]Lot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open lots file %q: %w", path, err)
	}
	defer f.Close()
	return DecodeLots(path, f)
}

// SaveLots writes lots to the JSONL file at path.
func SaveLots(path string, lots []Lot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create lots file %q: %w", path, err)
	}
	if err := EncodeLots(f, lots); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
