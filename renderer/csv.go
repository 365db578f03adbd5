package renderer

import (
	"fmt"
	"io"

	"github.com/etnz/positions"
	"github.com/gocarina/gocsv"
)

// WriteRowsCSV writes aggregated rows as CSV, with a header line.
func WriteRowsCSV(w io.Writer, rows []positions.Row) error {
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("cannot write rows as csv: %w", err)
	}
	return nil
}

// WriteLotsCSV writes lots as CSV, with a header line.
func WriteLotsCSV(w io.Writer, lots []positions.Lot) error {
	if err := gocsv.Marshal(lots, w); err != nil {
		return fmt.Errorf("cannot write lots as csv: %w", err)
	}
	return nil
}

// WriteSlicesCSV writes allocation slices as CSV, with a header line.
func WriteSlicesCSV(w io.Writer, slices []positions.Slice) error {
	if err := gocsv.Marshal(slices, w); err != nil {
		return fmt.Errorf("cannot write allocation as csv: %w", err)
	}
	return nil
}
