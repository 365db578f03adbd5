package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/positions"
	md "github.com/nao1215/markdown"
)

// AllocationMarkdown renders the equities and asset class allocations.
func AllocationMarkdown(equities, assets []positions.Slice, currency string) string {
	currency = currencyOrDefault(currency)
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Allocation")

	doc.H2("Equities")
	if len(equities) == 0 {
		doc.PlainText("No equities.")
	} else {
		doc.Table(sliceTable(equities, currency, true))
	}

	doc.H2("Assets")
	doc.Table(sliceTable(assets, currency, false))

	return doc.String()
}

func sliceTable(slices []positions.Slice, currency string, withColor bool) md.TableSet {
	header := []string{"Label", "Value", "Share"}
	if withColor {
		header = append(header, "Color")
	}
	rows := make([][]string, 0, len(slices))
	for _, s := range slices {
		row := []string{s.Label, s.Value.Format(currency), s.Percent.String()}
		if withColor {
			row = append(row, s.Color)
		}
		rows = append(rows, row)
	}
	return md.TableSet{Header: header, Rows: rows}
}

// StatsMarkdown renders the headline figures and the market status.
func StatsMarkdown(s positions.Stats, status positions.MarketStatus, currency string) string {
	currency = currencyOrDefault(currency)
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Portfolio")
	doc.PlainText(status.String())

	table := md.TableSet{
		Header: []string{"Stat", "Value"},
		Rows: [][]string{
			{"Total Assets", s.TotalAssets.Format(currency)},
			{"Investments", s.Investments.Format(currency)},
			{"Day's Gain", fmt.Sprintf("%s (%s)", signedMoney(s.DaysGain, currency), s.DaysGainPercent.SignedString())},
			{"Cash", s.Cash.Format(currency)},
		},
	}
	doc.Table(table)

	return doc.String()
}

// EstimateMarkdown renders an order estimate.
func EstimateMarkdown(side string, e positions.Estimate, currency string) string {
	currency = currencyOrDefault(currency)
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s %s %s", side, e.Quantity, e.Symbol))
	rows := [][]string{
		{"Last Price", e.LastPrice.Format(currency)},
		{"Estimated Total", e.Total.Format(currency)},
	}
	if !e.Held.IsZero() {
		rows = append(rows, []string{"Held", e.Held.String()})
	}
	doc.Table(md.TableSet{Header: []string{"", "Value"}, Rows: rows})

	return doc.String()
}
