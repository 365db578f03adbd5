// Package renderer turns positions views into markdown and CSV.
package renderer

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"github.com/etnz/positions"
)

//go:embed *.md
var templates embed.FS

// PivotRenderOptions holds configuration for rendering a pivot table.
type PivotRenderOptions struct {
	Currency  string // display currency, e.g. "USD".
	SkipLots  bool   // Do not render the lots of expanded rows.
	NoCaption bool   // Do not render the title line.
}

// pivotView is the data the pivot templates are executed with.
type pivotView struct {
	*positions.Pivot
	Currency string
	SkipLots bool
}

// RenderPivot renders the pivot table, its expanded lots and totals to a markdown string.
func RenderPivot(p *positions.Pivot, opts PivotRenderOptions) string {
	partials := map[string]string{
		"pivot_title":  "pivot_title.md",
		"pivot_rows":   "pivot_rows.md",
		"pivot_totals": "pivot_totals.md",
	}
	// An empty file name results in an empty template.
	if opts.NoCaption {
		partials["pivot_title"] = ""
	}
	view := pivotView{Pivot: p, Currency: currencyOrDefault(opts.Currency), SkipLots: opts.SkipLots}
	return renderTemplate("pivot", "pivot.md", partials, view)
}

func currencyOrDefault(c string) string {
	if c == "" {
		return "USD"
	}
	return c
}

// signedMoney formats m with an explicit sign, zero is represented as "-".
func signedMoney(m positions.Money, currency string) string {
	if m.IsZero() {
		return "-"
	}
	if m.IsPositive() {
		return "+" + m.Format(currency)
	}
	return m.Format(currency)
}

var funcs = template.FuncMap{
	"money":  func(m positions.Money, currency string) string { return m.Format(currency) },
	"signed": signedMoney,
}

// renderTemplate is a generic utility to render a main template that depends on several partials.
func renderTemplate(templateName, mainFile string, partials map[string]string, data any) string {
	mainContent, err := fs.ReadFile(templates, mainFile)
	if err != nil {
		return fmt.Sprintf("error reading main template %q: %v", mainFile, err)
	}

	tmpl, err := template.New(templateName).Funcs(funcs).Parse(string(mainContent))
	if err != nil {
		return fmt.Sprintf("error parsing main template %q: %v", mainFile, err)
	}

	for name, file := range partials {
		var content []byte
		// An empty file name is a valid case, resulting in an empty template.
		if file != "" {
			var readErr error
			content, readErr = fs.ReadFile(templates, file)
			if readErr != nil {
				return fmt.Sprintf("error reading partial template %q: %v", file, readErr)
			}
		}
		if _, err := tmpl.New(name).Parse(string(content)); err != nil {
			return fmt.Sprintf("error parsing partial template %q for %q: %v", file, name, err)
		}
	}

	var b strings.Builder
	if err := tmpl.ExecuteTemplate(&b, templateName, data); err != nil {
		return fmt.Sprintf("error executing template %q: %v", templateName, err)
	}
	return b.String()
}
