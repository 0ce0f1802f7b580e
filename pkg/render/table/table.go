// Package table builds the read-only tabular view of a loaded collection.
//
// The table mirrors the data as it was at load time. Sessions build it once
// and keep the result; later rotations do not refresh it.
package table

import (
	"fmt"
	"html"
	"io"
	"strings"

	"github.com/matzehuels/stickfigures/pkg/entity"
)

// Headers are the fixed column labels.
var Headers = [...]string{"ID", "X1", "Y1", "X2", "Y2", "X3", "Y3"}

// Table is a snapshot of a collection in display form.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Build returns one row per entity: the id followed by its six vars.
func Build(c entity.Collection) Table {
	t := Table{
		Headers: append([]string(nil), Headers[:]...),
		Rows:    make([][]string, 0, len(c)),
	}
	for _, e := range c {
		row := make([]string, 0, len(Headers))
		row = append(row, string(e.ID))
		for _, v := range e.Vars {
			row = append(row, entity.FormatValue(v))
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// WriteHTML writes the table as an HTML <table> element.
func (t Table) WriteHTML(w io.Writer) error {
	var b strings.Builder
	b.WriteString("<table>\n  <thead>\n    <tr>")
	for _, h := range t.Headers {
		fmt.Fprintf(&b, "<th>%s</th>", html.EscapeString(h))
	}
	b.WriteString("</tr>\n  </thead>\n  <tbody>\n")
	for _, row := range t.Rows {
		b.WriteString("    <tr>")
		for _, cell := range row {
			fmt.Fprintf(&b, "<td>%s</td>", html.EscapeString(cell))
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("  </tbody>\n</table>\n")
	_, err := io.WriteString(w, b.String())
	return err
}
