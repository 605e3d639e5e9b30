// Package tabular holds the rectangular result sets produced by reports and
// the layout rules shared by every export format.
package tabular

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Table is an ordered set of columns and rows of scalar values.
type Table struct {
	Title   string
	Columns []string
	Rows    [][]any
}

// Layout controls how a table is flattened into report lines.
type Layout struct {
	Delimiter   string
	LineWidth   int
	RowsPerPage int
}

func DefaultLayout() Layout {
	return Layout{
		Delimiter:   " | ",
		LineWidth:   130,
		RowsPerPage: 50,
	}
}

func (l Layout) normalized() Layout {
	def := DefaultLayout()
	if l.Delimiter == "" {
		l.Delimiter = def.Delimiter
	}
	if l.LineWidth <= 0 {
		l.LineWidth = def.LineWidth
	}
	if l.RowsPerPage <= 0 {
		l.RowsPerPage = def.RowsPerPage
	}
	return l
}

// Page is one printable page: the header line followed by its row lines.
type Page struct {
	Header string
	Lines  []string
}

// Pages flattens the table into delimiter-joined, width-truncated lines and
// splits them into pages. An empty table yields a single page with no lines.
func (t Table) Pages(layout Layout) []Page {
	layout = layout.normalized()
	header := Truncate(strings.Join(t.Columns, layout.Delimiter), layout.LineWidth)

	lines := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells := make([]string, len(row))
		for i, value := range row {
			cells[i] = FormatCell(value)
		}
		lines = append(lines, Truncate(strings.Join(cells, layout.Delimiter), layout.LineWidth))
	}

	if len(lines) == 0 {
		return []Page{{Header: header}}
	}

	pages := make([]Page, 0, (len(lines)+layout.RowsPerPage-1)/layout.RowsPerPage)
	for start := 0; start < len(lines); start += layout.RowsPerPage {
		end := start + layout.RowsPerPage
		if end > len(lines) {
			end = len(lines)
		}
		pages = append(pages, Page{Header: header, Lines: lines[start:end]})
	}
	return pages
}

// FormatCell renders a scalar value the way it appears in exports.
func FormatCell(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case decimal.Decimal:
		return v.String()
	case *decimal.Decimal:
		if v == nil {
			return ""
		}
		return v.String()
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.UTC().Format("2006-01-02 15:04")
	case *time.Time:
		if v == nil || v.IsZero() {
			return ""
		}
		return v.UTC().Format("2006-01-02 15:04")
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// Truncate cuts s to at most width runes.
func Truncate(s string, width int) string {
	if width <= 0 || utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width])
}
