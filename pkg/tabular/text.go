package tabular

import (
	"bytes"
)

const ContentTypeText = "text/plain; charset=utf-8"

// RenderText produces the plain-text report: per page the title, the header
// and the rows, with a form feed between pages.
func RenderText(t Table, layout Layout) []byte {
	layout = layout.normalized()
	var buf bytes.Buffer
	for i, page := range t.Pages(layout) {
		if i > 0 {
			buf.WriteByte('\f')
		}
		buf.WriteString(Truncate(t.Title, layout.LineWidth))
		buf.WriteByte('\n')
		buf.WriteString(page.Header)
		buf.WriteByte('\n')
		for _, line := range page.Lines {
			buf.WriteString(line)
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes()
}
