package model

import "strings"

// DocumentLayout represents the spatial organization of one page. Every
// text line the layout references belongs to exactly one of header, body
// or footer. PageWidth and PageHeight may be zero when the page dimensions
// are unknown.
type DocumentLayout struct {
	Header     []TextLine `json:"header"`
	Body       []TextLine `json:"body"`
	Footer     []TextLine `json:"footer"`
	Tables     []*Table   `json:"tables"`
	PageWidth  float64    `json:"page_width"`
	PageHeight float64    `json:"page_height"`
}

// AllLines returns the layout's lines in reading order: header, then body,
// then footer.
func (l *DocumentLayout) AllLines() []TextLine {
	lines := make([]TextLine, 0, len(l.Header)+len(l.Body)+len(l.Footer))
	lines = append(lines, l.Header...)
	lines = append(lines, l.Body...)
	lines = append(lines, l.Footer...)
	return lines
}

// Text returns the full document text, one line per text line in reading
// order.
func (l *DocumentLayout) Text() string {
	all := l.AllLines()
	parts := make([]string, len(all))
	for i, line := range all {
		parts[i] = line.Text
	}
	return strings.Join(parts, "\n")
}

// LineCount returns the total number of text lines across all regions.
func (l *DocumentLayout) LineCount() int {
	return len(l.Header) + len(l.Body) + len(l.Footer)
}
