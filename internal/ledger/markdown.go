package ledger

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// RenderMarkdown renders the table as a GitHub pipe table with columns
// padded to their display width.
func RenderMarkdown(t *Table) string {
	if len(t.Header) == 0 {
		return ""
	}

	widths := make([]int, len(t.Header))
	measure := func(row []string) {
		for i, cell := range row {
			if w := runewidth.StringWidth(escapeCell(cell)); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(t.Header)
	for _, r := range t.Rows {
		measure(r)
	}

	var b strings.Builder
	writeRow := func(row []string) {
		b.WriteString("|")
		for i, cell := range row {
			b.WriteString(" ")
			b.WriteString(runewidth.FillRight(escapeCell(cell), widths[i]))
			b.WriteString(" |")
		}
		b.WriteString("\n")
	}

	writeRow(t.Header)
	b.WriteString("|")
	for _, w := range widths {
		b.WriteString(strings.Repeat("-", w+2))
		b.WriteString("|")
	}
	b.WriteString("\n")
	for _, r := range t.Rows {
		writeRow(r)
	}

	return strings.TrimSuffix(b.String(), "\n")
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

// ReplaceBetweenMarkers swaps everything between the first start marker and
// the following end marker for body, framed by blank lines.
func ReplaceBetweenMarkers(doc, start, end, body string) (string, error) {
	i := strings.Index(doc, start)
	if i < 0 {
		return "", fmt.Errorf("%w: %q", ErrMarkersNotFound, start)
	}
	j := strings.Index(doc[i+len(start):], end)
	if j < 0 {
		return "", fmt.Errorf("%w: %q", ErrMarkersNotFound, end)
	}
	j += i + len(start)

	return doc[:i+len(start)] + "\n\n" + body + "\n\n" + doc[j:], nil
}
