package preview

import (
	"regexp"
	"strings"

	"github.com/abrar360/unidrive/internal/storage"
)

// paragraphBreaks matches runs of two or more newlines, the paragraph
// separator in the editor's text stream.
var paragraphBreaks = regexp.MustCompile(`\n{2,}`)

// Line is one logical line of a document as rendered in a thumbnail.
// SpaceAbove is a spacing hint in layout units; every line after the first
// carries a small fixed amount.
type Line struct {
	Text       string
	SpaceAbove int
}

// ExtractLines turns a document's raw text stream into the ordered logical
// lines a thumbnail shows: paragraphs split on blank-line runs, stray
// single newlines removed, empty lines dropped.
func ExtractLines(content *storage.Content) []Line {
	if content == nil {
		return nil
	}
	var lines []Line
	for _, part := range paragraphBreaks.Split(strings.ReplaceAll(content.Body.Text, "\r", ""), -1) {
		text := strings.TrimSpace(strings.ReplaceAll(part, "\n", " "))
		if text == "" {
			continue
		}
		space := 0
		if len(lines) > 0 {
			space = 1
		}
		lines = append(lines, Line{Text: text, SpaceAbove: space})
	}
	return lines
}
