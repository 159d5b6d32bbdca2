package preview

import (
	"fmt"
	"strings"
)

// Canvas geometry for rendered thumbnails, in logical units.
const (
	canvasWidth  = 300
	canvasHeight = 200
	padding      = 16
	lineHeight   = 14
	paragraphGap = 6
	fontSize     = 11
	// avgCharWidth is an estimate for the proportional font; wrapping is
	// character-count based, not measured.
	avgCharWidth = 6

	ellipsis = "…"
)

// maxCharsPerLine is the wrapping budget derived from the canvas geometry.
const maxCharsPerLine = (canvasWidth - 2*padding) / avgCharWidth

// Render produces the SVG markup of a document thumbnail. Logical lines are
// word-wrapped against the canvas width; output is cut off with an ellipsis
// when it runs past the canvas height. The result is deterministic for a
// given input.
func Render(lines []Line) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`,
		canvasWidth, canvasHeight, canvasWidth, canvasHeight))
	b.WriteString(fmt.Sprintf(
		`<rect width="%d" height="%d" fill="#ffffff" stroke="#e0e0e0"/>`,
		canvasWidth, canvasHeight))

	if len(lines) == 0 {
		b.WriteString(fmt.Sprintf(
			`<text x="%d" y="%d" font-family="sans-serif" font-size="%d" font-style="italic" fill="#9e9e9e" text-anchor="middle">Empty Document</text>`,
			canvasWidth/2, canvasHeight/2, fontSize))
		b.WriteString(`</svg>`)
		return b.String()
	}

	y := padding + lineHeight
	truncated := false
	var rendered []string
	for _, line := range lines {
		y += line.SpaceAbove * paragraphGap
		for _, wrapped := range wrap(line.Text, maxCharsPerLine) {
			if y > canvasHeight-padding {
				truncated = true
				break
			}
			rendered = append(rendered, fmt.Sprintf(
				`<text x="%d" y="%d" font-family="sans-serif" font-size="%d" fill="#424242">%s</text>`,
				padding, y, fontSize, escape(wrapped)))
			y += lineHeight
		}
		if truncated {
			break
		}
	}
	if truncated && len(rendered) > 0 {
		last := rendered[len(rendered)-1]
		rendered[len(rendered)-1] = strings.Replace(last, "</text>", ellipsis+"</text>", 1)
	}
	for _, t := range rendered {
		b.WriteString(t)
	}
	b.WriteString(`</svg>`)
	return b.String()
}

// wrap splits text into lines of at most max characters, breaking at word
// boundaries. A single word longer than the budget is truncated with an
// ellipsis rather than overflowing.
func wrap(text string, max int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var out []string
	cur := ""
	for _, w := range words {
		if r := []rune(w); len(r) > max {
			w = string(r[:max-1]) + ellipsis
		}
		switch {
		case cur == "":
			cur = w
		case len([]rune(cur))+1+len([]rune(w)) <= max:
			cur += " " + w
		default:
			out = append(out, cur)
			cur = w
		}
	}
	return append(out, cur)
}

// escape makes text safe to embed in markup.
func escape(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}
