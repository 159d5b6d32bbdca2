package storage

import "strings"

// Name length caps for the two entity kinds.
const (
	MaxDocumentTitleLen = 100
	MaxFolderNameLen    = 50
)

// DefaultDocumentTitle is used when a sanitized title comes out empty.
const DefaultDocumentTitle = "Untitled Document"

// unsafePathChars are stripped from user-supplied names because entity names
// end up in log lines and exported file names.
const unsafePathChars = `<>:"/\|?*`

// SanitizeDocumentTitle strips filesystem-unsafe characters, trims whitespace
// and truncates to MaxDocumentTitleLen. An empty result falls back to
// DefaultDocumentTitle.
func SanitizeDocumentTitle(title string) string {
	s := sanitizeName(title, MaxDocumentTitleLen)
	if s == "" {
		return DefaultDocumentTitle
	}
	return s
}

// SanitizeFolderName strips filesystem-unsafe characters, trims whitespace and
// truncates to MaxFolderNameLen. May return the empty string; callers reject
// empty folder names.
func SanitizeFolderName(name string) string {
	return sanitizeName(name, MaxFolderNameLen)
}

func sanitizeName(s string, maxLen int) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if strings.ContainsRune(unsafePathChars, r) {
			continue
		}
		b.WriteRune(r)
	}
	out := strings.TrimSpace(b.String())
	if r := []rune(out); len(r) > maxLen {
		// Truncate on rune boundaries so multibyte names stay valid UTF-8.
		out = strings.TrimSpace(string(r[:maxLen]))
	}
	return out
}
