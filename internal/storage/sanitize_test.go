package storage

import (
	"strings"
	"testing"
)

func TestSanitizeDocumentTitle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "My Document", "My Document"},
		{"strips unsafe characters", `a<b>c:d"e/f\g|h?i*j`, "abcdefghij"},
		{"trims whitespace", "  padded  ", "padded"},
		{"empty falls back to default", "", DefaultDocumentTitle},
		{"only unsafe falls back to default", `<>:"/\|?*`, DefaultDocumentTitle},
		{"whitespace falls back to default", "   ", DefaultDocumentTitle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeDocumentTitle(tt.input); got != tt.want {
				t.Errorf("SanitizeDocumentTitle(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeDocumentTitleTruncates(t *testing.T) {
	long := strings.Repeat("x", 500)
	got := SanitizeDocumentTitle(long)
	if len(got) != MaxDocumentTitleLen {
		t.Errorf("len = %d, want %d", len(got), MaxDocumentTitleLen)
	}
}

func TestSanitizeFolderName(t *testing.T) {
	if got := SanitizeFolderName(`Pro/jects`); got != "Projects" {
		t.Errorf("SanitizeFolderName = %q, want %q", got, "Projects")
	}
	// Unlike document titles, folders have no default name.
	if got := SanitizeFolderName("  "); got != "" {
		t.Errorf("SanitizeFolderName(blank) = %q, want empty", got)
	}
	long := strings.Repeat("y", 200)
	if got := SanitizeFolderName(long); len(got) != MaxFolderNameLen {
		t.Errorf("len = %d, want %d", len(got), MaxFolderNameLen)
	}
}

func TestSanitizeRemovesAllUnsafeCharacters(t *testing.T) {
	inputs := []string{
		"no<praise>here",
		"a:b|c?d",
		"mixed \\ / input * with ? everything < > : \"",
		strings.Repeat(`<>:"/\|?*ok`, 40),
	}
	for _, in := range inputs {
		got := SanitizeDocumentTitle(in)
		if strings.ContainsAny(got, `<>:"/\|?*`) {
			t.Errorf("SanitizeDocumentTitle(%q) = %q, contains unsafe characters", in, got)
		}
		if got != strings.TrimSpace(got) {
			t.Errorf("SanitizeDocumentTitle(%q) = %q, not trimmed", in, got)
		}
		if len(got) > MaxDocumentTitleLen {
			t.Errorf("SanitizeDocumentTitle(%q) len = %d, over max", in, len(got))
		}
	}
}
