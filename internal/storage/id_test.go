package storage

import (
	"strings"
	"testing"
)

func TestNewDocumentID(t *testing.T) {
	id := NewDocumentID()
	if !strings.HasPrefix(id, "doc_") {
		t.Errorf("id = %q, want doc_ prefix", id)
	}
	if !IsDocumentID(id) {
		t.Errorf("IsDocumentID(%q) = false, want true", id)
	}
	if IsFolderID(id) {
		t.Errorf("IsFolderID(%q) = true for a document id", id)
	}
}

func TestNewFolderID(t *testing.T) {
	id := NewFolderID()
	if !strings.HasPrefix(id, "folder_") {
		t.Errorf("id = %q, want folder_ prefix", id)
	}
	if !IsFolderID(id) {
		t.Errorf("IsFolderID(%q) = false, want true", id)
	}
}

func TestIDUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for range 1000 {
		id := NewDocumentID()
		if seen[id] {
			t.Fatalf("duplicate id generated: %q", id)
		}
		seen[id] = true
	}
}

func TestIsDocumentIDRejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"doc_",
		"folder_1700000000000_abc123",
		"doc_notanumber_abc123",
		"doc_1700000000000_ABC!23",
		"document_1700000000000_abc123",
		"doc_1700000000000",
	}
	for _, id := range bad {
		if IsDocumentID(id) {
			t.Errorf("IsDocumentID(%q) = true, want false", id)
		}
	}
}
