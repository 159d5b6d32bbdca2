package dto

import (
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestDocumentIDValidation(t *testing.T) {
	valid := []string{
		"doc_1700000000000_abc123",
		"doc_1_a",
	}
	invalid := []string{
		"",
		"doc_",
		"doc_abc_def",
		"folder_1700000000000_abc123",
		"doc_1700000000000_ABC123",
		"doc_1700000000000_abc123/extra",
	}
	for _, id := range valid {
		r := GetDocumentRequest{ID: id}
		if err := r.Validate(); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", id, err)
		}
	}
	for _, id := range invalid {
		r := GetDocumentRequest{ID: id}
		if err := r.Validate(); err == nil {
			t.Errorf("Validate(%q) = nil, want error", id)
		}
	}
}

func TestCreateDocumentTitleLength(t *testing.T) {
	r := CreateDocumentRequest{Title: strPtr(strings.Repeat("x", 1001))}
	if err := r.Validate(); err == nil {
		t.Error("over-long title accepted")
	}
	r = CreateDocumentRequest{Title: strPtr("fine")}
	if err := r.Validate(); err != nil {
		t.Errorf("Validate = %v, want nil", err)
	}
	r = CreateDocumentRequest{} // title optional
	if err := r.Validate(); err != nil {
		t.Errorf("Validate = %v, want nil for absent title", err)
	}
}

func TestMoveDocumentFolderID(t *testing.T) {
	id := "doc_1700000000000_abc123"

	r := MoveDocumentRequest{ID: id, FolderID: strPtr("folder_1700000000000_xyz789")}
	if err := r.Validate(); err != nil {
		t.Errorf("Validate = %v, want nil", err)
	}
	// Null and empty both mean "move to root".
	r = MoveDocumentRequest{ID: id}
	if err := r.Validate(); err != nil {
		t.Errorf("Validate = %v, want nil for null folderId", err)
	}
	r = MoveDocumentRequest{ID: id, FolderID: strPtr("")}
	if err := r.Validate(); err != nil {
		t.Errorf("Validate = %v, want nil for empty folderId", err)
	}
	r = MoveDocumentRequest{ID: id, FolderID: strPtr("doc_1_a")}
	if err := r.Validate(); err == nil {
		t.Error("document id accepted as folder id")
	}
}

func TestCreateFolderRequiresName(t *testing.T) {
	r := CreateFolderRequest{}
	if err := r.Validate(); err == nil {
		t.Error("empty name accepted")
	}
	r = CreateFolderRequest{Name: "Projects", ParentFolderID: "folder_1_a"}
	if err := r.Validate(); err != nil {
		t.Errorf("Validate = %v, want nil", err)
	}
}
