package dto

import "encoding/json"

// --- Documents ---

// DocumentSummary is the listing projection of a document.
type DocumentSummary struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	CreatedAt     string `json:"createdAt"`
	ModifiedAt    string `json:"modifiedAt"`
	Size          int64  `json:"size"`
	Type          string `json:"type"`
	FolderID      string `json:"folderId,omitempty"`
	PreviewURL    string `json:"previewUrl"`
	LastActivity  string `json:"lastActivity"`
	FormattedDate string `json:"formattedDate"`
}

// ListDocumentsResponse is a response containing document summaries.
type ListDocumentsResponse struct {
	Documents []DocumentSummary `json:"documents"`
}

// GetDocumentResponse is the full document record.
type GetDocumentResponse struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	CreatedAt  string          `json:"createdAt"`
	ModifiedAt string          `json:"modifiedAt"`
	Size       int64           `json:"size"`
	Type       string          `json:"type"`
	FolderID   string          `json:"folderId,omitempty"`
	Content    json.RawMessage `json:"content"`
}

// CreateDocumentResponse is a response from creating a document.
type CreateDocumentResponse struct {
	Success    bool   `json:"success"`
	DocumentID string `json:"documentId"`
	Title      string `json:"title"`
	FilePath   string `json:"filePath"`
}

// UpdateDocumentResponse is a response from updating a document.
type UpdateDocumentResponse struct {
	Success    bool   `json:"success"`
	DocumentID string `json:"documentId"`
	Title      string `json:"title"`
	ModifiedAt string `json:"modifiedAt"`
}

// DeleteDocumentResponse is a response from deleting a document.
type DeleteDocumentResponse struct {
	Success    bool   `json:"success"`
	DocumentID string `json:"documentId"`
}

// MovedDocument is the metadata of a document after a move.
type MovedDocument struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	CreatedAt  string `json:"createdAt"`
	ModifiedAt string `json:"modifiedAt"`
	Size       int64  `json:"size"`
	Type       string `json:"type"`
	FolderID   string `json:"folderId,omitempty"`
}

// MoveDocumentResponse is a response from moving a document.
type MoveDocumentResponse struct {
	Success  bool          `json:"success"`
	Document MovedDocument `json:"document"`
}

// --- Folders ---

// FolderResponse is a folder record.
type FolderResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	ParentFolderID string `json:"parentFolderId,omitempty"`
	CreatedAt      string `json:"createdAt"`
	ModifiedAt     string `json:"modifiedAt"`
	DocumentCount  int    `json:"documentCount"`
}

// ListFoldersResponse is a response containing root-level folders.
type ListFoldersResponse struct {
	Folders []FolderResponse `json:"folders"`
}

// GetFolderResponse is a folder with its direct children and member
// documents.
type GetFolderResponse struct {
	Folder     FolderResponse   `json:"folder"`
	Subfolders []FolderResponse `json:"subfolders"`
	Documents  []MovedDocument  `json:"documents"`
}

// CreateFolderResponse is a response from creating a folder.
type CreateFolderResponse struct {
	Success bool           `json:"success"`
	Folder  FolderResponse `json:"folder"`
}

// RenameFolderResponse is a response from renaming a folder.
type RenameFolderResponse struct {
	Success bool           `json:"success"`
	Folder  FolderResponse `json:"folder"`
}

// DeleteFolderResponse is a response from deleting a folder tree.
type DeleteFolderResponse struct {
	Success bool `json:"success"`
}

// --- Previews ---

// PreviewBatchStats summarizes one batch regeneration pass.
type PreviewBatchStats struct {
	Total     int `json:"total"`
	Generated int `json:"generated"`
	Skipped   int `json:"skipped"`
	Errors    int `json:"errors"`
}

// GeneratePreviewsResponse is a response from batch preview generation.
type GeneratePreviewsResponse struct {
	Stats PreviewBatchStats `json:"stats"`
}

// --- Health ---

// HealthResponse reports server liveness.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
