package dto

import (
	"encoding/json"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ID shapes accepted by the API. The random suffix length is not pinned so
// that records written by older builds keep resolving.
var (
	docIDPattern    = regexp.MustCompile(`^doc_[0-9]+_[0-9a-z]+$`)
	folderIDPattern = regexp.MustCompile(`^folder_[0-9]+_[0-9a-z]+$`)
)

// maxRawTitleLen bounds raw input before sanitization truncates it further.
const maxRawTitleLen = 1000

// --- Documents ---

// ListDocumentsRequest is a request to list all documents.
type ListDocumentsRequest struct{}

// Validate is a no-op for ListDocumentsRequest.
func (r *ListDocumentsRequest) Validate() error { return nil }

// GetDocumentRequest is a request to get a document.
type GetDocumentRequest struct {
	ID string `path:"id"`
}

// Validate validates the get document request fields.
func (r *GetDocumentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID, validation.Required, validation.Match(docIDPattern)),
	)
}

// CreateDocumentRequest is a request to create a document. Content is kept
// opaque: the editor owns its shape and the server only re-serializes it.
type CreateDocumentRequest struct {
	Title   *string         `json:"title"`
	Content json.RawMessage `json:"content"`
}

// Validate validates the create document request fields.
func (r *CreateDocumentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Title, validation.Length(0, maxRawTitleLen)),
	)
}

// UpdateDocumentRequest is a request to update a document's title and/or
// content. Absent fields leave the stored value untouched.
type UpdateDocumentRequest struct {
	ID      string          `path:"id"`
	Title   *string         `json:"title"`
	Content json.RawMessage `json:"content"`
}

// Validate validates the update document request fields.
func (r *UpdateDocumentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID, validation.Required, validation.Match(docIDPattern)),
		validation.Field(&r.Title, validation.Length(0, maxRawTitleLen)),
	)
}

// DeleteDocumentRequest is a request to delete a document.
type DeleteDocumentRequest struct {
	ID string `path:"id"`
}

// Validate validates the delete document request fields.
func (r *DeleteDocumentRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID, validation.Required, validation.Match(docIDPattern)),
	)
}

// MoveDocumentRequest is a request to move a document into a folder. A null
// or empty folderId moves the document to the root.
type MoveDocumentRequest struct {
	ID       string  `path:"id"`
	FolderID *string `json:"folderId"`
}

// Validate validates the move document request fields.
func (r *MoveDocumentRequest) Validate() error {
	if err := validation.ValidateStruct(r,
		validation.Field(&r.ID, validation.Required, validation.Match(docIDPattern)),
	); err != nil {
		return err
	}
	if r.FolderID != nil && *r.FolderID != "" && !folderIDPattern.MatchString(*r.FolderID) {
		return InvalidFormat("folderId")
	}
	return nil
}

// --- Folders ---

// ListFoldersRequest is a request to list root-level folders.
type ListFoldersRequest struct{}

// Validate is a no-op for ListFoldersRequest.
func (r *ListFoldersRequest) Validate() error { return nil }

// GetFolderRequest is a request to get a folder with its contents.
type GetFolderRequest struct {
	ID string `path:"id"`
}

// Validate validates the get folder request fields.
func (r *GetFolderRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID, validation.Required, validation.Match(folderIDPattern)),
	)
}

// CreateFolderRequest is a request to create a folder.
type CreateFolderRequest struct {
	Name           string `json:"name"`
	ParentFolderID string `json:"parentFolderId"`
}

// Validate validates the create folder request fields.
func (r *CreateFolderRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, maxRawTitleLen)),
		validation.Field(&r.ParentFolderID, validation.Match(folderIDPattern)),
	)
}

// RenameFolderRequest is a request to rename a folder.
type RenameFolderRequest struct {
	ID   string `path:"id"`
	Name string `json:"name"`
}

// Validate validates the rename folder request fields.
func (r *RenameFolderRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID, validation.Required, validation.Match(folderIDPattern)),
		validation.Field(&r.Name, validation.Required, validation.Length(1, maxRawTitleLen)),
	)
}

// DeleteFolderRequest is a request to delete a folder tree.
type DeleteFolderRequest struct {
	ID string `path:"id"`
}

// Validate validates the delete folder request fields.
func (r *DeleteFolderRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ID, validation.Required, validation.Match(folderIDPattern)),
	)
}

// --- Previews ---

// GeneratePreviewsRequest is a request to batch-generate missing previews.
type GeneratePreviewsRequest struct{}

// Validate is a no-op for GeneratePreviewsRequest.
func (r *GeneratePreviewsRequest) Validate() error { return nil }

// --- Health ---

// HealthRequest is a request for the health check endpoint.
type HealthRequest struct{}

// Validate is a no-op for HealthRequest.
func (r *HealthRequest) Validate() error { return nil }
