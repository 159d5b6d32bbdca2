package handlers

import (
	"context"
	"encoding/json"

	"github.com/abrar360/unidrive/internal/server/dto"
	"github.com/abrar360/unidrive/internal/storage"
)

// DocumentHandler handles document CRUD and move requests.
type DocumentHandler struct {
	svc *Services
}

// NewDocumentHandler creates a new document handler.
func NewDocumentHandler(svc *Services) *DocumentHandler {
	return &DocumentHandler{svc: svc}
}

// ListDocuments returns summaries of all documents, newest first.
func (h *DocumentHandler) ListDocuments(ctx context.Context, _ *dto.ListDocumentsRequest) (*dto.ListDocumentsResponse, error) {
	summaries, err := h.svc.Documents.List(ctx)
	if err != nil {
		return nil, apiError(err, "Document")
	}
	out := make([]dto.DocumentSummary, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, toDocumentSummary(s))
	}
	return &dto.ListDocumentsResponse{Documents: out}, nil
}

// GetDocument returns the full content+metadata record of a document.
func (h *DocumentHandler) GetDocument(ctx context.Context, req *dto.GetDocumentRequest) (*dto.GetDocumentResponse, error) {
	doc, err := h.svc.Documents.Get(ctx, req.ID)
	if err != nil {
		return nil, apiError(err, "Document")
	}
	content, err := json.Marshal(doc.Content)
	if err != nil {
		return nil, dto.InternalWithError("Failed to serialize content", err)
	}
	return &dto.GetDocumentResponse{
		ID:         doc.ID,
		Title:      doc.Title,
		CreatedAt:  formatTime(doc.CreatedAt),
		ModifiedAt: formatTime(doc.ModifiedAt),
		Size:       doc.Size,
		Type:       doc.Type,
		FolderID:   doc.FolderID,
		Content:    content,
	}, nil
}

// CreateDocument creates a new document and queues its preview build.
func (h *DocumentHandler) CreateDocument(ctx context.Context, req *dto.CreateDocumentRequest) (*dto.CreateDocumentResponse, error) {
	content, err := decodeContent(req.Content)
	if err != nil {
		return nil, err
	}
	title := ""
	if req.Title != nil {
		title = *req.Title
	}
	doc, err := h.svc.Documents.Create(ctx, title, content)
	if err != nil {
		return nil, apiError(err, "Document")
	}
	return &dto.CreateDocumentResponse{
		Success:    true,
		DocumentID: doc.ID,
		Title:      doc.Title,
		FilePath:   h.svc.Paths.ContentFile(doc.ID),
	}, nil
}

// UpdateDocument merges a new title and/or content into a document.
func (h *DocumentHandler) UpdateDocument(ctx context.Context, req *dto.UpdateDocumentRequest) (*dto.UpdateDocumentResponse, error) {
	content, err := decodeContent(req.Content)
	if err != nil {
		return nil, err
	}
	doc, err := h.svc.Documents.Update(ctx, req.ID, req.Title, content)
	if err != nil {
		return nil, apiError(err, "Document")
	}
	return &dto.UpdateDocumentResponse{
		Success:    true,
		DocumentID: doc.ID,
		Title:      doc.Title,
		ModifiedAt: formatTime(doc.ModifiedAt),
	}, nil
}

// DeleteDocument removes a document's content, metadata and preview.
func (h *DocumentHandler) DeleteDocument(ctx context.Context, req *dto.DeleteDocumentRequest) (*dto.DeleteDocumentResponse, error) {
	if err := h.svc.Documents.Delete(ctx, req.ID); err != nil {
		return nil, apiError(err, "Document")
	}
	return &dto.DeleteDocumentResponse{Success: true, DocumentID: req.ID}, nil
}

// MoveDocument reassigns a document's folder and refreshes folder counts.
func (h *DocumentHandler) MoveDocument(ctx context.Context, req *dto.MoveDocumentRequest) (*dto.MoveDocumentResponse, error) {
	meta, err := h.svc.Documents.Move(ctx, req.ID, req.FolderID)
	if err != nil {
		return nil, apiError(err, "Document")
	}
	return &dto.MoveDocumentResponse{Success: true, Document: toDocumentMeta(meta)}, nil
}

// decodeContent parses the opaque content payload, if present. Unknown
// fields inside the payload are tolerated; the editor owns its shape.
func decodeContent(raw json.RawMessage) (*storage.Content, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var content storage.Content
	if err := json.Unmarshal(raw, &content); err != nil {
		return nil, dto.BadRequest("Invalid content payload").Wrap(err)
	}
	return &content, nil
}
