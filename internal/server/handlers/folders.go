package handlers

import (
	"context"

	"github.com/abrar360/unidrive/internal/server/dto"
)

// FolderHandler handles folder CRUD requests.
type FolderHandler struct {
	svc *Services
}

// NewFolderHandler creates a new folder handler.
func NewFolderHandler(svc *Services) *FolderHandler {
	return &FolderHandler{svc: svc}
}

// ListFolders returns root-level folders ordered by creation time.
func (h *FolderHandler) ListFolders(ctx context.Context, _ *dto.ListFoldersRequest) (*dto.ListFoldersResponse, error) {
	folders, err := h.svc.Folders.ListRoot(ctx)
	if err != nil {
		return nil, apiError(err, "Folder")
	}
	out := make([]dto.FolderResponse, 0, len(folders))
	for _, f := range folders {
		out = append(out, toFolderResponse(f))
	}
	return &dto.ListFoldersResponse{Folders: out}, nil
}

// GetFolder returns a folder with its direct children and member documents.
func (h *FolderHandler) GetFolder(ctx context.Context, req *dto.GetFolderRequest) (*dto.GetFolderResponse, error) {
	detail, err := h.svc.Folders.Get(ctx, req.ID)
	if err != nil {
		return nil, apiError(err, "Folder")
	}
	resp := &dto.GetFolderResponse{
		Folder:     toFolderResponse(detail.Folder),
		Subfolders: make([]dto.FolderResponse, 0, len(detail.Subfolders)),
		Documents:  make([]dto.MovedDocument, 0, len(detail.Documents)),
	}
	for _, f := range detail.Subfolders {
		resp.Subfolders = append(resp.Subfolders, toFolderResponse(f))
	}
	for _, m := range detail.Documents {
		resp.Documents = append(resp.Documents, toDocumentMeta(m))
	}
	return resp, nil
}

// CreateFolder creates a new folder with a zero document count.
func (h *FolderHandler) CreateFolder(ctx context.Context, req *dto.CreateFolderRequest) (*dto.CreateFolderResponse, error) {
	folder, err := h.svc.Folders.Create(ctx, req.Name, req.ParentFolderID)
	if err != nil {
		return nil, apiError(err, "Folder")
	}
	return &dto.CreateFolderResponse{Success: true, Folder: toFolderResponse(folder)}, nil
}

// RenameFolder updates a folder's name.
func (h *FolderHandler) RenameFolder(ctx context.Context, req *dto.RenameFolderRequest) (*dto.RenameFolderResponse, error) {
	folder, err := h.svc.Folders.Rename(ctx, req.ID, req.Name)
	if err != nil {
		return nil, apiError(err, "Folder")
	}
	return &dto.RenameFolderResponse{Success: true, Folder: toFolderResponse(folder)}, nil
}

// DeleteFolder cascades a delete through a folder tree.
func (h *FolderHandler) DeleteFolder(ctx context.Context, req *dto.DeleteFolderRequest) (*dto.DeleteFolderResponse, error) {
	if err := h.svc.Folders.Delete(ctx, req.ID); err != nil {
		return nil, apiError(err, "Folder")
	}
	return &dto.DeleteFolderResponse{Success: true}, nil
}
