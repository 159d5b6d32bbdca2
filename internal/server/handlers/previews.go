package handlers

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/abrar360/unidrive/internal/server/dto"
)

// PreviewHandler serves preview files and batch regeneration.
type PreviewHandler struct {
	svc *Services
}

// NewPreviewHandler creates a new preview handler.
func NewPreviewHandler(svc *Services) *PreviewHandler {
	return &PreviewHandler{svc: svc}
}

// GeneratePreviews renders previews for every document that lacks one.
func (h *PreviewHandler) GeneratePreviews(ctx context.Context, _ *dto.GeneratePreviewsRequest) (*dto.GeneratePreviewsResponse, error) {
	contents, err := h.svc.Documents.AllContent(ctx)
	if err != nil {
		return nil, apiError(err, "Document")
	}
	stats := h.svc.Previews.RegenerateAll(ctx, contents)
	return &dto.GeneratePreviewsResponse{
		Stats: dto.PreviewBatchStats{
			Total:     stats.Total,
			Generated: stats.Generated,
			Skipped:   stats.Skipped,
			Errors:    stats.Errors,
		},
	}, nil
}

// ServePreviewFile serves the binary data of a preview image.
// This is a raw http.HandlerFunc for direct file serving with caching
// headers. Filenames must be bare (no path separators, no "..") and carry an
// image suffix.
func (h *PreviewHandler) ServePreviewFile(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("filename")
	if !validPreviewName(name) {
		http.Error(w, "invalid preview filename", http.StatusBadRequest)
		return
	}

	path := filepath.Join(h.svc.Paths.PreviewsDir(), name)
	f, err := http.Dir(h.svc.Paths.PreviewsDir()).Open(name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer func() { _ = f.Close() }()
	info, err := f.Stat()
	if err != nil {
		http.NotFound(w, r)
		return
	}

	etag := fmt.Sprintf(`"%x-%x"`, info.Size(), info.ModTime().UnixMilli())
	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	if strings.HasSuffix(name, ".svg") {
		w.Header().Set("Content-Type", "image/svg+xml")
	} else {
		w.Header().Set("Content-Type", "image/png")
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Header().Set("ETag", etag)
	http.ServeFile(w, r, path)
}

// validPreviewName rejects traversal attempts and non-image names.
func validPreviewName(name string) bool {
	if name == "" || strings.Contains(name, "..") ||
		strings.ContainsAny(name, `/\`) {
		return false
	}
	return strings.HasSuffix(name, ".svg") || strings.HasSuffix(name, ".png")
}
