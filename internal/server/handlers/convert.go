// Converts storage types to dto types for API responses.

package handlers

import (
	"time"

	"github.com/abrar360/unidrive/internal/server/dto"
	"github.com/abrar360/unidrive/internal/storage"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func toFolderResponse(f *storage.Folder) dto.FolderResponse {
	return dto.FolderResponse{
		ID:             f.ID,
		Name:           f.Name,
		ParentFolderID: f.ParentFolderID,
		CreatedAt:      formatTime(f.CreatedAt),
		ModifiedAt:     formatTime(f.ModifiedAt),
		DocumentCount:  f.DocumentCount,
	}
}

func toDocumentMeta(m *storage.DocumentMeta) dto.MovedDocument {
	return dto.MovedDocument{
		ID:         m.ID,
		Title:      m.Title,
		CreatedAt:  formatTime(m.CreatedAt),
		ModifiedAt: formatTime(m.ModifiedAt),
		Size:       m.Size,
		Type:       m.Type,
		FolderID:   m.FolderID,
	}
}

func toDocumentSummary(s storage.DocumentSummary) dto.DocumentSummary {
	return dto.DocumentSummary{
		ID:            s.ID,
		Title:         s.Title,
		CreatedAt:     formatTime(s.CreatedAt),
		ModifiedAt:    formatTime(s.ModifiedAt),
		Size:          s.Size,
		Type:          s.Type,
		FolderID:      s.FolderID,
		PreviewURL:    s.PreviewURL,
		LastActivity:  s.Activity,
		FormattedDate: s.Date,
	}
}
