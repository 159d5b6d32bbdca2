package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// PreviewQueue is the preview subsystem as seen by the stores: thumbnails are
// regenerated off the write path, removed with their document, and resolved to
// cache-friendly URLs for listings.
type PreviewQueue interface {
	// Enqueue schedules a preview rebuild. It must not block the caller.
	Enqueue(docID string, content *Content)
	// Remove deletes the persisted preview file. Absence is not an error.
	Remove(docID string) error
	// URL returns the preview URL for a document, or a placeholder when no
	// preview exists yet.
	URL(docID string) string
}

// DocumentSummary is the listing projection of a document.
type DocumentSummary struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	CreatedAt  time.Time `json:"createdAt"`
	ModifiedAt time.Time `json:"modifiedAt"`
	Size       int64     `json:"size"`
	Type       string    `json:"type"`
	FolderID   string    `json:"folderId,omitempty"`
	PreviewURL string    `json:"previewUrl"`
	Activity   string    `json:"lastActivity"`
	Date       string    `json:"formattedDate"`
}

// DocumentService implements document CRUD over the flat-file layout. All
// mutations are serialized behind mu; reads take the shared lock.
type DocumentService struct {
	paths    Paths
	previews PreviewQueue
	folders  *FolderService

	mu sync.RWMutex
}

// NewDocumentService creates a document service. previews may be nil in tests
// that do not exercise thumbnails.
func NewDocumentService(paths Paths, previews PreviewQueue, folders *FolderService) *DocumentService {
	return &DocumentService{paths: paths, previews: previews, folders: folders}
}

// List returns summaries of every document, newest modification first.
// Records that fail to parse are skipped, not fatal.
func (s *DocumentService) List(ctx context.Context) ([]DocumentSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	metas, err := s.readAllMetadata(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]DocumentSummary, 0, len(metas))
	for _, m := range metas {
		summaries = append(summaries, s.summarize(m))
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].ModifiedAt.After(summaries[j].ModifiedAt)
	})
	return summaries, nil
}

// Get returns the full content+metadata record for a document.
func (s *DocumentService) Get(ctx context.Context, id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.readDocument(id)
}

// Create persists a new document. An empty title falls back to the default;
// nil content gets the empty skeleton. The preview build is queued, not
// awaited.
func (s *DocumentService) Create(ctx context.Context, title string, content *Content) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if content == nil {
		content = DefaultContent()
	}
	id := NewDocumentID()
	now := time.Now().UTC()

	data, err := json.Marshal(content)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize content: %w", err)
	}

	meta := DocumentMeta{
		ID:         id,
		Title:      SanitizeDocumentTitle(title),
		CreatedAt:  now,
		ModifiedAt: now,
		Size:       int64(len(data)),
		Type:       "document",
	}

	if err := os.WriteFile(s.paths.ContentFile(id), data, 0o644); err != nil { //nolint:gosec // G306: 0o644 is intentional for user data files
		return nil, fmt.Errorf("failed to write content: %w", err)
	}
	if err := s.writeMetadata(&meta); err != nil {
		return nil, err
	}

	if s.previews != nil {
		s.previews.Enqueue(id, content)
	}
	slog.InfoContext(ctx, "Created document", "id", id, "title", meta.Title, "size", meta.Size)
	return &Document{DocumentMeta: meta, Content: content}, nil
}

// Update merges a new title and/or content into an existing document. Size
// and modifiedAt are always recomputed; the preview is rebuilt only when the
// content actually changed.
func (s *DocumentService) Update(ctx context.Context, id string, title *string, content *Content) (*Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.readDocument(id)
	if err != nil {
		return nil, err
	}

	if title != nil {
		doc.Title = SanitizeDocumentTitle(*title)
	}
	contentChanged := content != nil
	if contentChanged {
		doc.Content = content
	}

	data, err := json.Marshal(doc.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize content: %w", err)
	}
	doc.Size = int64(len(data))
	doc.ModifiedAt = time.Now().UTC()

	if err := os.WriteFile(s.paths.ContentFile(id), data, 0o644); err != nil { //nolint:gosec // G306: 0o644 is intentional for user data files
		return nil, fmt.Errorf("failed to write content: %w", err)
	}
	if err := s.writeMetadata(&doc.DocumentMeta); err != nil {
		return nil, err
	}

	if contentChanged && s.previews != nil {
		s.previews.Enqueue(id, doc.Content)
	}
	slog.InfoContext(ctx, "Updated document", "id", id, "contentChanged", contentChanged)
	return doc, nil
}

// Delete removes a document's content, metadata and preview. A missing
// preview file is tolerated.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.paths.ContentFile(id)); err != nil {
		if os.IsNotExist(err) {
			return ErrDocumentNotFound
		}
		return fmt.Errorf("failed to check document: %w", err)
	}

	if err := os.Remove(s.paths.ContentFile(id)); err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}
	if err := os.Remove(s.paths.MetadataFile(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete metadata: %w", err)
	}
	if s.previews != nil {
		if err := s.previews.Remove(id); err != nil {
			slog.WarnContext(ctx, "Failed to delete preview", "id", id, "err", err)
		}
	}
	slog.InfoContext(ctx, "Deleted document", "id", id)
	return nil
}

// Move reassigns a document's folder association and recomputes the document
// counts of both affected folders. folderID nil or empty moves the document to
// the root. The count recompute is a full scan of all document metadata,
// acceptable at this system's scale.
func (s *DocumentService) Move(ctx context.Context, docID string, folderID *string) (*DocumentMeta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !IsDocumentID(docID) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, docID)
	}
	target := ""
	if folderID != nil && *folderID != "" {
		target = *folderID
		if !IsFolderID(target) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidID, target)
		}
		if _, err := s.folders.load(target); err != nil {
			return nil, err
		}
	}

	meta, err := s.readMetadata(docID)
	if err != nil {
		return nil, err
	}

	prior := meta.FolderID
	meta.FolderID = target
	meta.ModifiedAt = time.Now().UTC()
	if err := s.writeMetadata(meta); err != nil {
		return nil, err
	}

	counts, err := s.tallyFolderCounts(ctx)
	if err != nil {
		return nil, err
	}
	for _, fid := range []string{prior, target} {
		if fid == "" || !IsFolderID(fid) {
			continue
		}
		if err := s.folders.SetDocumentCount(ctx, fid, counts[fid]); err != nil {
			slog.WarnContext(ctx, "Failed to update folder count", "folderId", fid, "err", err)
		}
	}

	slog.InfoContext(ctx, "Moved document", "id", docID, "from", prior, "to", target)
	return meta, nil
}

// tallyFolderCounts scans all document metadata and counts documents per
// folder.
func (s *DocumentService) tallyFolderCounts(ctx context.Context) (map[string]int, error) {
	metas, err := s.readAllMetadata(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, m := range metas {
		if m.FolderID != "" {
			counts[m.FolderID]++
		}
	}
	return counts, nil
}

func (s *DocumentService) readDocument(id string) (*Document, error) {
	data, err := os.ReadFile(s.paths.ContentFile(id)) //nolint:gosec // G304: path is derived from a validated document ID
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to read content: %w", err)
	}
	var content Content
	if err := json.Unmarshal(data, &content); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptDocument, id, err)
	}

	meta, err := s.readMetadata(id)
	if err != nil {
		return nil, err
	}
	return &Document{DocumentMeta: *meta, Content: &content}, nil
}

func (s *DocumentService) readMetadata(id string) (*DocumentMeta, error) {
	data, err := os.ReadFile(s.paths.MetadataFile(id)) //nolint:gosec // G304: path is derived from a validated document ID
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}
	var meta DocumentMeta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptDocument, id, err)
	}
	return &meta, nil
}

func (s *DocumentService) writeMetadata(meta *DocumentMeta) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to serialize metadata: %w", err)
	}
	if err := os.WriteFile(s.paths.MetadataFile(meta.ID), data, 0o644); err != nil { //nolint:gosec // G306: 0o644 is intentional for user data files
		return fmt.Errorf("failed to write metadata: %w", err)
	}
	return nil
}

// readAllMetadata loads every metadata record, skipping files that fail to
// parse.
func (s *DocumentService) readAllMetadata(ctx context.Context) ([]*DocumentMeta, error) {
	entries, err := os.ReadDir(s.paths.MetadataDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read metadata directory: %w", err)
	}

	var metas []*DocumentMeta
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		meta, err := s.readMetadata(id)
		if err != nil {
			slog.WarnContext(ctx, "Skipping unreadable metadata record", "file", entry.Name(), "err", err)
			continue
		}
		metas = append(metas, meta)
	}
	return metas, nil
}

// AllContent returns every document's content keyed by id. Records whose
// content cannot be read are skipped with a warning, same as List.
func (s *DocumentService) AllContent(ctx context.Context) (map[string]*Content, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	metas, err := s.readAllMetadata(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]*Content, len(metas))
	for _, m := range metas {
		doc, err := s.readDocument(m.ID)
		if err != nil {
			slog.WarnContext(ctx, "Skipping unreadable content record", "id", m.ID, "err", err)
			continue
		}
		out[m.ID] = doc.Content
	}
	return out, nil
}

// MetadataByFolder returns metadata of documents directly inside a folder.
func (s *DocumentService) MetadataByFolder(ctx context.Context, folderID string) ([]*DocumentMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	metas, err := s.readAllMetadata(ctx)
	if err != nil {
		return nil, err
	}
	var out []*DocumentMeta
	for _, m := range metas {
		if m.FolderID == folderID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *DocumentService) summarize(m *DocumentMeta) DocumentSummary {
	previewURL := ""
	if s.previews != nil {
		previewURL = s.previews.URL(m.ID)
	}
	return DocumentSummary{
		ID:         m.ID,
		Title:      m.Title,
		CreatedAt:  m.CreatedAt,
		ModifiedAt: m.ModifiedAt,
		Size:       m.Size,
		Type:       m.Type,
		FolderID:   m.FolderID,
		PreviewURL: previewURL,
		Activity:   "Edited " + relativeTime(m.ModifiedAt),
		Date:       m.ModifiedAt.Format("Jan 2, 2006"),
	}
}

// relativeTime renders a coarse human-readable distance from now.
func relativeTime(t time.Time) string {
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%d days ago", int(d.Hours()/24))
	}
}
