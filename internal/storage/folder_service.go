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

// defaultFolderNames are seeded once at startup when no folders exist yet.
var defaultFolderNames = []string{"Notes", "Journal"}

// FolderDetail is a folder together with its direct children and member
// documents, both sorted newest modification first.
type FolderDetail struct {
	Folder     *Folder
	Subfolders []*Folder
	Documents  []*DocumentMeta
}

// FolderService implements folder CRUD, cascading deletion and document-count
// maintenance over the flat-file layout. It is the sole writer of folder
// records; document metadata is only ever read here.
type FolderService struct {
	paths Paths

	mu sync.RWMutex
}

// NewFolderService creates a folder service.
func NewFolderService(paths Paths) *FolderService {
	return &FolderService{paths: paths}
}

// SeedDefaults creates the default folder set when no folder records exist.
// Called once at startup so that listing stays a pure read.
func (s *FolderService) SeedDefaults(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	folders, err := s.readAll(ctx)
	if err != nil {
		return err
	}
	if len(folders) > 0 {
		return nil
	}
	for _, name := range defaultFolderNames {
		f := &Folder{
			ID:         NewFolderID(),
			Name:       name,
			CreatedAt:  time.Now().UTC(),
			ModifiedAt: time.Now().UTC(),
		}
		if err := s.write(f); err != nil {
			return err
		}
		slog.InfoContext(ctx, "Seeded default folder", "id", f.ID, "name", name)
	}
	return nil
}

// ListRoot returns root-level folders ordered by creation time.
func (s *FolderService) ListRoot(ctx context.Context) ([]*Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	folders, err := s.readAll(ctx)
	if err != nil {
		return nil, err
	}
	var roots []*Folder
	for _, f := range folders {
		if f.ParentFolderID == "" {
			roots = append(roots, f)
		}
	}
	sort.Slice(roots, func(i, j int) bool {
		return roots[i].CreatedAt.Before(roots[j].CreatedAt)
	})
	return roots, nil
}

// Get returns a folder with its direct children and member documents. The
// cached documentCount is reconciled against the live scan and persisted when
// it has drifted.
func (s *FolderService) Get(ctx context.Context, id string) (*FolderDetail, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !IsFolderID(id) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	folder, err := s.load(id)
	if err != nil {
		return nil, err
	}

	all, err := s.readAll(ctx)
	if err != nil {
		return nil, err
	}
	var children []*Folder
	for _, f := range all {
		if f.ParentFolderID == id {
			children = append(children, f)
		}
	}
	docs, err := s.readDocumentMetadata(ctx, id)
	if err != nil {
		return nil, err
	}

	if folder.DocumentCount != len(docs) {
		slog.InfoContext(ctx, "Reconciling folder document count",
			"id", id, "cached", folder.DocumentCount, "live", len(docs))
		folder.DocumentCount = len(docs)
		folder.ModifiedAt = time.Now().UTC()
		if err := s.write(folder); err != nil {
			return nil, err
		}
	}

	sort.Slice(children, func(i, j int) bool {
		return children[i].ModifiedAt.After(children[j].ModifiedAt)
	})
	sort.Slice(docs, func(i, j int) bool {
		return docs[i].ModifiedAt.After(docs[j].ModifiedAt)
	})
	return &FolderDetail{Folder: folder, Subfolders: children, Documents: docs}, nil
}

// Create persists a new folder with a zero document count.
func (s *FolderService) Create(ctx context.Context, name, parentFolderID string) (*Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clean := SanitizeFolderName(name)
	if clean == "" {
		return nil, ErrEmptyFolderName
	}
	if parentFolderID != "" && !IsFolderID(parentFolderID) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidID, parentFolderID)
	}

	f := &Folder{
		ID:             NewFolderID(),
		Name:           clean,
		ParentFolderID: parentFolderID,
		CreatedAt:      time.Now().UTC(),
		ModifiedAt:     time.Now().UTC(),
	}
	if err := s.write(f); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "Created folder", "id", f.ID, "name", clean, "parent", parentFolderID)
	return f, nil
}

// Rename updates a folder's name.
func (s *FolderService) Rename(ctx context.Context, id, name string) (*Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	clean := SanitizeFolderName(name)
	if clean == "" {
		return nil, ErrEmptyFolderName
	}
	f, err := s.load(id)
	if err != nil {
		return nil, err
	}
	f.Name = clean
	f.ModifiedAt = time.Now().UTC()
	if err := s.write(f); err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "Renamed folder", "id", id, "name", clean)
	return f, nil
}

// Delete removes a folder tree: member documents first, then child folders
// depth-first, finally the folder's own record. Traversal is an explicit
// worklist with a visited set, so a malformed parent chain that forms a cycle
// terminates instead of recursing forever. There is no rollback; a failure
// partway leaves earlier deletions applied.
func (s *FolderService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.load(id); err != nil {
		return err
	}

	all, err := s.readAll(ctx)
	if err != nil {
		return err
	}
	children := make(map[string][]string)
	for _, f := range all {
		if f.ParentFolderID != "" {
			children[f.ParentFolderID] = append(children[f.ParentFolderID], f.ID)
		}
	}

	// Post-order traversal: children land in the deletion order before their
	// parent.
	type frame struct {
		id       string
		expanded bool
	}
	var order []string
	visited := make(map[string]bool)
	stack := []frame{{id: id}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if top.expanded {
			order = append(order, top.id)
			continue
		}
		if visited[top.id] {
			continue
		}
		visited[top.id] = true
		stack = append(stack, frame{id: top.id, expanded: true})
		for _, child := range children[top.id] {
			if !visited[child] {
				stack = append(stack, frame{id: child})
			}
		}
	}

	for _, fid := range order {
		docs, err := s.readDocumentMetadata(ctx, fid)
		if err != nil {
			return err
		}
		for _, m := range docs {
			// Content and metadata only; preview files are left behind here,
			// matching single-document delete asymmetry in the original flow.
			if err := os.Remove(s.paths.ContentFile(m.ID)); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to delete document content %s: %w", m.ID, err)
			}
			if err := os.Remove(s.paths.MetadataFile(m.ID)); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to delete document metadata %s: %w", m.ID, err)
			}
		}
		if err := os.Remove(s.paths.FolderFile(fid)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to delete folder record %s: %w", fid, err)
		}
		slog.InfoContext(ctx, "Deleted folder", "id", fid, "documents", len(docs))
	}
	return nil
}

// SetDocumentCount writes a recomputed document count into a folder record.
func (s *FolderService) SetDocumentCount(ctx context.Context, id string, count int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.load(id)
	if err != nil {
		return err
	}
	f.DocumentCount = count
	f.ModifiedAt = time.Now().UTC()
	return s.write(f)
}

// load reads a single folder record. Callers hold the appropriate lock.
func (s *FolderService) load(id string) (*Folder, error) {
	data, err := os.ReadFile(s.paths.FolderFile(id)) //nolint:gosec // G304: path is derived from a validated folder ID
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFolderNotFound
		}
		return nil, fmt.Errorf("failed to read folder: %w", err)
	}
	var f Folder
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse folder %s: %w", id, err)
	}
	return &f, nil
}

func (s *FolderService) write(f *Folder) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("failed to serialize folder: %w", err)
	}
	if err := os.WriteFile(s.paths.FolderFile(f.ID), data, 0o644); err != nil { //nolint:gosec // G306: 0o644 is intentional for user data files
		return fmt.Errorf("failed to write folder: %w", err)
	}
	return nil
}

// readAll loads every folder record, skipping files that fail to parse.
func (s *FolderService) readAll(ctx context.Context) ([]*Folder, error) {
	entries, err := os.ReadDir(s.paths.FoldersDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read folders directory: %w", err)
	}
	var folders []*Folder
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		f, err := s.load(strings.TrimSuffix(entry.Name(), ".json"))
		if err != nil {
			slog.WarnContext(ctx, "Skipping unreadable folder record", "file", entry.Name(), "err", err)
			continue
		}
		folders = append(folders, f)
	}
	return folders, nil
}

// readDocumentMetadata scans all document metadata for members of a folder.
// The folder store only reads document records, never writes them — except in
// Delete, which removes whole files.
func (s *FolderService) readDocumentMetadata(ctx context.Context, folderID string) ([]*DocumentMeta, error) {
	entries, err := os.ReadDir(s.paths.MetadataDir())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read metadata directory: %w", err)
	}
	var out []*DocumentMeta
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(s.paths.MetadataFile(strings.TrimSuffix(entry.Name(), ".json"))) //nolint:gosec // G304: path is derived from directory listing
		if err != nil {
			continue
		}
		var m DocumentMeta
		if err := json.Unmarshal(data, &m); err != nil {
			slog.WarnContext(ctx, "Skipping unreadable metadata record", "file", entry.Name(), "err", err)
			continue
		}
		if m.FolderID == folderID {
			out = append(out, &m)
		}
	}
	return out, nil
}
