// Package storage implements the filesystem-backed persistence layer for
// documents and folders.
//
// Every entity is a flat JSON file under a fixed directory layout:
//
//	<root>/documents/<docID>.json   document content
//	<root>/metadata/<docID>.json    document metadata summary
//	<root>/folders/<folderID>.json  folder record
//	<root>/previews/<docID>.svg     rendered thumbnail
//
// There is no cross-file transactional scope: a crash between the content and
// metadata writes of a create/update leaves the two stores inconsistent. Each
// service serializes its own mutations behind a RWMutex, which is the only
// concurrency control in the system.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths describes the on-disk layout under the storage root.
type Paths struct {
	Root string
}

// NewPaths returns the layout rooted at dir.
func NewPaths(dir string) Paths {
	return Paths{Root: dir}
}

// DocumentsDir is where document content files live.
func (p Paths) DocumentsDir() string { return filepath.Join(p.Root, "documents") }

// MetadataDir is where document metadata summaries live.
func (p Paths) MetadataDir() string { return filepath.Join(p.Root, "metadata") }

// FoldersDir is where folder records live.
func (p Paths) FoldersDir() string { return filepath.Join(p.Root, "folders") }

// PreviewsDir is where rendered SVG thumbnails live.
func (p Paths) PreviewsDir() string { return filepath.Join(p.Root, "previews") }

// ContentFile returns the path of a document's content file.
func (p Paths) ContentFile(docID string) string {
	return filepath.Join(p.DocumentsDir(), docID+".json")
}

// MetadataFile returns the path of a document's metadata file.
func (p Paths) MetadataFile(docID string) string {
	return filepath.Join(p.MetadataDir(), docID+".json")
}

// FolderFile returns the path of a folder record.
func (p Paths) FolderFile(folderID string) string {
	return filepath.Join(p.FoldersDir(), folderID+".json")
}

// PreviewFile returns the path of a document's SVG thumbnail.
func (p Paths) PreviewFile(docID string) string {
	return filepath.Join(p.PreviewsDir(), docID+".svg")
}

// Ensure creates the full directory tree.
func (p Paths) Ensure() error {
	for _, dir := range []string{p.DocumentsDir(), p.MetadataDir(), p.FoldersDir(), p.PreviewsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:gosec // G301: 0o755 is intentional for data directories
			return fmt.Errorf("failed to create storage directory %s: %w", dir, err)
		}
	}
	return nil
}
