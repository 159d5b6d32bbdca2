package storage

import (
	"context"
	"sync"
	"testing"
)

// newTestPaths returns an ensured on-disk layout rooted in a temp dir.
func newTestPaths(t *testing.T) Paths {
	t.Helper()
	p := Paths{Root: t.TempDir()}
	if err := p.Ensure(); err != nil {
		t.Fatalf("Ensure failed: %v", err)
	}
	return p
}

// stubQueue records preview queue calls without rendering anything.
type stubQueue struct {
	mu       sync.Mutex
	enqueued []string
	removed  []string
}

func (q *stubQueue) Enqueue(docID string, _ *Content) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.enqueued = append(q.enqueued, docID)
}

func (q *stubQueue) Remove(docID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.removed = append(q.removed, docID)
	return nil
}

func (q *stubQueue) URL(docID string) string {
	return "/previews/" + docID + ".svg?v=0"
}

// newTestServices builds the document and folder services over one layout.
func newTestServices(t *testing.T) (Paths, *DocumentService, *FolderService, *stubQueue) {
	t.Helper()
	paths := newTestPaths(t)
	folders := NewFolderService(paths)
	queue := &stubQueue{}
	docs := NewDocumentService(paths, queue, folders)
	return paths, docs, folders, queue
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	return context.Background()
}
