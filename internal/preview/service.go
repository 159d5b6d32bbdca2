// Package preview renders bounded-size SVG thumbnails of document text and
// serves their cache-friendly URLs. Generation runs on a background worker so
// the document write path never waits on rendering.
package preview

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/abrar360/unidrive/internal/storage"
)

const (
	// maxAttempts bounds retries of a failed render before the job is dropped.
	maxAttempts  = 3
	retryBackoff = 250 * time.Millisecond

	// placeholderURL is returned for documents whose preview has not been
	// written yet. The frontend ships the asset.
	placeholderURL = "/previews/generating.svg"
)

type job struct {
	docID   string
	content *storage.Content
}

// QueueStats counts the lifetime activity of the background worker.
type QueueStats struct {
	Enqueued  int `json:"enqueued"`
	Generated int `json:"generated"`
	Dropped   int `json:"dropped"`
	Failed    int `json:"failed"`
}

// BatchStats summarizes one batch regeneration pass.
type BatchStats struct {
	Total     int `json:"total"`
	Generated int `json:"generated"`
	Skipped   int `json:"skipped"`
	Errors    int `json:"errors"`
}

// Service generates and serves document thumbnails. It implements
// storage.PreviewQueue.
type Service struct {
	paths storage.Paths
	queue chan job

	mu    sync.Mutex
	stats QueueStats
}

// NewService creates a preview service with a bounded job queue.
func NewService(paths storage.Paths, queueSize int) *Service {
	if queueSize <= 0 {
		queueSize = 256
	}
	return &Service{paths: paths, queue: make(chan job, queueSize)}
}

// Start runs the background worker until ctx is cancelled. Render failures
// are retried a bounded number of times and never surface past the log.
func (s *Service) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			s.process(ctx, j)
		}
	}
}

func (s *Service) process(ctx context.Context, j job) {
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if _, err = s.Generate(ctx, j.docID, j.content); err == nil {
			s.mu.Lock()
			s.stats.Generated++
			s.mu.Unlock()
			return
		}
		slog.WarnContext(ctx, "Preview render failed", "id", j.docID, "attempt", attempt, "err", err)
		select {
		case <-ctx.Done():
			return
		case <-time.After(retryBackoff * time.Duration(attempt)):
		}
	}
	s.mu.Lock()
	s.stats.Failed++
	s.mu.Unlock()
	slog.ErrorContext(ctx, "Preview render abandoned", "id", j.docID, "err", err)
}

// Enqueue schedules a preview rebuild without blocking. When the queue is
// full the job is dropped; the next content write re-enqueues it.
func (s *Service) Enqueue(docID string, content *storage.Content) {
	select {
	case s.queue <- job{docID: docID, content: content}:
		s.mu.Lock()
		s.stats.Enqueued++
		s.mu.Unlock()
	default:
		s.mu.Lock()
		s.stats.Dropped++
		s.mu.Unlock()
		slog.Warn("Preview queue full, dropping job", "id", docID)
	}
}

// Generate renders and persists a document's thumbnail synchronously,
// overwriting any prior file, and returns its URL with a cache-busting token
// for the fresh write.
func (s *Service) Generate(ctx context.Context, docID string, content *storage.Content) (string, error) {
	svg := Render(ExtractLines(content))
	if err := os.WriteFile(s.paths.PreviewFile(docID), []byte(svg), 0o644); err != nil { //nolint:gosec // G306: 0o644 is intentional for user data files
		return "", fmt.Errorf("failed to write preview: %w", err)
	}
	slog.DebugContext(ctx, "Generated preview", "id", docID, "bytes", len(svg))
	return fmt.Sprintf("/previews/%s.svg?v=%d", docID, time.Now().UnixMilli()), nil
}

// URL returns the preview URL for a document. The cache-busting token derives
// from the file's modification time, so unchanged previews keep the same URL
// across requests. A document without a preview gets the generating
// placeholder; resolution never triggers generation.
func (s *Service) URL(docID string) string {
	info, err := os.Stat(s.paths.PreviewFile(docID))
	if err != nil {
		return placeholderURL
	}
	return fmt.Sprintf("/previews/%s.svg?v=%d", docID, info.ModTime().UnixMilli())
}

// Remove deletes the persisted preview file. Absence is not an error.
func (s *Service) Remove(docID string) error {
	if err := os.Remove(s.paths.PreviewFile(docID)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete preview: %w", err)
	}
	return nil
}

// RegenerateAll renders previews for every document that lacks one.
// Documents with an existing preview file are skipped.
func (s *Service) RegenerateAll(ctx context.Context, contents map[string]*storage.Content) BatchStats {
	stats := BatchStats{Total: len(contents)}
	for id, content := range contents {
		if _, err := os.Stat(s.paths.PreviewFile(id)); err == nil {
			stats.Skipped++
			continue
		}
		if _, err := s.Generate(ctx, id, content); err != nil {
			slog.WarnContext(ctx, "Batch preview render failed", "id", id, "err", err)
			stats.Errors++
			continue
		}
		stats.Generated++
	}
	return stats
}

// Stats returns a snapshot of the background worker counters.
func (s *Service) Stats() QueueStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}
