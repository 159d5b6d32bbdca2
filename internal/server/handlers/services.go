// Defines shared service dependencies for handlers.

// Package handlers implements the HTTP API endpoints.
package handlers

import (
	"github.com/abrar360/unidrive/internal/preview"
	"github.com/abrar360/unidrive/internal/storage"
	"github.com/abrar360/unidrive/internal/storage/history"
)

// Services holds all service dependencies for handlers.
type Services struct {
	Paths     storage.Paths
	Documents *storage.DocumentService
	Folders   *storage.FolderService
	Previews  *preview.Service
	Journal   *history.Journal // may be nil when history is disabled
}

// Config holds configuration values needed by handlers.
type Config struct {
	Version             string
	MaxRequestBodyBytes int64
}
