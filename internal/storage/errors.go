package storage

import "errors"

var (
	// ErrDocumentNotFound is returned when a document's content file is absent.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrFolderNotFound is returned when a folder record is absent.
	ErrFolderNotFound = errors.New("folder not found")
	// ErrCorruptDocument is returned when a persisted record exists but does
	// not parse. Distinct from not-found so callers can report it as a server
	// fault rather than a missing resource.
	ErrCorruptDocument = errors.New("document file is corrupted")
	// ErrInvalidID is returned for identifiers that do not match the expected
	// shape.
	ErrInvalidID = errors.New("invalid identifier")
	// ErrEmptyFolderName is returned when a folder name sanitizes to nothing.
	ErrEmptyFolderName = errors.New("folder name is empty after sanitization")
)
