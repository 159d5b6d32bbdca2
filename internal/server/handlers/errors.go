// Maps storage sentinel errors onto API errors.

package handlers

import (
	"errors"

	"github.com/abrar360/unidrive/internal/server/dto"
	"github.com/abrar360/unidrive/internal/storage"
)

// apiError translates a storage error into its API representation. resource
// names the entity for not-found messages.
func apiError(err error, resource string) error {
	switch {
	case errors.Is(err, storage.ErrDocumentNotFound), errors.Is(err, storage.ErrFolderNotFound):
		return dto.NotFound(resource)
	case errors.Is(err, storage.ErrInvalidID):
		return dto.InvalidFormat("id")
	case errors.Is(err, storage.ErrCorruptDocument):
		return dto.CorruptRecord(resource).Wrap(err)
	case errors.Is(err, storage.ErrEmptyFolderName):
		return dto.BadRequest("Folder name is empty after sanitization")
	default:
		return dto.InternalWithError("Storage operation failed", err)
	}
}
