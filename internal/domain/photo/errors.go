package photo

import "errors"

var (
	// Validation failures, caught before any I/O
	ErrUnsupportedType = errors.New("file type is not allowed")
	ErrTooLarge        = errors.New("file exceeds maximum allowed size")

	// ErrUploadFailed means the store rejected the blob write
	ErrUploadFailed = errors.New("failed to store file")

	// ErrPersistFailed means the metadata insert failed after a successful
	// upload; the uploaded blob has been compensated (deleted)
	ErrPersistFailed = errors.New("failed to record photo")

	ErrPhotoNotFound = errors.New("photo not found")

	// ErrInvalidSet means a reorder request does not name exactly the photos
	// that currently belong to the aircraft
	ErrInvalidSet = errors.New("photo set does not match current photos")
)
