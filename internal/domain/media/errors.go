package media

import "errors"

var (
	ErrInvalidPath       = errors.New("path escapes the media root or is empty")
	ErrNotFound          = errors.New("media file or folder not found")
	ErrConflict          = errors.New("a file or folder with this name already exists")
	ErrExtensionMismatch = errors.New("file extension cannot be changed")
	ErrInvalidOperation  = errors.New("operation is not allowed on the media root")
	ErrPayloadTooLarge   = errors.New("file exceeds maximum allowed size")
)
