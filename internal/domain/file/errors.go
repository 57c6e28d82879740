package file

import "errors"

var (
	ErrNotFound     = errors.New("file not found")
	ErrExists       = errors.New("file already exists")
	ErrEmptyContent = errors.New("no file content")
	ErrInvalidName  = errors.New("invalid name")
	ErrTooLarge     = errors.New("file too large to preview")
)
