package upload

import "errors"

var (
	ErrFileNotFound = errors.New("uploaded file not found")
	ErrEmptyUpload  = errors.New("uploaded file is empty")
	ErrInvalidKind  = errors.New("invalid upload kind")
)
