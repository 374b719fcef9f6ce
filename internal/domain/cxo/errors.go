package cxo

import "errors"

var (
	ErrNotFound      = errors.New("cxo entry not found")
	ErrEmailRequired = errors.New("a valid email is required")
	ErrDuplicate     = errors.New("cxo entry already exists for this email")
)
