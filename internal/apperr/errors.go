package apperr

import "errors"

var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidSlug      = errors.New("invalid slug")
	ErrStoreUnavailable = errors.New("content store unavailable")
	ErrUnknownCategory  = errors.New("unknown category")
)
