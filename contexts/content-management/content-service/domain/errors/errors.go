package errors

import "errors"

var (
	ErrContentNotFound = errors.New("content not found")
	ErrVersionNotFound = errors.New("version not found")
	ErrInvalidRequest  = errors.New("invalid request")
	ErrForbidden       = errors.New("forbidden")
	ErrInvalidState    = errors.New("invalid content state for operation")
	ErrSlugConflict    = errors.New("slug already in use")
	ErrVersionConflict = errors.New("concurrent version write")
)
