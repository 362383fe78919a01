package errors

import "errors"

var (
	ErrLogNotFound    = errors.New("audit log not found")
	ErrInvalidRequest = errors.New("invalid audit query")
	ErrInvalidAction  = errors.New("unsupported audit action")
	ErrForbidden      = errors.New("insufficient permissions")
)
