package errors

import "errors"

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrInvalidRequest = errors.New("invalid access request")
	ErrInvalidRole    = errors.New("unsupported role")
	ErrForbidden      = errors.New("insufficient permissions")
)
