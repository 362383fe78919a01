package errors

import "errors"

var (
	ErrContentNotFound      = errors.New("content not found")
	ErrWorkflowNotFound     = errors.New("workflow not found")
	ErrInvalidRequest       = errors.New("invalid request")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidState         = errors.New("content not in required status for transition")
	ErrActiveWorkflowExists = errors.New("content already has an active workflow")
	ErrInvalidSchedule      = errors.New("scheduled instants must be in the future and ordered")
)
