package apperrors

import "errors"

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrNotFound       = errors.New("not found")
	ErrUnknownTarget  = errors.New("unknown launch target")
	ErrSpawnFailed    = errors.New("spawn failed")
	ErrBudgetTooSmall = errors.New("budget too small")
)
