package ratelimiter

import "errors"

var (
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrInvalidTokenCount = errors.New("invalid token count")
	ErrContextCancelled  = errors.New("context cancelled")
	ErrStoreUnavailable  = errors.New("store unavailable")
	ErrCleanupDisabled   = errors.New("cleanup interval must be positive")
	ErrAlreadyRunning    = errors.New("cleanup already running")
)
