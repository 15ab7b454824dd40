package shared

import "errors"

var (
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrLocked indicates a per-project save lock is held elsewhere.
	ErrLocked = errors.New("project locked by another save")
	// ErrInvalidShareToken occurs when a share token fails verification.
	ErrInvalidShareToken = errors.New("invalid share token")
)
