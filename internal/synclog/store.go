package synclog

import (
	"context"
	"errors"
)

// DefaultCapacity is the number of attempts retained when no bound is configured.
const DefaultCapacity = 100

var (
	// ErrInvalidCapacity reports a log bound that is not positive.
	ErrInvalidCapacity = errors.New("synclog: capacity must be positive")
	// ErrKeyRequired reports a persisted log without a key.
	ErrKeyRequired = errors.New("synclog: log key is required")
)

// Store is the append-only, capped, newest-first record of sync attempts.
type Store interface {
	// Append prepends the attempt, drops everything beyond the capacity and
	// persists the result.
	Append(ctx context.Context, attempt Attempt) error
	// ReadAll returns the retained attempts, newest first.
	ReadAll(ctx context.Context) ([]Attempt, error)
}
