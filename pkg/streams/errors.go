package streams

import (
	"errors"

	"github.com/mohtashimnawaz/satoshiflow/pkg/storage"
)

// Errors returned by Service. Each is wrapped with a human-readable reason,
// so callers branch with errors.Is and show err.Error() as is.
var (
	ErrNotFound          = storage.ErrNotFound
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidState      = errors.New("invalid state")
	ErrNotActive         = errors.New("not active")
	ErrNothingToClaim    = errors.New("nothing to claim")
	ErrTimeoutNotReached = errors.New("timeout not reached")
	ErrInvalidArgument   = errors.New("invalid argument")
)
