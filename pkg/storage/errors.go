package storage

import "errors"

// ErrNotFound is returned when a stream, milestone, notification or template id does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when a record kept changing underneath an update and every retry lost the race.
var ErrConflict = errors.New("concurrent update conflict")

// ErrNotOwner is returned when a per-user record exists but belongs to someone else.
var ErrNotOwner = errors.New("record belongs to another user")
