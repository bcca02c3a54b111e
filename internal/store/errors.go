package store

import "errors"

// ErrNotFound is returned by a Get accessor when the requested key has
// never been set, or has been cleared.
var ErrNotFound = errors.New("store: not found")
