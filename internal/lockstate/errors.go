package lockstate

import "errors"

// ErrInvalidTimeout is returned by ValidateTimeout when the given duration
// is not one of the fixed auto-lock choices spec §4.6 allows (1, 2, 5, 10,
// 20, 30, 60 minutes).
var ErrInvalidTimeout = errors.New("lockstate: invalid auto-lock timeout")
