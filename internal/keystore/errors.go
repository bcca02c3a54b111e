package keystore

import "errors"

// ErrClosed is returned by WithMAK once the Keystore has been closed: the
// underlying key material has already been zeroized and is no longer safe
// to read.
var ErrClosed = errors.New("keystore: closed")
