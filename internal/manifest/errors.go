package manifest

import "errors"

var (
	// ErrAuthFail is returned by Open when the manifest ciphertext's
	// authentication tag does not verify.
	ErrAuthFail = errors.New("manifest: authentication failed")

	// ErrMalformed is returned when a manifest blob's nonce is the wrong
	// length.
	ErrMalformed = errors.New("manifest: malformed blob")
)
