package pin

import "errors"

var (
	// ErrWrongPIN is returned by Verify when the candidate PIN does not
	// match the stored hash.
	ErrWrongPIN = errors.New("pin: wrong PIN")

	// ErrAuthFail is returned when decrypting the PIN-wrapped MAK fails
	// (tag mismatch).
	ErrAuthFail = errors.New("pin: authentication failed")

	// ErrMalformed is returned for structurally invalid encrypted-MAK blobs.
	ErrMalformed = errors.New("pin: malformed encrypted MAK")
)
