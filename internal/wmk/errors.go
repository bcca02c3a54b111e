package wmk

import "errors"

var (
	// ErrWrongPassword is returned by Unwrap when the AEAD tag fails to
	// verify. It is indistinguishable from a corrupted WMK blob by design —
	// see spec §4.3 and §7.
	ErrWrongPassword = errors.New("wmk: wrong password or corrupted key")

	// ErrMalformed is returned when the encoded WMK is too short to contain
	// a nonce and tag, or fails base64 decoding.
	ErrMalformed = errors.New("wmk: malformed wrapped master key")
)
