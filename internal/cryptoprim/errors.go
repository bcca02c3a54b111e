package cryptoprim

import "errors"

// Primitive-level failure modes. None of these are retried at this layer;
// callers translate them into domain errors at the package boundary (see
// internal/wmk, internal/manifest, internal/pin) so that, for example, an
// AEAD tag mismatch never leaks as a distinct error from a malformed blob.
var (
	// ErrAuthFail is returned by AEADOpen when the authentication tag does
	// not verify, whether because the key is wrong or the ciphertext was
	// tampered with. The two cases are indistinguishable by design.
	ErrAuthFail = errors.New("cryptoprim: authentication failed")

	// ErrKDFFail is returned when Argon2id or HKDF is called with invalid
	// parameters (e.g. zero memory cost, wrong salt length).
	ErrKDFFail = errors.New("cryptoprim: key derivation failed")

	// ErrRNGFail is returned when the OS CSPRNG cannot satisfy a read.
	ErrRNGFail = errors.New("cryptoprim: random source unavailable")
)
