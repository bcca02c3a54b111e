package keys

import "errors"

var (
	// ErrUnsupportedAlgo is returned when KDFParams.Algo is not "argon2id".
	ErrUnsupportedAlgo = errors.New("keys: unsupported KDF algorithm")

	// ErrMissingHKDFSalt names a missing HKDF salt. No function in this
	// package returns it: EffectiveHKDFSalt falls back to the Argon2 salt.
	ErrMissingHKDFSalt = errors.New("keys: missing HKDF salt")
)
