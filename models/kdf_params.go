// Package models contains the wire and data-transfer types shared between
// the LockMark core packages: key-derivation parameters, the wrapped master
// key, the encrypted manifest, the PIN and lock-state persisted records, and
// session metadata. None of these types carry behavior beyond small,
// side-effect-free validation helpers — the cryptographic and state-machine
// logic that operates on them lives in internal/keys, internal/wmk,
// internal/manifest, internal/pin, and internal/lockstate.
package models

// KDFParams describes the Argon2id parameters the server has on file for a
// given user, plus the optional HKDF salt used to derive KEK/MAK from the
// master key. See internal/keys for how these are consumed.
type KDFParams struct {
	// Algo must be "argon2id"; any other value is rejected by internal/keys.
	Algo string `json:"algo"`
	// Salt is the 32-byte Argon2id salt.
	Salt []byte `json:"salt"`
	// M is the Argon2id memory cost in KiB.
	M uint32 `json:"m"`
	// T is the Argon2id iteration count.
	T uint32 `json:"t"`
	// P is the Argon2id parallelism.
	P uint8 `json:"p"`
	// HKDFSalt is the 16-byte salt used for HKDF sub-key derivation. Nil for
	// legacy users who registered before this field existed — see
	// internal/keys.EffectiveHKDFSalt for the documented fallback.
	HKDFSalt []byte `json:"hkdf_salt,omitempty"`
}
