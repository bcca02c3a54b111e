// Package keys implements the LockMark key hierarchy engine: deriving the
// User Encryption Key from a password, and deriving the Key-Encryption-Key
// and Manifest-Authentication-Key sub-keys from a master key via HKDF.
//
// See spec §4.2 and the GLOSSARY (UEK, MK, KEK, MAK) for the full hierarchy.
// This package never persists anything and never logs; every key it returns
// is the caller's responsibility to zeroize via cryptoprim.Zeroize once
// consumed.
package keys

import (
	"github.com/lockmark/core/internal/cryptoprim"
	"github.com/lockmark/core/models"
)

// uekLen, subKeyLen are the fixed output lengths for every key this package
// derives: all symmetric keys in the hierarchy are 32 bytes.
const (
	uekLen    = 32
	subKeyLen = 32
)

// DeriveUEK runs Argon2id over password using the exact salt/m/t/p the
// server supplied in params, producing the 32-byte User Encryption Key. UEK
// is consumed immediately by internal/wmk's Wrap/Unwrap and must be
// zeroized by the caller once that call returns.
//
// Deterministic: two calls with identical password and params always
// produce byte-identical output, since Argon2id itself is deterministic.
func DeriveUEK(password []byte, params models.KDFParams) ([]byte, error) {
	if params.Algo != "argon2id" {
		return nil, ErrUnsupportedAlgo
	}
	uek, err := cryptoprim.KDFArgon2id(password, params.Salt, params.M, params.T, params.P, uekLen)
	if err != nil {
		return nil, err
	}
	return uek, nil
}

// DeriveSubKeys derives KEK and MAK from mk via two independent HKDF-SHA256
// extractions sharing hkdfSalt, with distinct info strings (models.KEKInfo,
// models.MAKInfo). If hkdfSalt is empty, the caller's own mk-derived salt
// (conventionally the Argon2 salt, per the legacy fallback documented in
// spec §9) is expected to have already been substituted by the caller — this
// function does not apply the fallback itself, so a read path that wants it
// must pass the Argon2 salt explicitly. See internal/vault for where that
// policy decision is enforced (reads allow the fallback, writes require an
// explicit salt).
func DeriveSubKeys(mk, hkdfSalt []byte) (kek, mak []byte, err error) {
	kek, err = cryptoprim.HKDFSHA256(mk, hkdfSalt, []byte(models.KEKInfo), subKeyLen)
	if err != nil {
		return nil, nil, err
	}
	mak, err = cryptoprim.HKDFSHA256(mk, hkdfSalt, []byte(models.MAKInfo), subKeyLen)
	if err != nil {
		cryptoprim.Zeroize(kek)
		return nil, nil, err
	}
	return kek, mak, nil
}

// EffectiveHKDFSalt implements the documented backwards-compatibility
// fallback of spec §4.2 / §9: when params carries no HKDFSalt, the Argon2
// salt is reused as the HKDF salt. This is intentionally only applied on the
// read path (see internal/vault.Unlock); first-unlock always supplies an
// explicit HKDFSalt and never reaches this fallback.
func EffectiveHKDFSalt(params models.KDFParams) []byte {
	if len(params.HKDFSalt) > 0 {
		return params.HKDFSalt
	}
	return params.Salt
}
