// Package wmk implements the Wrapped Master Key codec and wrap/unwrap
// protocol of spec §4.3 and §6.2: a 32-byte random Master Key is sealed
// under the User Encryption Key with XChaCha20-Poly1305, framed as
// nonce(24) ‖ ciphertext+tag, and base64-encoded for transport to the
// out-of-scope server.
package wmk

import (
	"encoding/base64"

	"github.com/lockmark/core/internal/cryptoprim"
	"github.com/lockmark/core/models"
)

// mkLen is the fixed length of a Master Key.
const mkLen = 32

// minDecodedLen is the shortest a decoded WMK blob can legitimately be:
// a full nonce plus a bare (zero-length plaintext) AEAD tag. Anything
// shorter cannot have been produced by Wrap and is rejected before any key
// material is touched.
const minDecodedLen = cryptoprim.NonceSize + cryptoprim.TagSize

// Wrap draws a fresh random Master Key and nonce, seals the MK under uek
// with aad, and returns the resulting WrappedMasterKey. Called only on first
// unlock (spec §4.3). uek is not zeroized here; the caller owns that.
func Wrap(uek, aad []byte) (models.WrappedMasterKey, []byte, error) {
	mk, err := cryptoprim.RandomBytes(mkLen)
	if err != nil {
		return models.WrappedMasterKey{}, nil, err
	}
	nonce, err := cryptoprim.RandomBytes(cryptoprim.NonceSize)
	if err != nil {
		cryptoprim.Zeroize(mk)
		return models.WrappedMasterKey{}, nil, err
	}

	ct, err := cryptoprim.AEADSeal(uek, nonce, aad, mk)
	if err != nil {
		cryptoprim.Zeroize(mk)
		return models.WrappedMasterKey{}, nil, err
	}

	return models.WrappedMasterKey{Nonce: nonce, Ciphertext: ct}, mk, nil
}

// Unwrap recovers the Master Key from w using uek and aad. Returns
// ErrWrongPassword if the AEAD tag does not verify (which also covers a
// corrupted blob — the two are indistinguishable, per spec §4.3/§7).
func Unwrap(w models.WrappedMasterKey, uek, aad []byte) ([]byte, error) {
	if len(w.Nonce) != cryptoprim.NonceSize {
		return nil, ErrMalformed
	}
	mk, err := cryptoprim.AEADOpen(uek, w.Nonce, aad, w.Ciphertext)
	if err != nil {
		return nil, ErrWrongPassword
	}
	return mk, nil
}

// Encode frames w as base64(nonce ‖ ciphertext+tag), the bit-exact wire form
// of spec §6.2.
func Encode(w models.WrappedMasterKey) string {
	blob := make([]byte, 0, len(w.Nonce)+len(w.Ciphertext))
	blob = append(blob, w.Nonce...)
	blob = append(blob, w.Ciphertext...)
	return base64.StdEncoding.EncodeToString(blob)
}

// Decode parses the base64 wire form produced by Encode back into a
// WrappedMasterKey. Returns ErrMalformed if decoding fails or the decoded
// blob is shorter than a nonce plus a bare AEAD tag.
func Decode(s string) (models.WrappedMasterKey, error) {
	blob, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return models.WrappedMasterKey{}, ErrMalformed
	}
	if len(blob) < minDecodedLen {
		return models.WrappedMasterKey{}, ErrMalformed
	}

	return models.WrappedMasterKey{
		Nonce:      blob[:cryptoprim.NonceSize],
		Ciphertext: blob[cryptoprim.NonceSize:],
	}, nil
}
