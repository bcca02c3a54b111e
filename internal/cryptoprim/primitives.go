// Package cryptoprim is a thin, typed surface over the primitives LockMark's
// key hierarchy and sealing operations are built from: Argon2id, HKDF-SHA256,
// XChaCha20-Poly1305 AEAD, a CSPRNG, constant-time comparison, and best-effort
// zeroization. It carries no policy — it does not know about passwords, PINs,
// master keys, or AAD labels. Higher layers (internal/keys, internal/wmk,
// internal/manifest, internal/pin) own those decisions.
package cryptoprim

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"io"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// NonceSize is the XChaCha20-Poly1305 nonce length in bytes.
const NonceSize = chacha20poly1305.NonceSizeX

// TagSize is the Poly1305 authentication tag length appended to every
// ciphertext produced by AEADSeal.
const TagSize = chacha20poly1305.Overhead

// KDFArgon2id derives an outLen-byte key from password and salt using
// Argon2id with memory cost m (KiB), iteration count t, and parallelism p.
// Parameters are taken as given by the caller (server-provided for the
// password path, core-fixed for the PIN path) and are not second-guessed
// here beyond the minimal sanity checks below.
func KDFArgon2id(password, salt []byte, m, t uint32, p uint8, outLen uint32) ([]byte, error) {
	if len(salt) == 0 || m == 0 || t == 0 || p == 0 || outLen == 0 {
		return nil, ErrKDFFail
	}
	return argon2.IDKey(password, salt, t, m, p, outLen), nil
}

// HKDFSHA256 performs an HKDF-SHA256 extract-and-expand over ikm, using salt
// and the domain-separating info string, producing outLen bytes.
func HKDFSHA256(ikm, salt, info []byte, outLen uint32) ([]byte, error) {
	if len(ikm) == 0 || outLen == 0 {
		return nil, ErrKDFFail
	}
	r := hkdf.New(sha256.New, ikm, salt, info)
	out := make([]byte, outLen)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, ErrKDFFail
	}
	return out, nil
}

// AEADSeal encrypts plaintext with XChaCha20-Poly1305 under key, nonce, and
// aad, returning ciphertext with the 16-byte tag appended. key must be 32
// bytes and nonce must be NonceSize (24) bytes.
func AEADSeal(key, nonce, aad, plaintext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, ErrKDFFail
	}
	if len(nonce) != aead.NonceSize() {
		return nil, ErrKDFFail
	}
	return aead.Seal(nil, nonce, plaintext, aad), nil
}

// AEADOpen decrypts and authenticates ciphertext (which must include the
// trailing 16-byte tag) with XChaCha20-Poly1305 under key, nonce, and aad.
// Returns ErrAuthFail if the tag does not verify; the caller cannot and must
// not distinguish a wrong key from a tampered ciphertext.
func AEADOpen(key, nonce, aad, ciphertext []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, ErrKDFFail
	}
	if len(nonce) != aead.NonceSize() {
		return nil, ErrAuthFail
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, ErrAuthFail
	}
	return plaintext, nil
}

// RandomBytes reads n cryptographically random bytes from the OS CSPRNG.
// Every nonce and every freshly generated key in this module is drawn from
// this function; none are ever reused.
func RandomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return nil, ErrRNGFail
	}
	return buf, nil
}

// ConstantTimeEqual reports whether a and b hold equal contents, in time
// that does not depend on their byte values. It is safe to use for verifying
// secret digests (e.g. a PIN hash) because, beyond a length check, it never
// branches on the contents of either slice.
func ConstantTimeEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare(a, b) == 1
}

// Zeroize overwrites every byte of every buffer in bufs with zero. It is a
// best-effort hygiene measure: the Go runtime offers no guarantee that a
// slice hasn't been copied by the garbage collector or escaped to another
// frame, but every ephemeral key and password buffer in this module is
// zeroized before its owning function returns regardless.
func Zeroize(bufs ...[]byte) {
	for _, b := range bufs {
		for i := range b {
			b[i] = 0
		}
	}
}
