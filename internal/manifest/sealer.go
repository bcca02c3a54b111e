// Package manifest implements the manifest sealer of spec §4.4: encrypting
// and decrypting the opaque bookmark/tag/collection manifest bytes with the
// Manifest Authentication/encryption Key. The plaintext layout of
// manifestBytes is owned entirely by the browser-extension UI; this package
// never inspects it.
package manifest

import (
	"github.com/lockmark/core/internal/cryptoprim"
	"github.com/lockmark/core/models"
)

// Seal encrypts manifestBytes under mak with aad, drawing a fresh nonce.
// Never emits mak or any intermediate.
func Seal(mak, aad, manifestBytes []byte) (models.ManifestBlob, error) {
	nonce, err := cryptoprim.RandomBytes(cryptoprim.NonceSize)
	if err != nil {
		return models.ManifestBlob{}, err
	}
	ct, err := cryptoprim.AEADSeal(mak, nonce, aad, manifestBytes)
	if err != nil {
		return models.ManifestBlob{}, err
	}
	return models.ManifestBlob{Nonce: nonce, Ciphertext: ct}, nil
}

// Open decrypts and authenticates blob under mak with aad, returning the
// original manifest bytes. Returns ErrAuthFail on a tag mismatch.
func Open(blob models.ManifestBlob, mak, aad []byte) ([]byte, error) {
	if len(blob.Nonce) != cryptoprim.NonceSize {
		return nil, ErrMalformed
	}
	pt, err := cryptoprim.AEADOpen(mak, blob.Nonce, aad, blob.Ciphertext)
	if err != nil {
		return nil, ErrAuthFail
	}
	return pt, nil
}
