package vault

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/lockmark/core/internal/adapter"
	"github.com/lockmark/core/models"
)

// FetchManifest retrieves the encrypted manifest from the server and
// decrypts it with the current Keystore's MAK, round-tripping the bit-exact
// wire form of spec §6.3 through OpenManifest.
func (v *Vault) FetchManifest(ctx context.Context) ([]byte, error) {
	resp, err := v.adapter.GetManifest(ctx)
	if err != nil {
		if errors.Is(err, adapter.ErrUnauthorized) {
			return nil, v.expireSession()
		}
		if errors.Is(err, adapter.ErrNotFound) {
			return nil, ErrNotConfigured
		}
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	nonce, err := base64.StdEncoding.DecodeString(resp.Nonce)
	if err != nil {
		return nil, ErrMalformed
	}
	ciphertext, err := base64.StdEncoding.DecodeString(resp.Ciphertext)
	if err != nil {
		return nil, ErrMalformed
	}

	return v.OpenManifest(models.ManifestBlob{Nonce: nonce, Ciphertext: ciphertext})
}

// PushManifest seals manifestBytes under the current MAK and uploads it at
// version via PUT /vault/manifest. Returns ErrManifestConflict if the
// server's version has advanced past version since it was last fetched.
func (v *Vault) PushManifest(ctx context.Context, version int, manifestBytes []byte) (models.ManifestPutResponse, error) {
	blob, err := v.SealManifest(manifestBytes)
	if err != nil {
		return models.ManifestPutResponse{}, err
	}

	req := models.ManifestPutRequest{
		Version:    version,
		Nonce:      base64.StdEncoding.EncodeToString(blob.Nonce),
		Ciphertext: base64.StdEncoding.EncodeToString(blob.Ciphertext),
	}

	resp, err := v.adapter.PutManifest(ctx, req)
	if err != nil {
		if errors.Is(err, adapter.ErrUnauthorized) {
			return models.ManifestPutResponse{}, v.expireSession()
		}
		if errors.Is(err, adapter.ErrConflict) {
			return models.ManifestPutResponse{}, ErrManifestConflict
		}
		return models.ManifestPutResponse{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return resp, nil
}
