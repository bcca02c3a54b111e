package vault

import "github.com/lockmark/core/models"

// WMKAAD, ManifestAAD, and PinMAKAAD are the only places in this module that
// decide which frozen label an AEAD operation authenticates under. Every
// caller builds AAD through one of these, never by formatting the label
// string inline, so a future fourth label cannot be introduced by accident.

// WMKAAD returns the AAD bytes for wrapping/unwrapping the master key.
func WMKAAD(aad models.AADContext) []byte {
	return aad.Build(models.WMKLabel)
}

// ManifestAAD returns the AAD bytes for sealing/opening the manifest.
func ManifestAAD(aad models.AADContext) []byte {
	return aad.Build(models.ManifestLabel)
}

// PinMAKAAD returns the AAD bytes for sealing/opening the PIN-wrapped MAK.
func PinMAKAAD(aad models.AADContext) []byte {
	return aad.Build(models.PinMAKLabel)
}

// validatePinStoreBinding guards against a downgrade attack on tampered
// local storage: ps.AAD carries no label (labels are never persisted, only
// ever recomputed from the frozen constants above), but it does duplicate
// the user/vault binding that ps.UserID/ps.VaultID already carry. Before any
// PIN-path AEAD operation touches key material, the two copies must agree —
// a mismatch means the record was edited or corrupted after it was written.
func validatePinStoreBinding(ps models.PinStoreData) error {
	if ps.UserID != ps.AAD.UserID || ps.VaultID != ps.AAD.VaultID {
		return ErrMalformed
	}
	return nil
}
