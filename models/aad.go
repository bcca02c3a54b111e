package models

// Frozen AAD label constants. Any change to these strings implies a new
// labeled migration path, never an in-place format evolution — see
// internal/vault's AAD construction helpers, which take no label argument
// and only ever build AAD from these constants.
const (
	WMKLabel      = "wmk_v1"
	ManifestLabel = "manifest_v1"
	PinMAKLabel   = "pin_mak_v1"
)

// HKDF info strings for the two MK sub-keys. Also frozen.
const (
	KEKInfo = "VAULT/KEK v1"
	MAKInfo = "VAULT/MAK v1"
)

// AADContext identifies the (user, vault) pair a ciphertext is bound to; the
// label is supplied per call to Build. AAD strings are always computed on
// demand from these fields; they are never persisted as a single
// blob so that a tampered label cannot silently widen what a stored ciphertext
// authenticates for.
type AADContext struct {
	UserID  string `json:"user_id"`
	VaultID string `json:"vault_id"`
}

// KnownLabel reports whether label is one of the three frozen AAD labels.
// The AEAD paths in this module do not call it: they never receive a label
// from outside and build AAD only from the constants above.
func KnownLabel(label string) bool {
	switch label {
	case WMKLabel, ManifestLabel, PinMAKLabel:
		return true
	default:
		return false
	}
}

// Build returns the deterministic AAD string "user_id|vault_id|label" for
// the given label. Callers must only pass one of the frozen label constants;
// use KnownLabel to validate untrusted input before calling Build.
func (a AADContext) Build(label string) []byte {
	return []byte(a.UserID + "|" + a.VaultID + "|" + label)
}
