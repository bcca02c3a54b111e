package vault

import "errors"

// Sentinel errors returned by Vault's public entry points. Every unlock, PIN
// and manifest path maps to one of these (StartAutoLock returns
// lockstate.ErrInvalidTimeout as is); no package-internal error (wmk.
// ErrWrongPassword, pin.ErrAuthFail, adapter.ErrUnauthorized, ...) ever
// escapes un-translated, so a caller using errors.Is against this list never
// needs to know which sub-package produced the underlying failure.
var (
	// ErrWrongPassword means Unwrap's AEAD tag did not verify under the
	// derived UEK — indistinguishable from a corrupted wrapped master key.
	ErrWrongPassword = errors.New("vault: wrong password")

	// ErrWrongPIN means the candidate PIN's hash did not match the stored
	// one. Attempts remain below the hard-lock threshold.
	ErrWrongPIN = errors.New("vault: wrong pin")

	// ErrHardLocked means PinStoreData is absent or LockState.IsHardLocked
	// is set: only a full password unlock is accepted.
	ErrHardLocked = errors.New("vault: hard locked, password required")

	// ErrNotConfigured means UnlockWithPIN was called with no PinStoreData
	// on record, or FetchManifest found no manifest on the server.
	ErrNotConfigured = errors.New("vault: pin not configured")

	// ErrWMKUploadFailed means a first unlock generated a fresh master key
	// but the server rejected the WMK upload. The Keystore is not
	// installed and the fresh master key and MAK are discarded; there is no
	// upload-only retry, so a later Unlock runs the whole first unlock again.
	ErrWMKUploadFailed = errors.New("vault: wrapped master key upload failed")

	// ErrMalformed covers length/base64/tamper failures on WMK, PinStore,
	// or manifest blobs.
	ErrMalformed = errors.New("vault: malformed data")

	// ErrStorageUnavailable means the local key-value backend returned an
	// error other than "not found", or a manifest call to the server failed
	// with an error other than 401, 404 or 409.
	ErrStorageUnavailable = errors.New("vault: local storage unavailable")

	// ErrSessionExpired means the server returned 401 during a call that
	// required a valid bearer session.
	ErrSessionExpired = errors.New("vault: session expired")

	// ErrInternal covers CSPRNG/Argon2/HKDF primitive failures and
	// programmer-error misuse (e.g. calling a Keystore-scoped operation
	// while locked).
	ErrInternal = errors.New("vault: internal error")

	// ErrManifestConflict means the server's manifest version has advanced
	// past the version this push was based on; the caller should re-fetch,
	// reconcile, and retry.
	ErrManifestConflict = errors.New("vault: manifest version conflict")
)
