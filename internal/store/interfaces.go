// Package store defines the local key-value persistence boundary of spec
// §6.5 and provides a SQLite-backed reference implementation of it.
//
// The core treats local storage the same way it treats the external server
// in internal/adapter: as a collaborator reached only through an interface,
// never imported by the cryptographic packages themselves. internal/vault is
// the only package that calls [KVStore] methods.
package store

import "github.com/lockmark/core/models"

// KVStore is the local key-value persistence boundary of spec §6.5: five
// named slots (keystore, pin_store, lock_state, is_locked, session), each
// with its own typed accessors. A platform-specific implementation may back
// this with SQLite, a browser extension's local storage, or an OS keychain;
// internal/vault is agnostic to which.
//
// KeystoreData is the one slot holding live key material. Implementations
// that persist it across process suspensions MUST encrypt it at rest using
// whatever facility the host platform provides (e.g. OS keychain wrapping);
// this interface only guarantees byte-for-byte storage, not at-rest
// encryption, which is a caller concern layered on top.
type KVStore interface {
	// GetKeystore returns the persisted KeystoreData, or ErrNotFound if the
	// vault is not currently unlocked.
	GetKeystore() (models.KeystoreData, error)
	// SetKeystore persists kd under the "keystore" slot, overwriting any
	// previous value.
	SetKeystore(kd models.KeystoreData) error
	// ClearKeystore deletes the "keystore" slot. Safe to call when already
	// absent.
	ClearKeystore() error

	// GetPinStore returns the persisted PinStoreData, or ErrNotFound if no
	// PIN is configured.
	GetPinStore() (models.PinStoreData, error)
	// SetPinStore persists ps under the "pin_store" slot.
	SetPinStore(ps models.PinStoreData) error
	// ClearPinStore deletes the "pin_store" slot. Safe to call when already
	// absent.
	ClearPinStore() error

	// GetLockState returns the persisted LockState. Returns the zero value
	// (never ErrNotFound) if nothing has been persisted yet, matching
	// LockState's own zero-value-is-meaningful convention.
	GetLockState() (models.LockState, error)
	// SetLockState persists ls under the "lock_state" slot.
	SetLockState(ls models.LockState) error

	// GetSession returns the persisted SessionToken, or ErrNotFound if no
	// user has ever logged in.
	GetSession() (models.SessionToken, error)
	// SetSession persists s under the "session" slot.
	SetSession(s models.SessionToken) error
	// ClearSession deletes the "session" slot, the boundary of a logout.
	ClearSession() error

	// IsSoftLocked reports the "is_locked" flag set by lock() and cleared
	// only by a successful unlock (spec §5).
	IsSoftLocked() (bool, error)
	// SetSoftLocked sets or clears the "is_locked" flag.
	SetSoftLocked(locked bool) error

	// Close releases any resources (file handles, connections) held by the
	// store.
	Close() error
}
