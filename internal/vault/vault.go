// Package vault implements the orchestrator of spec §4.8: the single
// composition point that wires the key hierarchy, WMK codec, manifest
// sealer, PIN subsystem, lock state machine, and Keystore into the four
// user-facing entry points a caller actually drives (Unlock, UnlockWithPIN,
// SetupPIN/RemovePIN, SealManifest/OpenManifest) plus session teardown
// (Lock, Logout).
//
// Vault never touches the local store or the server adapter directly for
// cryptographic decisions — it reads/writes their plain records and leaves
// every AEAD and KDF call to the packages that own them. A single mutex
// serializes Keystore installation; it is never held across an Argon2id
// call, matching the concurrency model of spec §5: everything ephemeral is
// computed in local buffers first, and the Keystore swap is the one
// non-cancellable epilogue at the end of each unlock path.
package vault

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lockmark/core/internal/adapter"
	"github.com/lockmark/core/internal/cryptoprim"
	"github.com/lockmark/core/internal/keys"
	"github.com/lockmark/core/internal/keystore"
	"github.com/lockmark/core/internal/lockstate"
	"github.com/lockmark/core/internal/logger"
	"github.com/lockmark/core/internal/manifest"
	"github.com/lockmark/core/internal/pin"
	"github.com/lockmark/core/internal/store"
	"github.com/lockmark/core/internal/wmk"
	"github.com/lockmark/core/models"
)

// Vault composes the cryptographic core with the two external collaborator
// boundaries (the local key-value store and the server adapter) into the
// orchestrator of spec §4.8.
type Vault struct {
	store      store.KVStore
	adapter    adapter.ServerAdapter
	logger     *logger.Logger
	autoLocker *lockstate.AutoLocker

	autoLockTimeout time.Duration

	mu sync.Mutex
	ks *keystore.Keystore
}

// New constructs a Vault wired to st and ad. autoLockTimeout must be one of
// lockstate.AllowedTimeouts; callers that don't want auto-lock may pass any
// value and simply never call StartAutoLock.
func New(st store.KVStore, ad adapter.ServerAdapter, log *logger.Logger, autoLockTimeout time.Duration) *Vault {
	return &Vault{
		store:           st,
		adapter:         ad,
		logger:          log,
		autoLocker:      lockstate.NewAutoLocker(),
		autoLockTimeout: autoLockTimeout,
	}
}

// UnlockResult is returned by Unlock.
type UnlockResult struct {
	// IsFirstUnlock is true when this call minted a fresh master key
	// because the caller supplied no wrapped master key.
	IsFirstUnlock bool
}

func (v *Vault) keystoreSnapshot() *keystore.Keystore {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ks
}

// installKeystore persists KeystoreData, swaps the in-memory Keystore under
// the single installation mutex, and closes any Keystore it replaces. Called
// only from the non-cancellable epilogue of a successful unlock.
func (v *Vault) installKeystore(mak []byte, aad models.AADContext) error {
	if err := v.store.SetKeystore(models.KeystoreData{MAK: mak, AAD: aad}); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.ks != nil {
		v.ks.Close()
	}
	v.ks = keystore.New(mak, aad)
	return nil
}

// State reports the current lock state as a pure function of session
// presence, Keystore presence, PinStoreData presence, and the persisted
// LockState, per spec §4.6.
func (v *Vault) State() (lockstate.State, error) {
	_, sessErr := v.store.GetSession()
	if sessErr != nil && !errors.Is(sessErr, store.ErrNotFound) {
		return 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, sessErr)
	}
	hasSession := sessErr == nil

	_, pinErr := v.store.GetPinStore()
	if pinErr != nil && !errors.Is(pinErr, store.ErrNotFound) {
		return 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, pinErr)
	}
	hasPinStore := pinErr == nil

	ls, err := v.store.GetLockState()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	return lockstate.Current(hasSession, v.keystoreSnapshot() != nil, hasPinStore, ls), nil
}

// Unlock implements spec §4.8's unlock(password, user_id, vault_id,
// kdf_params, wrapped_mk?). When wrappedMK is nil this is a first unlock: a
// fresh master key is generated, wrapped under the derived UEK, and
// uploaded to the server before the Keystore is installed. When wrappedMK is
// non-nil, it is unwrapped and the recovered master key re-derives the same
// MAK every time, by construction.
//
// password is zeroized by neither this call nor its caller automatically;
// callers that read it from a buffer they control should zeroize it
// themselves once Unlock returns.
func (v *Vault) Unlock(ctx context.Context, password []byte, userID, vaultID string, params models.KDFParams, wrappedMK *string) (UnlockResult, error) {
	if err := ctx.Err(); err != nil {
		return UnlockResult{}, err
	}

	aad := models.AADContext{UserID: userID, VaultID: vaultID}
	isFirstUnlock := wrappedMK == nil

	uek, err := keys.DeriveUEK(password, params)
	if err != nil {
		return UnlockResult{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	defer cryptoprim.Zeroize(uek)

	var mak []byte
	if isFirstUnlock {
		mak, err = v.firstUnlock(ctx, uek, aad, params)
	} else {
		mak, err = v.repeatUnlock(uek, aad, params, *wrappedMK)
	}
	if err != nil {
		return UnlockResult{IsFirstUnlock: isFirstUnlock}, err
	}
	defer cryptoprim.Zeroize(mak)

	// Non-cancellable epilogue: everything sensitive has already been
	// computed into local buffers; only bookkeeping remains.
	if err := v.installKeystore(mak, aad); err != nil {
		return UnlockResult{IsFirstUnlock: isFirstUnlock}, err
	}
	if err := v.store.SetLockState(lockstate.ResetOnSuccess()); err != nil {
		v.logger.Err(err).Str("func", "Unlock").Msg("persist lock state reset failed")
	}
	if err := v.store.SetSoftLocked(false); err != nil {
		v.logger.Err(err).Str("func", "Unlock").Msg("clear soft-locked flag failed")
	}
	sess := models.SessionToken{Token: v.adapter.Token(), UserID: userID, CreatedAt: time.Now()}
	if err := v.store.SetSession(sess); err != nil {
		v.logger.Err(err).Str("func", "Unlock").Msg("persist session failed")
	}

	v.autoLocker.RecordActivity()
	return UnlockResult{IsFirstUnlock: isFirstUnlock}, nil
}

// firstUnlock mints a fresh master key, uploads its wrapped form, and
// returns the derived MAK. Per the preserved-for-reads/rejected-for-writes
// policy on the legacy HKDF-salt fallback, a first unlock always requires an
// explicit params.HKDFSalt.
func (v *Vault) firstUnlock(ctx context.Context, uek []byte, aad models.AADContext, params models.KDFParams) ([]byte, error) {
	if len(params.HKDFSalt) == 0 {
		return nil, ErrMalformed
	}

	wrapped, mk, err := wmk.Wrap(uek, WMKAAD(aad))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	defer cryptoprim.Zeroize(mk)

	kek, mak, err := keys.DeriveSubKeys(mk, params.HKDFSalt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	cryptoprim.Zeroize(kek)

	encoded := wmk.Encode(wrapped)
	if err := v.adapter.UploadWMK(ctx, encoded); err != nil {
		cryptoprim.Zeroize(mak)
		if errors.Is(err, adapter.ErrUnauthorized) {
			return nil, v.expireSession()
		}
		return nil, fmt.Errorf("%w: %v", ErrWMKUploadFailed, err)
	}

	return mak, nil
}

// repeatUnlock unwraps the existing WMK and returns the recovered MAK. A tag
// mismatch at either the WMK or the AAD-binding layer surfaces as
// ErrWrongPassword, per spec §4.3: a wrong password and a corrupted/
// mismatched-context blob are deliberately indistinguishable.
func (v *Vault) repeatUnlock(uek []byte, aad models.AADContext, params models.KDFParams, wrappedMK string) ([]byte, error) {
	blob, err := wmk.Decode(wrappedMK)
	if err != nil {
		return nil, ErrMalformed
	}

	mk, err := wmk.Unwrap(blob, uek, WMKAAD(aad))
	if err != nil {
		return nil, ErrWrongPassword
	}
	defer cryptoprim.Zeroize(mk)

	kek, mak, err := keys.DeriveSubKeys(mk, keys.EffectiveHKDFSalt(params))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	cryptoprim.Zeroize(kek)

	return mak, nil
}

// UnlockWithPIN implements spec §4.8's unlock_with_pin(pin), following the
// five-step procedure of spec §4.5.
func (v *Vault) UnlockWithPIN(pinCode []byte) error {
	ps, err := v.store.GetPinStore()
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotConfigured
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	ls, err := v.store.GetLockState()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if ls.IsHardLocked {
		return ErrHardLocked
	}

	if err := validatePinStoreBinding(ps); err != nil {
		return err
	}

	if verr := pin.Verify(pinCode, ps.PinHashSalt, ps.PinHash); verr != nil {
		newLS, hardLocked := lockstate.RecordFailedAttempt(ls, time.Now())
		if err := v.store.SetLockState(newLS); err != nil {
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		if hardLocked {
			if err := v.store.ClearPinStore(); err != nil {
				return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
			}
			return ErrHardLocked
		}
		return ErrWrongPIN
	}

	mak, err := pin.UnwrapMAK(pinCode, ps.PinKeySalt, ps.EncryptedMAK, PinMAKAAD(ps.AAD))
	if err != nil {
		return ErrMalformed
	}
	defer cryptoprim.Zeroize(mak)

	if err := v.installKeystore(mak, ps.AAD); err != nil {
		return err
	}
	if err := v.store.SetLockState(lockstate.ResetOnSuccess()); err != nil {
		v.logger.Err(err).Str("func", "UnlockWithPIN").Msg("persist lock state reset failed")
	}
	if err := v.store.SetSoftLocked(false); err != nil {
		v.logger.Err(err).Str("func", "UnlockWithPIN").Msg("clear soft-locked flag failed")
	}

	v.autoLocker.RecordActivity()
	return nil
}

// SetupPIN implements spec §4.8's setup_pin(pin). Requires an unlocked
// Keystore; the PIN wraps the current MAK, never re-derives it.
func (v *Vault) SetupPIN(pinCode []byte) error {
	ks := v.keystoreSnapshot()
	if ks == nil {
		return fmt.Errorf("%w: setup_pin requires an unlocked vault", ErrInternal)
	}
	aad := ks.AAD()

	var ps models.PinStoreData
	err := ks.WithMAK(func(mak []byte) error {
		pinHash, pinHashSalt, pinKeySalt, encryptedMAK, err := pin.Setup(pinCode, mak, PinMAKAAD(aad))
		if err != nil {
			return err
		}
		ps = models.PinStoreData{
			PinHash:      pinHash,
			PinHashSalt:  pinHashSalt,
			PinKeySalt:   pinKeySalt,
			EncryptedMAK: encryptedMAK,
			AAD:          aad,
			UserID:       aad.UserID,
			VaultID:      aad.VaultID,
			Version:      1,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, keystore.ErrClosed) {
			return fmt.Errorf("%w: setup_pin requires an unlocked vault", ErrInternal)
		}
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if err := v.store.SetPinStore(ps); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// RemovePIN implements spec §4.8's remove_pin(): deletes PinStoreData,
// collapsing the account to HardLocked the next time it is soft-locked
// (spec §4.6). Safe to call when no PIN is configured.
func (v *Vault) RemovePIN() error {
	if err := v.store.ClearPinStore(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// Lock implements the explicit Unlocked → SoftLocked transition of spec
// §4.6: the Keystore is wiped and zeroized, PinStoreData is retained, and
// LockState is left unchanged.
func (v *Vault) Lock() error {
	v.mu.Lock()
	if v.ks != nil {
		v.ks.Close()
		v.ks = nil
	}
	v.mu.Unlock()

	v.autoLocker.Stop()

	if err := v.store.ClearKeystore(); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if err := v.store.SetSoftLocked(true); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// expireSession implements the Unlocked → SoftLocked transition spec §9
// assigns to a server-reported 401: it tears the Keystore down and marks the
// vault soft-locked exactly as Lock does, then returns ErrSessionExpired for
// the caller to surface. Safe to call before a Keystore has ever been
// installed (first-unlock's own WMK upload can itself 401).
func (v *Vault) expireSession() error {
	if err := v.Lock(); err != nil {
		v.logger.Err(err).Str("func", "expireSession").Msg("failed to tear down keystore on session expiry")
	}
	return ErrSessionExpired
}

// Logout implements the any-state → NeverUnlocked transition of spec §4.6:
// every per-user local artifact is cleared except the server-held WMK,
// which this module never owns a copy of anyway.
func (v *Vault) Logout() error {
	v.mu.Lock()
	if v.ks != nil {
		v.ks.Close()
		v.ks = nil
	}
	v.mu.Unlock()

	v.autoLocker.Stop()
	v.adapter.SetToken("")

	for _, clear := range []func() error{
		v.store.ClearKeystore,
		v.store.ClearPinStore,
		v.store.ClearSession,
	} {
		if err := clear(); err != nil {
			return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
	}
	if err := v.store.SetSoftLocked(false); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	if err := v.store.SetLockState(models.LockState{}); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// StartAutoLock begins the idle auto-lock timer configured at construction
// time. Activity recorded via RecordActivity resets the idle clock; once the
// vault has sat idle past the configured timeout, Lock is called
// automatically.
func (v *Vault) StartAutoLock(ctx context.Context) error {
	if err := lockstate.ValidateTimeout(v.autoLockTimeout); err != nil {
		return err
	}
	v.autoLocker.Start(ctx, v.autoLockTimeout, func() {
		if err := v.Lock(); err != nil {
			v.logger.Err(err).Str("func", "StartAutoLock").Msg("auto-lock failed")
		}
	})
	return nil
}

// RecordActivity resets the idle auto-lock clock. Callers should invoke this
// on every user-initiated operation the Vault does not already record
// activity for internally.
func (v *Vault) RecordActivity() {
	v.autoLocker.RecordActivity()
}

// SealManifest implements spec §4.8's seal_manifest(bytes). Requires an
// unlocked Keystore.
func (v *Vault) SealManifest(manifestBytes []byte) (models.ManifestBlob, error) {
	ks := v.keystoreSnapshot()
	if ks == nil {
		return models.ManifestBlob{}, fmt.Errorf("%w: seal_manifest requires an unlocked vault", ErrInternal)
	}

	var blob models.ManifestBlob
	err := ks.WithMAK(func(mak []byte) error {
		b, err := manifest.Seal(mak, ManifestAAD(ks.AAD()), manifestBytes)
		if err != nil {
			return err
		}
		blob = b
		return nil
	})
	if err != nil {
		if errors.Is(err, keystore.ErrClosed) {
			return models.ManifestBlob{}, fmt.Errorf("%w: seal_manifest requires an unlocked vault", ErrInternal)
		}
		return models.ManifestBlob{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	v.autoLocker.RecordActivity()
	return blob, nil
}

// OpenManifest implements spec §4.8's open_manifest({nonce, ciphertext}).
// Requires an unlocked Keystore. A tampered or mis-bound blob surfaces as
// ErrMalformed, never as a distinguishable AEAD failure.
func (v *Vault) OpenManifest(blob models.ManifestBlob) ([]byte, error) {
	ks := v.keystoreSnapshot()
	if ks == nil {
		return nil, fmt.Errorf("%w: open_manifest requires an unlocked vault", ErrInternal)
	}

	var pt []byte
	err := ks.WithMAK(func(mak []byte) error {
		p, err := manifest.Open(blob, mak, ManifestAAD(ks.AAD()))
		if err != nil {
			return err
		}
		pt = p
		return nil
	})
	if err != nil {
		if errors.Is(err, manifest.ErrAuthFail) || errors.Is(err, manifest.ErrMalformed) {
			return nil, ErrMalformed
		}
		if errors.Is(err, keystore.ErrClosed) {
			return nil, fmt.Errorf("%w: open_manifest requires an unlocked vault", ErrInternal)
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	v.autoLocker.RecordActivity()
	return pt, nil
}
