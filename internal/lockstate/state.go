// Package lockstate implements the lock state machine of spec §4.6: the
// Unlocked / SoftLocked / HardLocked / NeverUnlocked states, the
// failed-PIN-attempt accounting that drives the SoftLocked→HardLocked
// transition, and an auto-lock idle timer.
//
// The machine's actual state is a pure function of three externally-owned
// facts (is a Keystore installed, is PinStoreData present, is the persisted
// LockState.IsHardLocked flag set) — this package does not own storage, the
// orchestrator in internal/vault does. That keeps the state machine testable
// without a database and keeps internal/vault the single place that
// sequences reads/writes against the external collaborators named in spec
// §6.5.
package lockstate

import (
	"time"

	"github.com/lockmark/core/models"
)

// State is one of the four lock states of spec §4.6.
type State int

const (
	// NeverUnlocked means no user session exists yet.
	NeverUnlocked State = iota
	// Unlocked means a Keystore is present.
	Unlocked
	// SoftLocked means the Keystore is absent but PinStoreData is present
	// and the account is not hard-locked: PIN unlock is possible.
	SoftLocked
	// HardLocked means PinStoreData is absent, or IsHardLocked is set: only
	// password unlock is accepted.
	HardLocked
)

func (s State) String() string {
	switch s {
	case NeverUnlocked:
		return "never_unlocked"
	case Unlocked:
		return "unlocked"
	case SoftLocked:
		return "soft_locked"
	case HardLocked:
		return "hard_locked"
	default:
		return "unknown"
	}
}

// Current derives the lock state from the three externally-owned facts spec
// §4.6 defines it in terms of. hasSession distinguishes NeverUnlocked (no
// user has ever logged in this browser/profile) from a locked returning
// user; callers that don't model a separate "ever seen this user" bit may
// always pass true once a login has happened at least once.
func Current(hasSession, hasKeystore, hasPinStore bool, ls models.LockState) State {
	if !hasSession {
		return NeverUnlocked
	}
	if hasKeystore {
		return Unlocked
	}
	if !hasPinStore || ls.IsHardLocked {
		return HardLocked
	}
	return SoftLocked
}

// RecordFailedAttempt increments ls.FailedPINAttempts and stamps
// LastFailedAt. If the new count reaches models.MaxFailedPINAttempts, it
// also sets IsHardLocked and stamps HardLockedAt. Returns the updated
// LockState and whether this call just triggered a hard lock.
func RecordFailedAttempt(ls models.LockState, now time.Time) (models.LockState, bool) {
	ls.FailedPINAttempts++
	ls.LastFailedAt = &now

	if ls.FailedPINAttempts >= models.MaxFailedPINAttempts {
		ls.IsHardLocked = true
		ls.HardLockedAt = &now
		return ls, true
	}
	return ls, false
}

// ResetOnSuccess returns the zero-value LockState, as required after any
// successful unlock (password or PIN) per spec §4.6.
func ResetOnSuccess() models.LockState {
	return models.LockState{}
}
