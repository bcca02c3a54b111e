package models

import "time"

// MaxFailedPINAttempts is the number of consecutive wrong PIN entries that
// trigger a hard lock (spec invariant: failed_pin_attempts ∈ [0, 3]).
const MaxFailedPINAttempts = 3

// LockState is persisted under the "lock_state" local-KV key (spec §6.5) and
// reset on any successful unlock.
type LockState struct {
	FailedPINAttempts uint8      `json:"failed_pin_attempts"`
	LastFailedAt      *time.Time `json:"last_failed_at,omitempty"`
	IsHardLocked      bool       `json:"is_hard_locked"`
	HardLockedAt      *time.Time `json:"hard_locked_at,omitempty"`
}

// Reset returns the zero-value LockState, used after any successful unlock.
func (LockState) Reset() LockState {
	return LockState{}
}
