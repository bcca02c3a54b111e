// Package keystore holds the Manifest Authentication/encryption Key in
// memory for the lifetime of an unlocked vault (spec §4.7). The MAK is
// never returned by value: callers reach it only through [Keystore.WithMAK],
// a scoped borrow modeled on the teacher corpus's "decrypt, use, wipe"
// buffer discipline (see other_examples/a7ef9361_AlyRagab-Mlocker__buffer.go
// for the pattern this generalizes from a locked-memory AEAD buffer to a
// plain in-process secret).
package keystore

import (
	"sync"

	"github.com/lockmark/core/internal/cryptoprim"
	"github.com/lockmark/core/models"
)

// Keystore holds the MAK and its AAD context for as long as the vault is
// unlocked. It is installed by the orchestrator on a successful Unlock or
// UnlockWithPIN, and torn down on Lock/Logout.
type Keystore struct {
	mu   sync.Mutex
	mak  []byte
	aad  models.AADContext
	done bool
}

// New copies mak into a Keystore-owned buffer and retains aad. The caller's
// mak slice is not retained and may be zeroized by the caller immediately
// after this call returns.
func New(mak []byte, aad models.AADContext) *Keystore {
	owned := make([]byte, len(mak))
	copy(owned, mak)
	return &Keystore{mak: owned, aad: aad}
}

// WithMAK invokes fn with the current MAK. The slice passed to fn is only
// valid for the duration of the call and must not be retained. Returns
// [ErrClosed] if the Keystore has already been closed.
func (k *Keystore) WithMAK(fn func(mak []byte) error) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.done {
		return ErrClosed
	}
	return fn(k.mak)
}

// AAD returns the AAD context the Keystore was constructed with. Unlike the
// MAK, the AAD context carries no secret material and may be read freely.
func (k *Keystore) AAD() models.AADContext {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.aad
}

// Close zeroizes the held MAK and marks the Keystore unusable. Subsequent
// WithMAK calls return ErrClosed. Close is idempotent.
func (k *Keystore) Close() {
	k.mu.Lock()
	defer k.mu.Unlock()

	if k.done {
		return
	}
	cryptoprim.Zeroize(k.mak)
	k.mak = nil
	k.done = true
}
