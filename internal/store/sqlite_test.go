package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockmark/core/internal/logger"
	"github.com/lockmark/core/models"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(context.Background(), ":memory:", logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestKeystore_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetKeystore()
	assert.ErrorIs(t, err, ErrNotFound)

	kd := models.KeystoreData{MAK: []byte{1, 2, 3}, AAD: models.AADContext{UserID: "u_1", VaultID: "v_1"}}
	require.NoError(t, s.SetKeystore(kd))

	got, err := s.GetKeystore()
	require.NoError(t, err)
	assert.Equal(t, kd, got)

	require.NoError(t, s.ClearKeystore())
	_, err = s.GetKeystore()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClearKeystore_SafeWhenAbsent(t *testing.T) {
	s := newTestStore(t)
	assert.NoError(t, s.ClearKeystore())
}

func TestPinStore_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	ps := models.PinStoreData{
		PinHash:      []byte{0xAA},
		PinHashSalt:  []byte{0xBB},
		PinKeySalt:   []byte{0xCC},
		EncryptedMAK: []byte{0xDD},
		AAD:          models.AADContext{UserID: "u_1", VaultID: "v_1"},
		UserID:       "u_1",
		VaultID:      "v_1",
		Version:      1,
	}
	require.NoError(t, s.SetPinStore(ps))

	got, err := s.GetPinStore()
	require.NoError(t, err)
	assert.Equal(t, ps, got)

	require.NoError(t, s.ClearPinStore())
	_, err = s.GetPinStore()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLockState_DefaultsToZeroValue(t *testing.T) {
	s := newTestStore(t)

	ls, err := s.GetLockState()
	require.NoError(t, err)
	assert.Equal(t, models.LockState{}, ls)
}

func TestLockState_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	now := time.Now().UTC().Truncate(time.Second)
	ls := models.LockState{FailedPINAttempts: 2, LastFailedAt: &now}
	require.NoError(t, s.SetLockState(ls))

	got, err := s.GetLockState()
	require.NoError(t, err)
	assert.Equal(t, uint8(2), got.FailedPINAttempts)
	require.NotNil(t, got.LastFailedAt)
	assert.True(t, now.Equal(*got.LastFailedAt))
}

func TestSession_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetSession()
	assert.ErrorIs(t, err, ErrNotFound)

	sess := models.SessionToken{Token: "tok", UserID: "u_1", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, s.SetSession(sess))

	got, err := s.GetSession()
	require.NoError(t, err)
	assert.Equal(t, sess.Token, got.Token)

	require.NoError(t, s.ClearSession())
	_, err = s.GetSession()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSoftLocked_DefaultsFalse(t *testing.T) {
	s := newTestStore(t)

	locked, err := s.IsSoftLocked()
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestSoftLocked_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SetSoftLocked(true))
	locked, err := s.IsSoftLocked()
	require.NoError(t, err)
	assert.True(t, locked)

	require.NoError(t, s.SetSoftLocked(false))
	locked, err = s.IsSoftLocked()
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestSet_OverwritesExistingValue(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SetSoftLocked(true))
	require.NoError(t, s.SetSoftLocked(false))

	locked, err := s.IsSoftLocked()
	require.NoError(t, err)
	assert.False(t, locked)
}
