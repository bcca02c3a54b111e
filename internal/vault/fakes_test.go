package vault

import (
	"context"
	"sync"

	"github.com/lockmark/core/internal/adapter"
	"github.com/lockmark/core/internal/store"
	"github.com/lockmark/core/models"
)

// memStore is an in-memory store.KVStore fake, used in place of
// [store.SQLiteStore] so orchestrator tests don't touch a filesystem.
type memStore struct {
	mu sync.Mutex

	keystore    *models.KeystoreData
	pinStore    *models.PinStoreData
	lockState   models.LockState
	session     *models.SessionToken
	isSoftLocked bool
}

func newMemStore() *memStore { return &memStore{} }

func (m *memStore) GetKeystore() (models.KeystoreData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.keystore == nil {
		return models.KeystoreData{}, store.ErrNotFound
	}
	return *m.keystore, nil
}

func (m *memStore) SetKeystore(kd models.KeystoreData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := kd
	m.keystore = &cp
	return nil
}

func (m *memStore) ClearKeystore() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keystore = nil
	return nil
}

func (m *memStore) GetPinStore() (models.PinStoreData, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.pinStore == nil {
		return models.PinStoreData{}, store.ErrNotFound
	}
	return *m.pinStore, nil
}

func (m *memStore) SetPinStore(ps models.PinStoreData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := ps
	m.pinStore = &cp
	return nil
}

func (m *memStore) ClearPinStore() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pinStore = nil
	return nil
}

func (m *memStore) GetLockState() (models.LockState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lockState, nil
}

func (m *memStore) SetLockState(ls models.LockState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lockState = ls
	return nil
}

func (m *memStore) GetSession() (models.SessionToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return models.SessionToken{}, store.ErrNotFound
	}
	return *m.session, nil
}

func (m *memStore) SetSession(s models.SessionToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := s
	m.session = &cp
	return nil
}

func (m *memStore) ClearSession() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session = nil
	return nil
}

func (m *memStore) IsSoftLocked() (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.isSoftLocked, nil
}

func (m *memStore) SetSoftLocked(locked bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.isSoftLocked = locked
	return nil
}

func (m *memStore) Close() error { return nil }

// fakeAdapter is an in-memory adapter.ServerAdapter fake modeling just
// enough server behavior (WMK upload acceptance, manifest storage) for
// orchestrator tests.
type fakeAdapter struct {
	mu sync.Mutex

	token string

	uploadWMKErr error
	wrappedMK    *string

	manifest       *models.ManifestGetResponse
	getManifestErr error
	putManifestErr error
}

func (a *fakeAdapter) SetToken(token string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.token = token
}

func (a *fakeAdapter) Token() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.token
}

func (a *fakeAdapter) FetchLogin(_ context.Context, userID string) (models.LoginResponse, error) {
	return models.LoginResponse{UserID: userID}, nil
}

func (a *fakeAdapter) UploadWMK(_ context.Context, wrappedMK string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.uploadWMKErr != nil {
		return a.uploadWMKErr
	}
	cp := wrappedMK
	a.wrappedMK = &cp
	return nil
}

func (a *fakeAdapter) GetManifest(_ context.Context) (models.ManifestGetResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.getManifestErr != nil {
		return models.ManifestGetResponse{}, a.getManifestErr
	}
	if a.manifest == nil {
		return models.ManifestGetResponse{}, adapter.ErrNotFound
	}
	return *a.manifest, nil
}

func (a *fakeAdapter) PutManifest(_ context.Context, req models.ManifestPutRequest) (models.ManifestPutResponse, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.putManifestErr != nil {
		return models.ManifestPutResponse{}, a.putManifestErr
	}
	a.manifest = &models.ManifestGetResponse{Version: req.Version, Nonce: req.Nonce, Ciphertext: req.Ciphertext}
	return models.ManifestPutResponse{VaultID: "v_1", Version: req.Version, ETag: "etag"}, nil
}
