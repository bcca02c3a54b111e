package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/lockmark/core/internal/logger"
	"github.com/lockmark/core/models"
)

// Slot names for the five local-KV entries of spec §6.5.
const (
	slotKeystore  = "keystore"
	slotPinStore  = "pin_store"
	slotLockState = "lock_state"
	slotIsLocked  = "is_locked"
	slotSession   = "session"
)

// SQLiteStore is the reference [KVStore] implementation, backed by a single
// SQLite file with one table holding the five named slots as JSON blobs.
// Modeled on the teacher's internal/store/sql_sqlite.go: the DSN names a
// local file, created if absent, opened through database/sql, and verified
// reachable with a ping before use.
//
// KeystoreData passes through this store exactly as given: any at-rest
// encryption a deployment requires on top of this (e.g. wrapping the
// "keystore" slot under an OS keychain key) is the caller's responsibility,
// not this package's.
type SQLiteStore struct {
	db     *sql.DB
	logger *logger.Logger
}

// NewSQLiteStore opens a SQLite connection to the file named by dsn,
// creating it if it does not yet exist, verifies reachability with a ping,
// and ensures the backing table exists.
func NewSQLiteStore(ctx context.Context, dsn string, log *logger.Logger) (*SQLiteStore, error) {
	if err := createLocalDBFileIfNotExists(dsn); err != nil {
		log.Err(err).Str("func", "NewSQLiteStore").Msg("error creating database file")
		return nil, fmt.Errorf("error creating database file: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Err(err).Str("func", "NewSQLiteStore").Msg("error opening database")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	if err = db.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewSQLiteStore").Msg("error connecting database (ping)")
		return nil, err
	}

	if _, err = db.ExecContext(ctx, createTableSQL); err != nil {
		log.Err(err).Str("func", "NewSQLiteStore").Msg("error creating kv table")
		return nil, fmt.Errorf("error creating kv table: %w", err)
	}
	log.Debug().Str("func", "NewSQLiteStore").Msg("connected to local store successfully")

	return &SQLiteStore{db: db, logger: log}, nil
}

func createLocalDBFileIfNotExists(dsn string) error {
	if dsn == ":memory:" {
		return nil
	}
	if _, err := os.Stat(dsn); os.IsNotExist(err) {
		f, err := os.Create(dsn)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		return f.Close()
	}
	return nil
}

const createTableSQL = `
CREATE TABLE IF NOT EXISTS kv_store (
	key   TEXT PRIMARY KEY,
	value BLOB NOT NULL
)`

func (s *SQLiteStore) get(key string, out any) error {
	var raw []byte
	err := s.db.QueryRow(`SELECT value FROM kv_store WHERE key = ?`, key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("store: query %s: %w", key, err)
	}
	if err = json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("store: decode %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) set(key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	_, err = s.db.Exec(`INSERT INTO kv_store(key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, raw)
	if err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) clear(key string) error {
	_, err := s.db.Exec(`DELETE FROM kv_store WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("store: clear %s: %w", key, err)
	}
	return nil
}

// GetKeystore implements [KVStore].
func (s *SQLiteStore) GetKeystore() (models.KeystoreData, error) {
	var kd models.KeystoreData
	err := s.get(slotKeystore, &kd)
	return kd, err
}

// SetKeystore implements [KVStore].
func (s *SQLiteStore) SetKeystore(kd models.KeystoreData) error {
	return s.set(slotKeystore, kd)
}

// ClearKeystore implements [KVStore].
func (s *SQLiteStore) ClearKeystore() error {
	return s.clear(slotKeystore)
}

// GetPinStore implements [KVStore].
func (s *SQLiteStore) GetPinStore() (models.PinStoreData, error) {
	var ps models.PinStoreData
	err := s.get(slotPinStore, &ps)
	return ps, err
}

// SetPinStore implements [KVStore].
func (s *SQLiteStore) SetPinStore(ps models.PinStoreData) error {
	return s.set(slotPinStore, ps)
}

// ClearPinStore implements [KVStore].
func (s *SQLiteStore) ClearPinStore() error {
	return s.clear(slotPinStore)
}

// GetLockState implements [KVStore]. Unlike the other Get accessors, a
// missing slot is not an error: it returns the zero value, matching
// models.LockState's own zero-value-is-meaningful convention.
func (s *SQLiteStore) GetLockState() (models.LockState, error) {
	var ls models.LockState
	err := s.get(slotLockState, &ls)
	if errors.Is(err, ErrNotFound) {
		return models.LockState{}, nil
	}
	return ls, err
}

// SetLockState implements [KVStore].
func (s *SQLiteStore) SetLockState(ls models.LockState) error {
	return s.set(slotLockState, ls)
}

// GetSession implements [KVStore].
func (s *SQLiteStore) GetSession() (models.SessionToken, error) {
	var sess models.SessionToken
	err := s.get(slotSession, &sess)
	return sess, err
}

// SetSession implements [KVStore].
func (s *SQLiteStore) SetSession(sess models.SessionToken) error {
	return s.set(slotSession, sess)
}

// ClearSession implements [KVStore].
func (s *SQLiteStore) ClearSession() error {
	return s.clear(slotSession)
}

// IsSoftLocked implements [KVStore]. A missing flag means not soft-locked.
func (s *SQLiteStore) IsSoftLocked() (bool, error) {
	var locked bool
	err := s.get(slotIsLocked, &locked)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return locked, err
}

// SetSoftLocked implements [KVStore].
func (s *SQLiteStore) SetSoftLocked(locked bool) error {
	return s.set(slotIsLocked, locked)
}

// Close implements [KVStore].
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
