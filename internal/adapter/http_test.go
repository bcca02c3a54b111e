// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lockmark/core/internal/logger"
	"github.com/lockmark/core/models"
)

func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	log := logger.Nop()

	a, err := NewHTTPServerAdapter(HTTPClientConfig{BaseURL: serverURL}, log)
	require.NoError(t, err)
	return a.(*httpServerAdapter)
}

func signedTestToken(t *testing.T, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte("test-signing-key"))
	require.NoError(t, err)
	return signed
}

// ── FetchLogin ───────────────────────────────────────────────────────────────

func TestFetchLogin_Success(t *testing.T) {
	exp := time.Now().Add(time.Hour)
	token := signedTestToken(t, exp)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)

		w.Header().Set("Authorization", "Bearer "+token)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"user_id":"u_1","vault_id":"v_1","kdf_params":{"algo":"argon2id","m":65536,"t":3,"p":1}}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.FetchLogin(context.Background(), "u_1")

	require.NoError(t, err)
	assert.Equal(t, "u_1", got.UserID)
	assert.Equal(t, "v_1", got.VaultID)
	assert.Equal(t, "argon2id", got.KDFParams.Algo)
	assert.Nil(t, got.WrappedMK)
	assert.WithinDuration(t, exp, got.Session.ExpiresAt, time.Second)
	assert.Equal(t, token, a.Token())
}

func TestFetchLogin_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte("bad credentials"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.FetchLogin(context.Background(), "u_1")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestFetchLogin_MissingAuthorizationHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"user_id":"u_1","vault_id":"v_1"}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.FetchLogin(context.Background(), "u_1")

	require.Error(t, err)
}

// ── UploadWMK ────────────────────────────────────────────────────────────────

func TestUploadWMK_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/user/wmk", r.URL.Path)
		assert.Equal(t, "Bearer sometoken", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("sometoken")

	err := a.UploadWMK(context.Background(), "deadbeef")
	require.NoError(t, err)
}

func TestUploadWMK_SessionExpired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.SetToken("expired")

	err := a.UploadWMK(context.Background(), "deadbeef")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// ── Manifest ─────────────────────────────────────────────────────────────────

func TestGetManifest_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/vault/manifest", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"version":3,"nonce":"bm9uY2U=","ciphertext":"Y3Q="}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.GetManifest(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, got.Version)
	assert.Equal(t, "bm9uY2U=", got.Nonce)
}

func TestGetManifest_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.GetManifest(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPutManifest_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/vault/manifest", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"vault_id":"v_1","version":4,"etag":"abc","updated_at":"2026-07-31T00:00:00Z"}`))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	got, err := a.PutManifest(context.Background(), models.ManifestPutRequest{Version: 4, Nonce: "bm9uY2U=", Ciphertext: "Y3Q="})

	require.NoError(t, err)
	assert.Equal(t, "v_1", got.VaultID)
	assert.Equal(t, 4, got.Version)
	assert.Equal(t, "abc", got.ETag)
}

func TestPutManifest_Conflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("version conflict"))
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	_, err := a.PutManifest(context.Background(), models.ManifestPutRequest{Version: 1})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConflict)
}

// ── Token accessors ──────────────────────────────────────────────────────────

func TestSetToken_TrimsWhitespace(t *testing.T) {
	a := newTestAdapter(t, "http://localhost:0")
	a.SetToken("  spaced-token  ")
	assert.Equal(t, "spaced-token", a.Token())
}

func TestNewHTTPServerAdapter_RejectsEmptyBaseURL(t *testing.T) {
	_, err := NewHTTPServerAdapter(HTTPClientConfig{}, logger.Nop())
	require.Error(t, err)
}
