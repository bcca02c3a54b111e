// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating
// with the external auth/sync server that owns accounts, KDF params, the
// held Wrapped Master Key, and the manifest blob (spec §6).
//
// The primary abstraction is [ServerAdapter], which decouples the
// orchestrator from the underlying protocol. The package ships an
// HTTP/REST implementation ([NewHTTPServerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/lockmark/core/models"
)

// ServerAdapter defines transport-agnostic communication with the external
// server. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer session token attached to all subsequent
	// authenticated requests. It should be called immediately after a
	// successful FetchLogin.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or
	// an empty string if none has been set.
	Token() string

	// FetchLogin exchanges login credentials for the server's view of the
	// account: KDF params, the held WMK (nil if never uploaded), and a
	// session token. On success the returned token is stored via SetToken.
	FetchLogin(ctx context.Context, userID string) (models.LoginResponse, error)

	// UploadWMK POSTs a freshly wrapped master key to the server on first
	// unlock only (spec §6.2). Returns [ErrUnauthorized] on a 401 response,
	// which the orchestrator surfaces as ErrSessionExpired (spec §9) after
	// locking the vault into SoftLocked.
	UploadWMK(ctx context.Context, wrappedMK string) error

	// GetManifest fetches the currently sealed manifest blob. Returns
	// [ErrNotFound] if the vault has never sealed a manifest.
	GetManifest(ctx context.Context) (models.ManifestGetResponse, error)

	// PutManifest uploads a freshly sealed manifest blob, returning the
	// server's accounting of the write (new version, etag, timestamp).
	PutManifest(ctx context.Context, req models.ManifestPutRequest) (models.ManifestPutResponse, error)
}
