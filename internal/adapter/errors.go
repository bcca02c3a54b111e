// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import "errors"

// Sentinel errors produced by adapter implementations when the server
// returns a non-2xx HTTP status code. Callers should use [errors.Is] to
// distinguish them, e.g. errors.Is(err, ErrUnauthorized) to detect an
// expired or revoked session.
var (
	// ErrBadRequest is returned when the server responds with HTTP 400,
	// indicating malformed or logically invalid request data.
	ErrBadRequest = errors.New("bad request")

	// ErrUnauthorized is returned when the server responds with HTTP 401,
	// indicating an expired or invalid session token. The orchestrator
	// translates this into ErrSessionExpired (spec §9) and a SoftLocked
	// transition, for the WMK upload and the manifest calls alike.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is returned when the server responds with HTTP 403.
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound is returned when the server responds with HTTP 404,
	// indicating the manifest has never been sealed for this vault.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when the server responds with HTTP 409,
	// indicating the manifest version supplied no longer matches the
	// server's current version.
	ErrConflict = errors.New("conflict")

	// ErrBadGateway is returned when the server responds with HTTP 502.
	ErrBadGateway = errors.New("bad gateway")

	// ErrInternalServerError is returned when the server responds with
	// HTTP 500.
	ErrInternalServerError = errors.New("internal server error")
)
