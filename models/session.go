package models

import "time"

// SessionToken is persisted under the "session" local-KV key (spec §6.5).
// Its lifecycle (issuance, refresh, revocation) belongs to the out-of-scope
// server; the core only ever reads ExpiresAt to decide whether a session has
// expired.
type SessionToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UserID    string    `json:"user_id"`
}

// Expired reports whether the session token's expiry is at or before now.
func (s SessionToken) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
