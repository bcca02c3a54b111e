package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/lockmark/core/internal/logger"
	"github.com/lockmark/core/models"
)

// HTTPClientConfig configures [NewHTTPServerAdapter].
type HTTPClientConfig struct {
	// BaseURL is the server's base address, e.g. "https://sync.example.com".
	BaseURL string
	// RequestTimeout is the per-request timeout. Defaults to 15s if zero.
	RequestTimeout time.Duration
}

type httpServerAdapter struct {
	client *resty.Client
	logger *logger.Logger

	mu    sync.RWMutex
	token string
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates cfg.BaseURL and configures
// the underlying resty client with the resolved base URL and request
// timeout.
//
// Returns an error if cfg.BaseURL is empty or cannot be parsed as a valid
// URL.
func NewHTTPServerAdapter(cfg HTTPClientConfig, log *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter base url: %w", err)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &httpServerAdapter{client: client, logger: log}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.New("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter].
func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter].
func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// FetchLogin implements [ServerAdapter]. It POSTs userID to
// POST /auth/login and decodes the response body into [models.LoginResponse].
// The session token is extracted from the Authorization response header,
// its expiry read from the unverified "exp" JWT claim, and stored via
// SetToken.
func (h *httpServerAdapter) FetchLogin(ctx context.Context, userID string) (models.LoginResponse, error) {
	var body struct {
		UserID    string          `json:"user_id"`
		VaultID   string          `json:"vault_id"`
		KDFParams models.KDFParams `json:"kdf_params"`
		WrappedMK *string         `json:"wrapped_mk"`
	}

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"user_id": userID}).
		SetResult(&body).
		Post("/auth/login")
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.LoginResponse{}, err
	}

	token, err := parseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("login parse bearer token: %w", err)
	}
	session, err := sessionFromJWT(token, body.UserID)
	if err != nil {
		return models.LoginResponse{}, fmt.Errorf("login parse session expiry: %w", err)
	}

	h.SetToken(token)

	return models.LoginResponse{
		UserID:    body.UserID,
		VaultID:   body.VaultID,
		KDFParams: body.KDFParams,
		WrappedMK: body.WrappedMK,
		Session:   session,
	}, nil
}

// UploadWMK implements [ServerAdapter]. It POSTs to POST /user/wmk with the
// bit-exact body of spec §6.2. Requires a valid bearer token.
func (h *httpServerAdapter) UploadWMK(ctx context.Context, wrappedMK string) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.WrappedMasterKeyUploadRequest{WrappedMK: wrappedMK}).
		Post("/user/wmk")
	if err != nil {
		return fmt.Errorf("upload wmk request: %w", err)
	}
	return mapHTTPError(resp)
}

// GetManifest implements [ServerAdapter]. It GETs GET /vault/manifest and
// decodes the response into [models.ManifestGetResponse]. Requires a valid
// bearer token.
func (h *httpServerAdapter) GetManifest(ctx context.Context) (models.ManifestGetResponse, error) {
	var out models.ManifestGetResponse

	resp, err := h.authedRequest(ctx).
		SetResult(&out).
		Get("/vault/manifest")
	if err != nil {
		return models.ManifestGetResponse{}, fmt.Errorf("get manifest request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ManifestGetResponse{}, err
	}

	return out, nil
}

// PutManifest implements [ServerAdapter]. It PUTs req to PUT /vault/manifest
// and decodes the response into [models.ManifestPutResponse]. Requires a
// valid bearer token. Returns [ErrConflict] (wrapped) on HTTP 409, meaning
// req.Version is stale relative to the server's copy.
func (h *httpServerAdapter) PutManifest(ctx context.Context, req models.ManifestPutRequest) (models.ManifestPutResponse, error) {
	var out models.ManifestPutResponse

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&out).
		Put("/vault/manifest")
	if err != nil {
		return models.ManifestPutResponse{}, fmt.Errorf("put manifest request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ManifestPutResponse{}, err
	}

	return out, nil
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}

func parseBearerToken(value string) (string, error) {
	parts := strings.Split(strings.TrimSpace(value), " ")
	if len(parts) != 2 || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}

// sessionFromJWT reads the unverified "exp" claim of tokenString; CreatedAt
// is set to the local time of the call.
// The core never holds the server's signing key, so it only ever inspects
// claims, never verifies the signature — verification is the server's job on
// every subsequent request.
func sessionFromJWT(tokenString, userID string) (models.SessionToken, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return models.SessionToken{}, err
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return models.SessionToken{}, errors.New("invalid token claims")
	}

	expiresAt, err := claims.GetExpirationTime()
	if err != nil {
		return models.SessionToken{}, err
	}
	if expiresAt == nil {
		return models.SessionToken{}, errors.New("token has no expiry claim")
	}

	return models.SessionToken{
		Token:     tokenString,
		ExpiresAt: expiresAt.Time,
		CreatedAt: time.Now(),
		UserID:    userID,
	}, nil
}
