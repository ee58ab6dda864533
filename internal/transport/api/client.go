// Package api is the HTTP client for the certificate backend. The
// backend owns registration, login, certificate persistence and the
// blockchain anchoring; this side only speaks its JSON surface.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	platformerrors "veritas-client-go/internal/platform/errors"
)

const (
	pathRegister = "/api/institution/register"
	pathLogin    = "/api/institution/login"
	pathAdd      = "/api/certificate/add"
	pathVerify   = "/api/certificate/verify/"
)

// Config points the client at the backend.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// TokenSource supplies the current bearer token for authenticated calls.
type TokenSource func(ctx context.Context) (string, bool)

// Logger provides the minimal logging contract required by the client.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Client talks to the certificate backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	logger     Logger
}

// NewClient wires an API client. tokens may be nil for a client that
// only performs unauthenticated calls.
func NewClient(cfg Config, tokens TokenSource, logger Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		logger:     logger,
	}
}

// Register creates an institution account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, http.MethodPost, pathRegister, req, nil, false)
}

// Login exchanges credentials for a bearer token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, pathLogin, req, &resp, false); err != nil {
		return LoginResponse{}, err
	}
	return resp, nil
}

// AddCertificate submits one certificate record under the bearer token.
func (c *Client) AddCertificate(ctx context.Context, req CertificateRequest) (CertificateResponse, error) {
	var resp CertificateResponse
	if err := c.do(ctx, http.MethodPost, pathAdd, req, &resp, true); err != nil {
		return CertificateResponse{}, err
	}
	return resp, nil
}

// VerifyCertificate checks whether a certificate hash is anchored. The
// endpoint is public; no token is attached.
func (c *Client) VerifyCertificate(ctx context.Context, certificateHash string) (VerifyResponse, error) {
	var resp VerifyResponse
	path := pathVerify + url.PathEscape(certificateHash)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp, false); err != nil {
		return VerifyResponse{}, err
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any, authed bool) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return platformerrors.Wrap(platformerrors.KindTransport, "client.encode",
				"failed to encode request body", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindTransport, "client.request",
			"failed to build request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if authed {
		if c.tokens == nil {
			return platformerrors.New(platformerrors.KindSession, "client.token",
				"no token source configured")
		}
		token, ok := c.tokens(ctx)
		if !ok {
			return platformerrors.New(platformerrors.KindSession, "client.token",
				"no bearer token available")
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("[api] %s %s failed: %v", method, path, err)
		}
		return platformerrors.Wrap(platformerrors.KindTransport, "client.do",
			"request failed", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return platformerrors.Wrap(platformerrors.KindTransport, "client.read",
			"failed to read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		remote := &RemoteError{Status: resp.StatusCode}
		var decoded struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &decoded) == nil {
			remote.ErrField = decoded.Error
			remote.MsgField = decoded.Message
		}
		if c.logger != nil {
			c.logger.Debug("[api] %s %s -> %d", method, path, resp.StatusCode)
		}
		return remote
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return platformerrors.Wrap(platformerrors.KindTransport, "client.decode",
				"failed to decode response body", err)
		}
	}
	return nil
}
