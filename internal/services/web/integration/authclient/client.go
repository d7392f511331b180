// Package authclient calls the auth service JSON API on behalf of the web
// dashboard.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/orbitwatch/missioncontrol/internal/services/web/platform/errors"
)

const tracerName = "github.com/orbitwatch/missioncontrol/internal/services/web/integration/authclient"

// maxErrorBody bounds how much of an upstream error body is read. Bodies
// under the bound are kept byte for byte.
const maxErrorBody = 64 << 10

const (
	pathSignup  = "/api/auth/signup"
	pathLogin   = "/api/auth/login"
	pathSession = "/api/auth/session"
	pathProfile = "/api/auth/profile"
	pathLogout  = "/api/auth/logout"
	pathHealth  = "/up"

	sessionScheme = "Session"
)

// User is the account view returned by the auth service.
type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Locale      string `json:"locale"`
}

// Session is an open web session and its access token.
type Session struct {
	ID          string    `json:"session_id"`
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        User      `json:"user"`
}

// SignupInput is a new account request. Locale is forwarded as
// Accept-Language so failure messages come back in the visitor's language.
type SignupInput struct {
	Username string
	Email    string
	Password string
	Locale   string
}

// StatusError is a non-2xx response from the auth service.
type StatusError struct {
	StatusCode int
	Body       string
}

// Error returns the upstream body, or the status text when it is blank.
func (e *StatusError) Error() string {
	if e == nil {
		return ""
	}
	if body := strings.TrimSpace(e.Body); body != "" {
		return body
	}
	return fmt.Sprintf("auth service responded %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// ResponseBody returns the upstream error body carried by err, unmodified.
// A blank body reports false.
func ResponseBody(err error) (string, bool) {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return "", false
	}
	if strings.TrimSpace(statusErr.Body) == "" {
		return "", false
	}
	return statusErr.Body, true
}

// Client is an auth service HTTP client.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	tracer     trace.Tracer
}

// New builds a client for baseURL. A nil httpClient uses a client with a
// conservative timeout.
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse auth base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("auth base url %q must be http or https", baseURL)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("auth base url %q has no host", baseURL)
	}
	parsed.Path = strings.TrimRight(parsed.Path, "/")
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: parsed, httpClient: httpClient, tracer: otel.Tracer(tracerName)}, nil
}

// Signup creates an account.
func (c *Client) Signup(ctx context.Context, input SignupInput) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	headers := http.Header{}
	if locale := strings.TrimSpace(input.Locale); locale != "" {
		headers.Set("Accept-Language", locale)
	}
	body := map[string]string{
		"username": input.Username,
		"email":    input.Email,
		"password": input.Password,
	}
	if err := c.do(ctx, "signup", http.MethodPost, pathSignup, headers, body, &out); err != nil {
		return User{}, err
	}
	return out.User, nil
}

// Login opens a session for username and password.
func (c *Client) Login(ctx context.Context, username string, password string) (Session, error) {
	var out Session
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, "login", http.MethodPost, pathLogin, nil, body, &out); err != nil {
		return Session{}, err
	}
	return out, nil
}

// Session resolves an active session.
func (c *Client) Session(ctx context.Context, sessionID string) (Session, error) {
	var out Session
	if err := c.do(ctx, "session", http.MethodGet, pathSession, sessionHeader(sessionID), nil, &out); err != nil {
		return Session{}, err
	}
	return out, nil
}

// UpdateProfile changes the session user's display name and locale.
func (c *Client) UpdateProfile(ctx context.Context, sessionID string, displayName string, locale string) (User, error) {
	var out struct {
		User User `json:"user"`
	}
	body := map[string]string{"display_name": displayName, "locale": locale}
	if err := c.do(ctx, "update_profile", http.MethodPatch, pathProfile, sessionHeader(sessionID), body, &out); err != nil {
		return User{}, err
	}
	return out.User, nil
}

// Logout revokes a session.
func (c *Client) Logout(ctx context.Context, sessionID string) error {
	return c.do(ctx, "logout", http.MethodPost, pathLogout, sessionHeader(sessionID), nil, nil)
}

// Health checks the auth service HTTP health endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, "health", http.MethodGet, pathHealth, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, operation string, method string, path string, headers http.Header, payload any, out any) (err error) {
	if c == nil || c.httpClient == nil || c.baseURL == nil {
		return apperrors.EK(apperrors.KindUnavailable, "error.auth_unavailable", "auth client is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := c.tracer.Start(ctx, "authclient."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, operation+" failed")
		}
		span.End()
	}()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", operation, err)
		}
		body = bytes.NewReader(encoded)
	}
	endpoint := *c.baseURL
	endpoint.Path = c.baseURL.Path + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", operation, err)
	}
	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrap(apperrors.KindUnavailable, "error.auth_unavailable", fmt.Errorf("auth %s: %w", operation, err))
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		statusErr := &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
		kind := apperrors.FromHTTPStatus(resp.StatusCode)
		key := ""
		switch kind {
		case apperrors.KindUnavailable, apperrors.KindUnknown:
			key = "error.auth_unavailable"
			if kind == apperrors.KindUnknown {
				kind = apperrors.KindUnavailable
			}
		case apperrors.KindUnauthorized:
			key = "error.invalid_credentials"
		}
		return apperrors.Wrap(kind, key, statusErr)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Wrap(apperrors.KindUnavailable, "error.auth_unavailable", fmt.Errorf("decode %s response: %w", operation, err))
	}
	return nil
}

func sessionHeader(sessionID string) http.Header {
	headers := http.Header{}
	headers.Set("Authorization", sessionScheme+" "+strings.TrimSpace(sessionID))
	return headers
}
