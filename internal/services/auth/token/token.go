// Package token issues and verifies the HS256 access tokens handed to web
// sessions.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/orbitwatch/missioncontrol/internal/platform/errors"
)

// DefaultIssuer is the iss claim stamped on access tokens.
const DefaultIssuer = "missioncontrol-auth"

// minSecretBytes is the shortest accepted signing secret.
const minSecretBytes = 32

// Config defines how access tokens are signed.
type Config struct {
	Secret []byte
	Issuer string
	Now    func() time.Time
}

// Claims captures validated access token claims.
type Claims struct {
	Issuer    string
	UserID    string
	SessionID string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// accessClaims is the internal claims type used for JWT encoding.
type accessClaims struct {
	jwt.RegisteredClaims
	SessionID string `json:"sid"`
}

// Issuer signs and verifies access tokens.
type Issuer struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewIssuer validates cfg and returns an Issuer.
func NewIssuer(cfg Config) (*Issuer, error) {
	if len(cfg.Secret) < minSecretBytes {
		return nil, fmt.Errorf("token secret must be at least %d bytes", minSecretBytes)
	}
	issuer := strings.TrimSpace(cfg.Issuer)
	if issuer == "" {
		issuer = DefaultIssuer
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	secret := make([]byte, len(cfg.Secret))
	copy(secret, cfg.Secret)
	return &Issuer{secret: secret, issuer: issuer, now: now}, nil
}

// Issue signs a token for userID bound to sessionID that expires at expiresAt.
func (i *Issuer) Issue(userID string, sessionID string, expiresAt time.Time) (string, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(sessionID) == "" {
		return "", errors.New("user id and session id are required")
	}
	now := i.now().UTC()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt.UTC()),
		},
		SessionID: sessionID,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature, issuer, and expiry of value.
func (i *Issuer) Verify(value string) (Claims, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Claims{}, apperrors.New(apperrors.CodeSessionInvalid, "access token is required")
	}

	var parsed accessClaims
	_, err := jwt.ParseWithClaims(value, &parsed, func(*jwt.Token) (any, error) {
		return i.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return Claims{}, mapJWTError(err)
	}
	if parsed.Subject == "" || parsed.SessionID == "" {
		return Claims{}, apperrors.New(apperrors.CodeSessionInvalid, "access token is missing subject or session")
	}

	claims := Claims{
		Issuer:    parsed.Issuer,
		UserID:    parsed.Subject,
		SessionID: parsed.SessionID,
		ExpiresAt: parsed.ExpiresAt.Time.UTC(),
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time.UTC()
	}
	return claims, nil
}

// mapJWTError translates jwt library errors to application errors.
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return apperrors.Wrap(apperrors.CodeSessionInvalid, "access token is expired", err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return apperrors.Wrap(apperrors.CodeSessionInvalid, "access token signature is invalid", err)
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return apperrors.Wrap(apperrors.CodeSessionInvalid, "access token issuer mismatch", err)
	default:
		return apperrors.Wrap(apperrors.CodeSessionInvalid, "access token is invalid", err)
	}
}
