package public

import (
	"context"
	"strings"

	"github.com/orbitwatch/missioncontrol/internal/services/web/integration/authclient"
	apperrors "github.com/orbitwatch/missioncontrol/internal/services/web/platform/errors"
)

const (
	keyRequiredFields     = "error.required_fields"
	keyInvalidCredentials = "error.invalid_credentials"
	keyAuthUnavailable    = "error.auth_unavailable"
)

type service struct {
	auth AuthGateway
}

func newService(gateway AuthGateway) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return service{auth: gateway}
}

func (s service) signup(ctx context.Context, input authclient.SignupInput) error {
	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.TrimSpace(input.Email)
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return apperrors.EK(apperrors.KindInvalidInput, keyRequiredFields, "username, email and password are required")
	}
	_, err := s.auth.Signup(ctx, input)
	return err
}

func (s service) login(ctx context.Context, username string, password string) (authclient.Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return authclient.Session{}, apperrors.EK(apperrors.KindInvalidInput, keyRequiredFields, "username and password are required")
	}
	return s.auth.Login(ctx, username, password)
}

func (s service) session(ctx context.Context, sessionID string) (authclient.Session, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return authclient.Session{}, apperrors.EK(apperrors.KindUnauthorized, keyInvalidCredentials, "session is required")
	}
	return s.auth.Session(ctx, sessionID)
}

func (s service) logout(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return nil
	}
	return s.auth.Logout(ctx, sessionID)
}

// formErrorKey picks the localized message shown on the login form.
func formErrorKey(err error) string {
	switch apperrors.KindOf(err) {
	case apperrors.KindInvalidInput:
		if key := apperrors.LocalizationKey(err); key != "" {
			return key
		}
		return keyRequiredFields
	case apperrors.KindUnauthorized:
		return keyInvalidCredentials
	default:
		return keyAuthUnavailable
	}
}

var errUnavailable = apperrors.EK(apperrors.KindUnavailable, keyAuthUnavailable, "auth service is not configured")

type unavailableGateway struct{}

func (unavailableGateway) Signup(context.Context, authclient.SignupInput) (authclient.User, error) {
	return authclient.User{}, errUnavailable
}

func (unavailableGateway) Login(context.Context, string, string) (authclient.Session, error) {
	return authclient.Session{}, errUnavailable
}

func (unavailableGateway) Session(context.Context, string) (authclient.Session, error) {
	return authclient.Session{}, errUnavailable
}

func (unavailableGateway) Logout(context.Context, string) error {
	return errUnavailable
}
