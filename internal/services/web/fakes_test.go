package web

import (
	"context"
	"sync"

	"github.com/orbitwatch/missioncontrol/internal/observatory/catalog"
	"github.com/orbitwatch/missioncontrol/internal/services/web/integration/authclient"
	apperrors "github.com/orbitwatch/missioncontrol/internal/services/web/platform/errors"
)

type fakeAuth struct {
	mu           sync.Mutex
	sessions     map[string]authclient.Session
	sessionErr   error
	sessionCalls int
	signupErr    error
	loggedOut    []string
}

func newFakeAuth() *fakeAuth {
	return &fakeAuth{sessions: map[string]authclient.Session{}}
}

func (f *fakeAuth) addSession(id string, username string) authclient.Session {
	f.mu.Lock()
	defer f.mu.Unlock()
	session := authclient.Session{
		ID:          id,
		AccessToken: "token-" + id,
		User:        authclient.User{ID: "user-" + username, Username: username, Email: username + "@example.com"},
	}
	f.sessions[id] = session
	return session
}

func (f *fakeAuth) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sessionCalls
}

func (f *fakeAuth) Signup(_ context.Context, input authclient.SignupInput) (authclient.User, error) {
	if f.signupErr != nil {
		return authclient.User{}, f.signupErr
	}
	return authclient.User{ID: "user-" + input.Username, Username: input.Username, Email: input.Email}, nil
}

func (f *fakeAuth) Login(_ context.Context, username string, password string) (authclient.Session, error) {
	if password != "correct horse" {
		return authclient.Session{}, apperrors.EK(apperrors.KindUnauthorized, "error.invalid_credentials", "bad credentials")
	}
	return f.addSession("sess-"+username, username), nil
}

func (f *fakeAuth) Session(_ context.Context, sessionID string) (authclient.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessionCalls++
	if f.sessionErr != nil {
		return authclient.Session{}, f.sessionErr
	}
	session, ok := f.sessions[sessionID]
	if !ok {
		return authclient.Session{}, apperrors.E(apperrors.KindUnauthorized, "unknown session")
	}
	return session, nil
}

func (f *fakeAuth) Logout(_ context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, sessionID)
	f.loggedOut = append(f.loggedOut, sessionID)
	return nil
}

func (f *fakeAuth) UpdateProfile(_ context.Context, sessionID string, displayName string, locale string) (authclient.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[sessionID]
	if !ok {
		return authclient.User{}, apperrors.E(apperrors.KindUnauthorized, "unknown session")
	}
	session.User.DisplayName = displayName
	session.User.Locale = locale
	f.sessions[sessionID] = session
	return session.User, nil
}

type fakeHealth struct {
	mu      sync.Mutex
	serving bool
}

func (h *fakeHealth) Serving() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.serving
}

func (h *fakeHealth) set(serving bool) {
	h.mu.Lock()
	h.serving = serving
	h.mu.Unlock()
}

type staticCatalog struct {
	cat *catalog.Catalog
}

func (s staticCatalog) Current() *catalog.Catalog {
	return s.cat
}
