package redirectguard

import "context"

type contextKey struct{}

type requestAuth struct {
	status  Status
	session *Session
}

// WithSession stores the resolved status and session on ctx.
func WithSession(ctx context.Context, status Status, session *Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, contextKey{}, requestAuth{status: status, session: session})
}

// StateFromContext returns the authentication query for the request. A
// context without resolved session state reports unauthenticated.
func StateFromContext(ctx context.Context) AuthState {
	auth, ok := authFromContext(ctx)
	if !ok {
		return State(StatusUnauthenticated, nil)
	}
	return State(auth.status, auth.session)
}

// SessionFromContext returns the authenticated session, if any.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	auth, ok := authFromContext(ctx)
	if !ok || auth.status != StatusAuthenticated || auth.session == nil {
		return nil, false
	}
	return auth.session, true
}

func authFromContext(ctx context.Context) (requestAuth, bool) {
	if ctx == nil {
		return requestAuth{}, false
	}
	auth, ok := ctx.Value(contextKey{}).(requestAuth)
	return auth, ok
}
