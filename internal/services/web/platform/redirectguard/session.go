package redirectguard

// Status is the session provider's authentication status.
type Status string

const (
	StatusLoading         Status = "loading"
	StatusAuthenticated   Status = "authenticated"
	StatusUnauthenticated Status = "unauthenticated"
)

// User identifies the signed-in account.
type User struct {
	ID          string
	Username    string
	Email       string
	DisplayName string
}

// Session is the authentication context. It is only present when the status
// is authenticated.
type Session struct {
	ID          string
	User        *User
	AccessToken string
}

// Input is everything one guard evaluation reads.
type Input struct {
	Status  Status
	Session *Session
	// Path is the routing layer's current path; empty means unresolved.
	Path string
}

// AuthState is the read-only authentication query exposed to views.
type AuthState struct {
	IsAuthenticated bool
	IsLoading       bool
	User            *User
	Token           string
}

// State derives the authentication query from status and session. It has no
// side effects and does not depend on the requested path.
func State(status Status, session *Session) AuthState {
	state := AuthState{
		IsAuthenticated: status == StatusAuthenticated,
		IsLoading:       status == StatusLoading,
	}
	if state.IsAuthenticated && session != nil {
		state.User = session.User
		state.Token = session.AccessToken
	}
	return state
}
