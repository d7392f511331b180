package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"

	apperrors "github.com/orbitwatch/missioncontrol/internal/platform/errors"
	errori18n "github.com/orbitwatch/missioncontrol/internal/platform/errors/i18n"
	platformi18n "github.com/orbitwatch/missioncontrol/internal/platform/i18n"
	"github.com/orbitwatch/missioncontrol/internal/platform/requestctx"
	"github.com/orbitwatch/missioncontrol/internal/services/auth/user"
)

// Routes served by the API.
const (
	PathSignup     = "/api/auth/signup"
	PathLogin      = "/api/auth/login"
	PathSession    = "/api/auth/session"
	PathProfile    = "/api/auth/profile"
	PathLogout     = "/api/auth/logout"
	PathIntrospect = "/api/auth/introspect"
	PathHealth     = "/up"
)

// SessionScheme is the Authorization scheme carrying a web session id.
const SessionScheme = "Session"

const maxBodyBytes = 1 << 20

type userResponse struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	Locale      string `json:"locale"`
}

type signupRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
	Locale      string `json:"locale,omitempty"`
}

type signupResponse struct {
	User userResponse `json:"user"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type sessionResponse struct {
	SessionID   string       `json:"session_id"`
	AccessToken string       `json:"access_token"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        userResponse `json:"user"`
}

type profileRequest struct {
	DisplayName string `json:"display_name"`
	Locale      string `json:"locale"`
}

type introspectResponse struct {
	Active    bool   `json:"active"`
	UserID    string `json:"user_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	Exp       int64  `json:"exp,omitempty"`
}

type grantContextKey struct{}

// Server hosts the auth JSON API.
type Server struct {
	service *AuthService
	logger  *log.Logger
}

// NewServer binds handlers to service.
func NewServer(service *AuthService, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{service: service, logger: logger}
}

// RegisterRoutes registers the API on mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	if mux == nil {
		return
	}
	mux.HandleFunc("POST "+PathSignup, s.handleSignup)
	mux.HandleFunc("POST "+PathLogin, s.handleLogin)
	mux.Handle("GET "+PathSession, s.requireSession(http.HandlerFunc(s.handleSession)))
	mux.Handle("PATCH "+PathProfile, s.requireSession(http.HandlerFunc(s.handleProfile)))
	mux.HandleFunc("POST "+PathLogout, s.handleLogout)
	mux.HandleFunc("GET "+PathIntrospect, s.handleIntrospect)
	mux.HandleFunc("GET "+PathHealth, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}

// Handler returns a mux with every route registered.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return mux
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	locale := req.Locale
	if strings.TrimSpace(locale) == "" {
		locale = requestLocale(r)
	}
	created, err := s.service.Signup(r.Context(), user.CreateUserInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Locale:      locale,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Printf("auth signup user_id=%s username=%s", created.ID, created.Username)
	writeJSON(w, http.StatusCreated, signupResponse{User: toUserResponse(created)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	grant, err := s.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Printf("auth login user_id=%s session_expires_at=%s", grant.User.ID, grant.Session.ExpiresAt.Format(time.RFC3339))
	writeJSON(w, http.StatusOK, toSessionResponse(grant))
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	grant, _ := r.Context().Value(grantContextKey{}).(SessionGrant)
	writeJSON(w, http.StatusOK, toSessionResponse(grant))
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	updated, err := s.service.UpdateProfile(r.Context(), requestctx.SessionIDFromContext(r.Context()), req.DisplayName, req.Locale)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, signupResponse{User: toUserResponse(updated)})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDFromHeader(r)
	if !ok {
		s.writeError(w, r, errSessionRequired)
		return
	}
	if err := s.service.Logout(r.Context(), sessionID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleIntrospect(w http.ResponseWriter, r *http.Request) {
	scheme, value, _ := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !strings.EqualFold(scheme, "Bearer") {
		writeJSON(w, http.StatusOK, introspectResponse{Active: false})
		return
	}
	grant, err := s.service.Introspect(r.Context(), value)
	if err != nil {
		if apperrors.GetCode(err) == apperrors.CodeUnknown {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, introspectResponse{Active: false})
		return
	}
	writeJSON(w, http.StatusOK, introspectResponse{
		Active:    true,
		UserID:    grant.User.ID,
		SessionID: grant.Session.ID,
		Exp:       grant.Session.ExpiresAt.Unix(),
	})
}

// requireSession resolves the Session authorization header and stores the
// caller identity in the request context.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID, ok := sessionIDFromHeader(r)
		if !ok {
			s.writeError(w, r, errSessionRequired)
			return
		}
		grant, err := s.service.ResolveSession(r.Context(), sessionID)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		ctx := requestctx.WithUserID(r.Context(), grant.User.ID)
		ctx = requestctx.WithSessionID(ctx, grant.Session.ID)
		ctx = context.WithValue(ctx, grantContextKey{}, grant)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// writeError answers with a localized plain-text message. Unclassified
// errors are logged and reported generically.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperrors.GetCode(err)
	if code == apperrors.CodeUnknown {
		s.logger.Printf("auth api error method=%s path=%s user_id=%s err=%v",
			r.Method, r.URL.Path, requestctx.UserIDFromContext(r.Context()), err)
	}
	message := errori18n.GetCatalog(requestLocale(r)).Format(string(code), apperrors.GetMetadata(err))
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code.HTTPStatus())
	_, _ = io.WriteString(w, message)
}

func sessionIDFromHeader(r *http.Request) (string, bool) {
	scheme, value, found := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !found || !strings.EqualFold(scheme, SessionScheme) {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}

func requestLocale(r *http.Request) string {
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil {
		return platformi18n.DefaultTag().String()
	}
	return platformi18n.MatchTags(tags).String()
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.New(apperrors.CodeMalformedRequest, "request body is empty")
		}
		return apperrors.Wrap(apperrors.CodeMalformedRequest, "decode request body", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func toUserResponse(u user.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Locale:      u.Locale,
	}
}

func toSessionResponse(grant SessionGrant) sessionResponse {
	return sessionResponse{
		SessionID:   grant.Session.ID,
		AccessToken: grant.AccessToken,
		ExpiresAt:   grant.Session.ExpiresAt,
		User:        toUserResponse(grant.User),
	}
}
