// Package auth defines the identity boundary for Mission Control.
//
// It owns accounts, password checks, web sessions and access tokens so the
// web dashboard only ever deals in opaque session ids.
//
// Subpackages:
//   - app: auth server wiring and lifecycle
//   - api/httpapi: JSON signup, login, session, profile and logout handlers
//   - storage: persistence interfaces and SQLite implementations
//   - token: HS256 access token issuing and verification
//   - user: account model, validation and password hashing
package auth
