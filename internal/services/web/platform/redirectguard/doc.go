// Package redirectguard reconciles the requested path with the session
// status.
//
// Protected views are only reachable by authenticated sessions and auth-only
// views (login, signup, callback) only by unauthenticated ones. When an
// unauthenticated visitor is bounced from a protected view the original path
// is kept as the pending redirect and restored exactly once after login.
//
// Evaluate is the pure decision function. Guard.Apply runs it against a
// Storage and Navigator so the same logic serves HTTP middleware, form
// handlers and tests.
package redirectguard
