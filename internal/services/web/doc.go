// Package web serves the Mission Control dashboard.
//
// Every request passes through the session redirect guard before reaching a
// module: the guard asks the session resolver whether the visitor is signed
// in, still being checked, or anonymous, and either redirects, holds the
// request back, or attaches the session to the request context.
package web
