// Package httpapi serves the auth JSON API consumed by the web dashboard:
// signup, password login, session lookup, profile updates, and logout.
//
// Failures are answered with a plain-text body localized for the caller's
// Accept-Language, so the dashboard can show it to the user as is.
package httpapi
