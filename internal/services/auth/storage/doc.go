// Package storage defines persistence contracts for auth identities and web
// sessions.
//
// These interfaces exist so API handlers and business logic can depend on stable
// domain semantics without coupling to SQLite schema details.
package storage
