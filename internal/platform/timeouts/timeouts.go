// Package timeouts defines shared timeout constants used across services.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// AuthRequest caps a single web-to-auth backend call. Session lookups that
// exceed it leave the request in the loading state.
const AuthRequest = 2 * time.Second

// WebsocketWrite caps a single observatory frame write.
const WebsocketWrite = time.Second
