// Package server composes and runs the auth process boundary.
//
// It hosts the JSON account and session API over HTTP and a gRPC health
// service. Both share one SQLite store, and the health status follows the
// store's reachability so dependents can defer work while it is down.
package server
