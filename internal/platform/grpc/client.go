// Package grpc holds the client side of the processes' gRPC health contract.
package grpc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	gogrpc "google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// Stage names the step a dial failed at.
type Stage string

const (
	StageConnect Stage = "connect"
	StageHealth  Stage = "health"
)

// DialError reports a failed connection attempt.
type DialError struct {
	Stage Stage
	Addr  string
	Err   error
}

func (e *DialError) Error() string {
	if e == nil {
		return "gRPC dial error"
	}
	return fmt.Sprintf("gRPC %s %s: %v", e.Stage, e.Addr, e.Err)
}

func (e *DialError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ClientOptions returns the dial options used between processes: plaintext
// on the internal network, with OpenTelemetry stats so outbound calls carry
// trace context.
func ClientOptions() []gogrpc.DialOption {
	return []gogrpc.DialOption{
		gogrpc.WithTransportCredentials(insecure.NewCredentials()),
		gogrpc.WithStatsHandler(otelgrpc.NewClientHandler()),
	}
}

// NewClient opens a lazy connection to addr. Nothing is dialed until the
// first call, so a peer that is down does not block startup.
func NewClient(addr string) (*gogrpc.ClientConn, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, &DialError{Stage: StageConnect, Err: errors.New("address is required")}
	}
	conn, err := gogrpc.NewClient(addr, ClientOptions()...)
	if err != nil {
		return nil, &DialError{Stage: StageConnect, Addr: addr, Err: err}
	}
	return conn, nil
}

// DialHealthy connects to addr and blocks until service reports SERVING or
// ctx ends. The connection is closed on failure.
func DialHealthy(ctx context.Context, addr string, service string, logf func(string, ...any)) (*gogrpc.ClientConn, error) {
	if ctx == nil {
		return nil, errors.New("context is required")
	}
	conn, err := NewClient(addr)
	if err != nil {
		return nil, err
	}
	if err := WaitForHealth(ctx, conn, service, logf); err != nil {
		_ = conn.Close()
		return nil, &DialError{Stage: StageHealth, Addr: conn.Target(), Err: err}
	}
	return conn, nil
}
