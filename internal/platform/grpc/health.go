package grpc

import (
	"context"
	"errors"
	"time"

	gogrpc "google.golang.org/grpc"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	defaultMinBackoff = 200 * time.Millisecond
	defaultMaxBackoff = time.Second
	healthCallTimeout = time.Second
)

// Backoff doubles a retry delay up to Max. The zero value uses 200ms
// growing to 1s.
type Backoff struct {
	Min  time.Duration
	Max  time.Duration
	next time.Duration
}

// Next returns the delay to wait before the coming attempt.
func (b *Backoff) Next() time.Duration {
	lo, hi := b.Min, b.Max
	if lo <= 0 {
		lo = defaultMinBackoff
	}
	if hi < lo {
		hi = max(defaultMaxBackoff, lo)
	}
	if b.next < lo {
		b.next = lo
	}
	delay := b.next
	b.next = min(b.next*2, hi)
	return delay
}

// Reset starts the sequence over.
func (b *Backoff) Reset() {
	b.next = 0
}

// Sleep waits for the next delay or until ctx ends.
func (b *Backoff) Sleep(ctx context.Context) error {
	timer := time.NewTimer(b.Next())
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// WaitForHealth polls the health service on conn until service is SERVING.
// An empty service asks for the overall status.
func WaitForHealth(ctx context.Context, conn gogrpc.ClientConnInterface, service string, logf func(string, ...any)) error {
	if conn == nil {
		return errors.New("gRPC connection is not configured")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if logf == nil {
		logf = func(string, ...any) {}
	}

	client := grpc_health_v1.NewHealthClient(conn)
	var backoff Backoff
	for {
		status, err := checkOnce(ctx, client, service)
		switch {
		case err == nil && status == grpc_health_v1.HealthCheckResponse_SERVING:
			logf("gRPC health %q is SERVING", service)
			return nil
		case err != nil:
			logf("waiting for gRPC health %q: %v", service, err)
		default:
			logf("waiting for gRPC health %q: status %s", service, status)
		}
		if err := backoff.Sleep(ctx); err != nil {
			return err
		}
	}
}

func checkOnce(ctx context.Context, client grpc_health_v1.HealthClient, service string) (grpc_health_v1.HealthCheckResponse_ServingStatus, error) {
	callCtx, cancel := context.WithTimeout(ctx, healthCallTimeout)
	defer cancel()
	response, err := client.Check(callCtx, &grpc_health_v1.HealthCheckRequest{Service: service})
	if err != nil {
		return grpc_health_v1.HealthCheckResponse_UNKNOWN, err
	}
	return response.GetStatus(), nil
}
