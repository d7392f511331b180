// Package grpcdial connects the web service to the auth gRPC health endpoint
// and tracks whether the backend is serving.
package grpcdial

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"google.golang.org/grpc"
	grpc_health_v1 "google.golang.org/grpc/health/grpc_health_v1"

	platformgrpc "github.com/orbitwatch/missioncontrol/internal/platform/grpc"
)

// DialAuth opens a lazy connection to the auth gRPC address. An empty
// address returns a nil connection and no error.
func DialAuth(addr string) (*grpc.ClientConn, error) {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return nil, nil
	}
	conn, err := platformgrpc.NewClient(addr)
	if err != nil {
		return nil, fmt.Errorf("dial auth: %w", err)
	}
	return conn, nil
}

// HealthWatcher follows a gRPC health stream. It reports not serving until
// the first SERVING update arrives.
type HealthWatcher struct {
	serving atomic.Bool
	done    chan struct{}
}

// Serving reports the latest observed status. A nil watcher is always
// serving, which disables health gating.
func (w *HealthWatcher) Serving() bool {
	if w == nil {
		return true
	}
	return w.serving.Load()
}

// Done is closed once the watch loop exits.
func (w *HealthWatcher) Done() <-chan struct{} {
	return w.done
}

// WatchHealth starts following service's health on conn until ctx ends.
// Broken streams are re-opened with a capped backoff.
func WatchHealth(ctx context.Context, conn grpc.ClientConnInterface, service string, logf func(string, ...any)) *HealthWatcher {
	w := &HealthWatcher{done: make(chan struct{})}
	if logf == nil {
		logf = func(string, ...any) {}
	}
	if conn == nil {
		close(w.done)
		return w
	}
	client := grpc_health_v1.NewHealthClient(conn)
	go func() {
		defer close(w.done)
		backoff := platformgrpc.Backoff{Min: 200 * time.Millisecond, Max: time.Second}
		for {
			err := w.follow(ctx, client, service, logf)
			if ctx.Err() != nil {
				return
			}
			w.set(false, logf)
			if err != nil {
				logf("auth health watch: %v", err)
			}
			if backoff.Sleep(ctx) != nil {
				return
			}
		}
	}()
	return w
}

func (w *HealthWatcher) follow(ctx context.Context, client grpc_health_v1.HealthClient, service string, logf func(string, ...any)) error {
	stream, err := client.Watch(ctx, &grpc_health_v1.HealthCheckRequest{Service: service})
	if err != nil {
		return err
	}
	for {
		response, err := stream.Recv()
		if err != nil {
			return err
		}
		w.set(response.GetStatus() == grpc_health_v1.HealthCheckResponse_SERVING, logf)
	}
}

func (w *HealthWatcher) set(serving bool, logf func(string, ...any)) {
	if w.serving.Swap(serving) != serving {
		if serving {
			logf("auth health is SERVING")
		} else {
			logf("auth health is NOT_SERVING")
		}
	}
}
