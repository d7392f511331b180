package observatory

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/websocket"

	"github.com/orbitwatch/missioncontrol/internal/platform/timeouts"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/catalogview"
	"github.com/orbitwatch/missioncontrol/internal/services/web/platform/requestmeta"
)

const (
	// maxDecodeErrorsPerConn closes streams that keep sending garbage.
	maxDecodeErrorsPerConn = 5
	commandBuffer          = 8
)

type streamer struct {
	catalog  catalogview.Source
	interval time.Duration
	now      func() time.Time
	policy   requestmeta.SchemePolicy
}

func (s *streamer) handler() http.Handler {
	ws := websocket.Server{
		Handshake: func(_ *websocket.Config, r *http.Request) error {
			if !requestmeta.HasSameOriginProof(r, s.policy) {
				log.Printf("observatory: stream rejected cross-origin host=%q origin=%q", r.Host, r.Header.Get("Origin"))
				return errors.New("cross-origin stream")
			}
			return nil
		},
		Handler: s.serve,
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := catalogview.Load(s.catalog); err != nil {
			http.Error(w, "observatory catalog is unavailable", http.StatusServiceUnavailable)
			return
		}
		ws.ServeHTTP(w, r)
	})
}

func (s *streamer) serve(conn *websocket.Conn) {
	defer func() {
		_ = conn.Close()
	}()

	ctx, cancel := context.WithCancel(conn.Request().Context())
	defer cancel()

	commands := make(chan command, commandBuffer)
	go readCommands(ctx, cancel, conn, commands)

	v := newViewer()
	if focus := strings.TrimSpace(conn.Request().URL.Query().Get(focusParam)); focus != "" {
		v.apply(s.catalog.Current(), command{Type: commandFocus, Satellite: focus})
	}

	encoder := json.NewEncoder(conn)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	last := s.now()
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-commands:
			if !v.apply(s.catalog.Current(), cmd) {
				log.Printf("observatory: ignored stream command type=%q satellite=%q", cmd.Type, cmd.Satellite)
			}
		case <-ticker.C:
			cat := s.catalog.Current()
			if cat == nil {
				continue
			}
			now := s.now()
			out := v.step(cat, now, now.Sub(last))
			last = now
			_ = conn.SetWriteDeadline(time.Now().Add(timeouts.WebsocketWrite))
			if err := encoder.Encode(out); err != nil {
				return
			}
		}
	}
}

// readCommands forwards client commands to the frame loop until the
// connection closes. The controller is never touched here.
func readCommands(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, out chan<- command) {
	defer cancel()
	decoder := json.NewDecoder(conn)
	decodeErrors := 0
	for {
		var cmd command
		if err := decoder.Decode(&cmd); err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return
			}
			var syntaxErr *json.SyntaxError
			var typeErr *json.UnmarshalTypeError
			switch {
			case errors.As(err, &syntaxErr):
				// A syntax error leaves the decoder unusable.
				decoder = json.NewDecoder(conn)
			case errors.As(err, &typeErr):
			default:
				return
			}
			decodeErrors++
			if decodeErrors >= maxDecodeErrorsPerConn {
				return
			}
			continue
		}
		decodeErrors = 0
		select {
		case out <- cmd:
		case <-ctx.Done():
			return
		}
	}
}
