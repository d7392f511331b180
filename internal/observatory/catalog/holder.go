package catalog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// Holder publishes the current catalog snapshot to concurrent readers.
type Holder struct {
	current atomic.Pointer[Catalog]
	path    string
	logger  *log.Logger
}

// NewHolder loads the catalog at path (embedded default when empty).
func NewHolder(path string, logger *log.Logger) (*Holder, error) {
	cat, err := Load(path)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	h := &Holder{path: strings.TrimSpace(path), logger: logger}
	h.current.Store(cat)
	return h, nil
}

// NewStaticHolder wraps an already loaded catalog; Watch is a no-op.
func NewStaticHolder(cat *Catalog) *Holder {
	h := &Holder{logger: log.Default()}
	h.current.Store(cat)
	return h
}

// Current returns the latest snapshot.
func (h *Holder) Current() *Catalog {
	if h == nil {
		return nil
	}
	return h.current.Load()
}

// Reload re-reads the backing file. A catalog that fails to parse or
// validate leaves the previous snapshot in place.
func (h *Holder) Reload() error {
	if h.path == "" {
		return nil
	}
	cat, err := Load(h.path)
	if err != nil {
		return err
	}
	h.current.Store(cat)
	return nil
}

// Watch reloads the catalog whenever its file changes until ctx is done.
// The parent directory is watched so editor rename-on-save is picked up.
func (h *Holder) Watch(ctx context.Context) error {
	if h == nil || h.path == "" {
		<-ctx.Done()
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create catalog watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(h.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch catalog dir %s: %w", dir, err)
	}
	target := filepath.Clean(h.path)

	var debounce *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("catalog watcher closed")
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if debounce == nil {
				debounce = time.NewTimer(reloadDebounce)
			} else {
				debounce.Reset(reloadDebounce)
			}
			fire = debounce.C
		case <-fire:
			fire = nil
			if err := h.Reload(); err != nil {
				h.logger.Printf("catalog reload failed path=%s err=%v", h.path, err)
				continue
			}
			cat := h.Current()
			h.logger.Printf("catalog reloaded path=%s satellites=%d missions=%d", h.path, len(cat.Satellites), len(cat.Missions))
		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("catalog watcher closed")
			}
			h.logger.Printf("catalog watcher error path=%s err=%v", h.path, err)
		}
	}
}
