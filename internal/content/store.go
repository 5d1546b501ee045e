package content

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/xtding233/towerclimb-backend/internal/metrics"
)

// Store publishes the current content snapshot. Readers never block; a reload
// swaps the pointer only after the new snapshot validated.
type Store struct {
	loader *Loader
	log    *zap.Logger
	cur    atomic.Pointer[Tables]
}

// NewStore performs the initial load. A failure here is fatal for the caller.
func NewStore(loader *Loader, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{loader: loader, log: log}
	t, err := loader.Load()
	if err != nil {
		return nil, err
	}
	s.cur.Store(t)
	log.Info("content loaded",
		zap.String("version", t.Version),
		zap.Int("packages", len(t.Packages)),
		zap.Int("scrolls", len(t.Scrolls)),
		zap.Int("catalog", t.Catalog.Len()))
	return s, nil
}

// NewStaticStore wraps a fixed snapshot (tests, simulations).
func NewStaticStore(t *Tables) *Store {
	s := &Store{log: zap.NewNop()}
	s.cur.Store(t)
	return s
}

// Tables returns the current snapshot.
func (s *Store) Tables() *Tables { return s.cur.Load() }

// Reload re-reads content from disk. On error the previous snapshot stays live.
func (s *Store) Reload() error {
	if s.loader == nil {
		return nil
	}
	t, err := s.loader.Load()
	if err != nil {
		metrics.ContentReloads.WithLabelValues("failure").Inc()
		s.log.Error("content reload failed; keeping previous snapshot", zap.Error(err))
		return err
	}
	s.cur.Store(t)
	metrics.ContentReloads.WithLabelValues("success").Inc()
	s.log.Info("content reloaded", zap.String("version", t.Version), zap.Int("packages", len(t.Packages)))
	return nil
}

// Watch starts a FileWatcher that reloads on any content file change.
// Static stores have nothing to watch and return nil.
func (s *Store) Watch(interval time.Duration) *FileWatcher {
	if s.loader == nil || interval <= 0 {
		return nil
	}
	fw := NewFileWatcher(s.loader.Paths().Files(), interval, func(path string) {
		s.log.Info("content file changed", zap.String("path", path))
		_ = s.Reload()
	})
	fw.Start()
	return fw
}
