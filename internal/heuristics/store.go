package heuristics

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"dota-draft-advisor/internal/metrics"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// Store hands out the current table and swaps it atomically on reload.
type Store struct {
	path    string
	current atomic.Pointer[Table]
	logger  zerolog.Logger
}

// NewStore loads path when set, otherwise serves the compiled-in defaults.
func NewStore(path string, logger zerolog.Logger) (*Store, error) {
	s := &Store{path: path, logger: logger}
	if path == "" {
		s.current.Store(Default())
		logger.Info().Msg("using default heuristics table")
		return s, nil
	}
	t, err := Load(path)
	if err != nil {
		return nil, err
	}
	s.current.Store(t)
	logger.Info().Str("path", path).Int("heroes", len(t.Heroes)).Msg("heuristics table loaded")
	return s, nil
}

// Current returns the active table snapshot.
func (s *Store) Current() *Table {
	return s.current.Load()
}

// Reload re-reads the file. On failure the previous table stays active.
func (s *Store) Reload() error {
	if s.path == "" {
		return nil
	}
	t, err := Load(s.path)
	if err != nil {
		return err
	}
	s.current.Store(t)
	s.logger.Info().Str("path", s.path).Msg("heuristics table reloaded")
	return nil
}

// Watch reloads the table whenever the file is written, until ctx is done.
func (s *Store) Watch(ctx context.Context) error {
	if s.path == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	// Editors often replace the file, so watch the directory.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", s.path, err)
	}

	go func() {
		defer watcher.Close()
		target := filepath.Clean(s.path)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					if err := s.Reload(); err != nil {
						metrics.HeuristicsReloads.WithLabelValues("error").Inc()
						s.logger.Warn().Err(err).Str("path", s.path).Msg("keeping previous heuristics table")
						continue
					}
					metrics.HeuristicsReloads.WithLabelValues("ok").Inc()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.logger.Warn().Err(err).Msg("heuristics watcher error")
			}
		}
	}()
	return nil
}
