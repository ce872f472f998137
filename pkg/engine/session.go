package engine

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/prevet/prevet/pkg/event"
)

// Events groups the lifecycle events a session emits. Callbacks receive
// the session as their single argument.
type Events struct {
	// RegisterCreated fires once when the session builds its register.
	RegisterCreated *event.Event

	// BlueprintsReloaded fires after every register reload.
	BlueprintsReloaded *event.Event

	// DevModeEnabled fires when dev mode turns on.
	DevModeEnabled *event.Event

	// DevModeDisabled fires when dev mode turns off.
	DevModeDisabled *event.Event
}

func newEvents() *Events {
	return &Events{
		RegisterCreated:    event.New("RegisterCreated"),
		BlueprintsReloaded: event.New("BlueprintsReloaded"),
		DevModeEnabled:     event.New("DevModeEnabled"),
		DevModeDisabled:    event.New("DevModeDisabled"),
	}
}

// Session is the top-level entry point tying a register to its lifecycle
// events and the optional dev mode.
//
// In dev mode the session watches every blueprint source path and reloads
// the register when one changes, so blueprint edits show up without a
// restart.
type Session struct {
	register *Register
	events   *Events
	logger   zerolog.Logger

	mu       sync.Mutex
	devMode  bool
	watcher  *fsnotify.Watcher
	stopOnce func()
}

// NewSession creates a session with a fresh register resolving against
// the given catalog, and emits RegisterCreated.
func NewSession(catalog *Catalog, logger zerolog.Logger) *Session {
	s := &Session{
		register: NewRegister(catalog),
		events:   newEvents(),
		logger:   logger.With().Str("component", "session").Logger(),
	}
	s.events.RegisterCreated.Emit(s)
	return s
}

// Register returns the session's register.
func (s *Session) Register() *Register { return s.register }

// Events returns the session's lifecycle events.
func (s *Session) Events() *Events { return s.events }

// DevMode reports whether dev mode is on.
func (s *Session) DevMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.devMode
}

// Reload rebuilds every blueprint from its source and emits
// BlueprintsReloaded.
func (s *Session) Reload() {
	s.register.Reload()
	s.events.BlueprintsReloaded.Emit(s)
	s.logger.Info().
		Int("blueprints", len(s.register.Blueprints())).
		Msg("Blueprints reloaded")
}

// EnableDevMode starts watching every registered blueprint source path
// and reloads the register when one changes. Enabling twice is a no-op.
// Watching stops when the context is cancelled or DisableDevMode is
// called.
func (s *Session) EnableDevMode(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.devMode {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	for _, blueprint := range s.register.Blueprints() {
		if err := watcher.Add(blueprint.Path()); err != nil {
			s.logger.Warn().Err(err).Str("path", blueprint.Path()).Msg("Failed to watch blueprint")
		}
	}

	watchCtx, cancel := context.WithCancel(ctx)
	s.watcher = watcher
	s.stopOnce = sync.OnceFunc(cancel)
	s.devMode = true

	go s.processEvents(watchCtx, watcher)

	s.events.DevModeEnabled.Emit(s)
	s.logger.Info().Msg("Dev mode enabled")
	return nil
}

// DisableDevMode stops the blueprint watcher. Disabling twice is a no-op.
func (s *Session) DisableDevMode() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.devMode {
		return
	}

	s.stopOnce()
	s.devMode = false
	s.watcher = nil

	s.events.DevModeDisabled.Emit(s)
	s.logger.Info().Msg("Dev mode disabled")
}

// processEvents reloads the register on blueprint writes, debounced so an
// editor's burst of events triggers one reload.
func (s *Session) processEvents(ctx context.Context, watcher *fsnotify.Watcher) {
	var reloadTimer *time.Timer
	reloadDelay := 500 * time.Millisecond

	for {
		select {
		case <-ctx.Done():
			_ = watcher.Close()
			return

		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				s.logger.Debug().
					Str("file", ev.Name).
					Str("op", ev.Op.String()).
					Msg("Blueprint file changed")

				if reloadTimer != nil {
					reloadTimer.Stop()
				}
				reloadTimer = time.AfterFunc(reloadDelay, s.Reload)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Error().Err(err).Msg("Watcher error")
		}
	}
}
