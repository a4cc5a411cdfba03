package tui

import (
	"context"
	"sync"
	"time"

	"github.com/julianstephens/growthlog/internal/autosave"
	"github.com/julianstephens/growthlog/internal/cli"
	"github.com/julianstephens/growthlog/internal/constants"
	"github.com/julianstephens/growthlog/internal/logger"
	"github.com/julianstephens/growthlog/internal/models"
	"github.com/julianstephens/growthlog/internal/storage"
	"github.com/julianstephens/growthlog/internal/tracker"
)

// session owns the resources shared between the UI loop and background
// goroutines. Every read-modify-write of the user's state goes through mu.
type session struct {
	ctx *cli.Context

	mu       sync.Mutex
	autosave *autosave.Debouncer[string]
	changes  chan struct{}
	watcher  *storage.Watcher
	cancel   context.CancelFunc
	closed   sync.Once
}

func newSession(ctx *cli.Context) *session {
	s := &session{
		ctx:     ctx,
		changes: make(chan struct{}, 1),
	}
	s.autosave = autosave.New(constants.AutosaveDelay, func(text string) error {
		_, err := s.mutate(func(st *models.UserState, now time.Time) {
			tracker.SavePost(st, text, now)
		})
		return err
	})
	return s
}

// mutate applies fn to the freshly loaded state and saves the result.
func (s *session) mutate(fn func(st *models.UserState, now time.Time)) (models.UserState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.ctx.State()
	fn(&st, s.ctx.Now())
	if err := s.ctx.SaveState(st); err != nil {
		return st, err
	}
	return st, nil
}

// watch starts reporting external writes to file-backed stores on changes.
func (s *session) watch() {
	if !storage.IsFileBacked(s.ctx.Provider) {
		return
	}
	wctx, cancel := context.WithCancel(context.Background())
	w, err := storage.Watch(wctx, s.ctx.Provider.GetConfigPath(), func() {
		select {
		case s.changes <- struct{}{}:
		default:
		}
	})
	if err != nil {
		cancel()
		logger.Warn("Failed to watch store, external changes will not refresh the view", "error", err)
		return
	}
	s.watcher = w
	s.cancel = cancel
}

// reloadProvider re-reads the backing file after an external write.
func (s *session) reloadProvider() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctx.Provider.Load()
}

func (s *session) close() {
	s.closed.Do(func() {
		if err := s.autosave.Stop(); err != nil {
			logger.Warn("Failed to save post on exit", "error", err)
		}
		if s.watcher != nil {
			s.watcher.Stop()
		}
		if s.cancel != nil {
			s.cancel()
		}
		close(s.changes)
	})
}

// locked runs a store write that touches documents the autosave goroutine
// may also be writing.
func (s *session) locked(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}
