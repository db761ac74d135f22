// Package app wires the task tracker together: the configured backend, the
// records stored in it, the session and the task store. Both the CLI and
// the TUI work on an *App.
package app

import (
	"fmt"
	"time"

	"github.com/td0m/tasktracker/internal/config"
	"github.com/td0m/tasktracker/pkg/kv"
	"github.com/td0m/tasktracker/pkg/persist"
	"github.com/td0m/tasktracker/pkg/session"
	"github.com/td0m/tasktracker/pkg/task"
	"go.uber.org/zap"
)

type App struct {
	Config  *config.Config
	Log     *zap.Logger
	Session *session.Session
	Tasks   *task.Store

	store       kv.Store
	local       *persist.Local
	diagnostics []persist.Diagnostic
	now         func() time.Time
}

type Option func(*App)

// WithStore uses store instead of opening the configured backend
func WithStore(store kv.Store) Option {
	return func(a *App) {
		a.store = store
	}
}

func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

// New opens the configured backend, restores the session and loads the
// tasks. Only failing to open the backend is an error; unreadable data
// is replaced by defaults and shows up in Diagnostics.
func New(cfg *config.Config, log *zap.Logger, opts ...Option) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		Config: cfg,
		Log:    log,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.store == nil {
		store, err := kv.Open(cfg.KV())
		if err != nil {
			return nil, fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
		}
		a.store = store
	}

	a.local = persist.In(a.store,
		persist.WithLogger(log.Named("persist")),
		persist.WithClock(a.now),
		persist.WithDiagnostics(func(d persist.Diagnostic) {
			a.diagnostics = append(a.diagnostics, d)
		}),
	)
	a.Session = session.New(a.local)
	a.Tasks = task.NewStore(a.local, task.WithClock(a.now))

	if user, ok := a.Session.Restore(); ok {
		log.Debug("session restored", zap.String("user", user))
	}
	tasks := a.Tasks.Load()
	log.Debug("tasks loaded", zap.Int("count", len(tasks)), zap.String("backend", cfg.Store.Backend))
	return a, nil
}

// Diagnostics lists what could not be read since the app was created
func (a *App) Diagnostics() []persist.Diagnostic {
	return append([]persist.Diagnostic{}, a.diagnostics...)
}

func (a *App) Now() time.Time {
	return a.now()
}

// Clear removes every task
func (a *App) Clear() error {
	if err := a.Tasks.Clear(); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	a.Log.Info("tasks cleared")
	return nil
}

func (a *App) Close() error {
	return a.store.Close()
}
