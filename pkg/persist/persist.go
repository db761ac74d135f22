package persist

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/td0m/tasktracker/pkg/kv"
	"github.com/td0m/tasktracker/pkg/task"
	"go.uber.org/zap"
)

const (
	UserKey  = "task-tracker-user"
	TasksKey = "task-tracker-tasks"
)

// Diagnostic describes data that could not be read and was replaced by a
// default. Reads never fail; diagnostics are how a degraded read shows up.
type Diagnostic struct {
	Key string
	Err error
}

// Local stores the signed-in user and the task collection as two records
// in a kv.Store.
type Local struct {
	store kv.Store
	log   *zap.Logger
	diag  func(Diagnostic)
	now   func() time.Time
}

var _ task.Persistor = &Local{}

type Option func(*Local)

func WithLogger(log *zap.Logger) Option {
	return func(l *Local) {
		l.log = log
	}
}

// WithDiagnostics registers fn to be called for every degraded read
func WithDiagnostics(fn func(Diagnostic)) Option {
	return func(l *Local) {
		l.diag = fn
	}
}

// WithClock sets the creation time given to stored tasks that lack one
func WithClock(now func() time.Time) Option {
	return func(l *Local) {
		l.now = now
	}
}

func In(store kv.Store, opts ...Option) *Local {
	l := &Local{
		store: store,
		log:   zap.NewNop(),
		diag:  func(Diagnostic) {},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Local) report(key string, err error) {
	l.log.Warn("degraded read", zap.String("key", key), zap.Error(err))
	l.diag(Diagnostic{Key: key, Err: err})
}

// Save saves the whole collection as a json array
func (l *Local) Save(ts []task.Task) error {
	data := make([]savable, len(ts))
	for i, t := range ts {
		data[i] = newSavable(t)
	}
	bs, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return l.store.Set(TasksKey, string(bs))
}

// Load loads the collection in storage order.
// A missing record is an empty collection; so is one that cannot be read,
// in which case a diagnostic is reported.
func (l *Local) Load() []task.Task {
	raw, err := l.store.Get(TasksKey)
	if errors.Is(err, kv.ErrNotFound) {
		return []task.Task{}
	}
	if err != nil {
		l.report(TasksKey, err)
		return []task.Task{}
	}
	if strings.TrimSpace(raw) == "" {
		return []task.Task{}
	}
	var data []savable
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		l.report(TasksKey, err)
		return []task.Task{}
	}
	now := l.now()
	tasks := make([]task.Task, 0, len(data))
	for _, s := range data {
		t, problems := s.Load(now)
		for _, err := range problems {
			l.report(TasksKey, err)
		}
		if t.Title == "" {
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks
}

// Clear removes the collection record
func (l *Local) Clear() error {
	return l.store.Remove(TasksKey)
}

// User returns the persisted username, if there is one
func (l *Local) User() (string, bool) {
	name, err := l.store.Get(UserKey)
	if errors.Is(err, kv.ErrNotFound) {
		return "", false
	}
	if err != nil {
		l.report(UserKey, err)
		return "", false
	}
	return name, name != ""
}

func (l *Local) SetUser(name string) error {
	return l.store.Set(UserKey, name)
}

func (l *Local) ClearUser() error {
	return l.store.Remove(UserKey)
}
