package task

import (
	"strings"
	"time"
)

// Persistor is where a Store writes its collection after every change.
// Load never fails: unreadable data comes back as an empty collection.
type Persistor interface {
	Save([]Task) error
	Load() []Task
}

type StoreManager interface {
	Load() []Task
	Tasks() []Task
	Get(ID) (Task, bool)

	Add(Fields) (Task, error)
	Update(ID, Patch) (bool, error)
	Delete(ID) (bool, error)
	ToggleComplete(ID) (bool, error)
	Import([]Task) ([]Task, error)
	Clear() error

	Counts() Counts
	View(Status, string) []Task
}

var _ StoreManager = &Store{}

// Store is the ordered, in-memory collection of tasks. It is the single
// source of truth while the program runs and writes through to its
// Persistor before any mutating call returns.
//
// A Store is not safe for concurrent use.
type Store struct {
	tasks   []Task
	persist Persistor
	ids     *IDGen
	now     func() time.Time
}

type Option func(*Store)

// WithClock replaces time.Now, both for timestamps and for new IDs
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
		s.ids = NewIDGen(now)
	}
}

func NewStore(p Persistor, opts ...Option) *Store {
	s := &Store{
		persist: p,
		now:     time.Now,
		ids:     NewIDGen(time.Now),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory collection with the persisted one and
// returns it in storage order.
// Tasks without an ID, or sharing one (possible in data written by older
// versions), are given fresh IDs so that every ID stays unique and positive.
func (s *Store) Load() []Task {
	loaded := s.persist.Load()
	seen := make(map[ID]bool, len(loaded))
	for _, t := range loaded {
		s.ids.Observe(t.ID)
	}
	for i, t := range loaded {
		if t.ID <= 0 || seen[t.ID] {
			loaded[i].ID = s.ids.Next()
		}
		seen[loaded[i].ID] = true
	}
	s.tasks = loaded
	return s.Tasks()
}

// Tasks returns a copy of the collection in storage order
func (s *Store) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *Store) Get(id ID) (Task, bool) {
	i := s.index(id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

func (s *Store) index(id ID) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// Add creates a pending task from f and appends it to the collection
func (s *Store) Add(f Fields) (Task, error) {
	title := strings.TrimSpace(f.Title)
	if title == "" {
		return Task{}, ErrEmptyTitle
	}
	t := Task{
		ID:          s.ids.Next(),
		Title:       title,
		Description: strings.TrimSpace(f.Description),
		CreatedAt:   Timestamp(s.now()),
		Priority:    f.Priority.Normalize(),
		Category:    strings.TrimSpace(f.Category),
	}
	if f.Due != nil {
		due := Timestamp(*f.Due)
		t.Due = &due
	}
	next := append(s.Tasks(), t)
	if err := s.commit(next); err != nil {
		return Task{}, err
	}
	return t, nil
}

// Update merges p over the task with the given id.
// It returns false, and changes nothing, when there is no such task.
func (s *Store) Update(id ID, p Patch) (bool, error) {
	i := s.index(id)
	if i < 0 {
		return false, nil
	}
	updated, err := p.apply(s.tasks[i])
	if err != nil {
		return false, err
	}
	next := s.Tasks()
	next[i] = updated
	if err := s.commit(next); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes the task with the given id, if there is one
func (s *Store) Delete(id ID) (bool, error) {
	i := s.index(id)
	if i < 0 {
		return false, nil
	}
	next := make([]Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:i]...)
	next = append(next, s.tasks[i+1:]...)
	if err := s.commit(next); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) ToggleComplete(id ID) (bool, error) {
	t, ok := s.Get(id)
	if !ok {
		return false, nil
	}
	completed := !t.Completed
	return s.Update(id, Patch{Completed: &completed})
}

// Import appends ready-made tasks, keeping their creation time and
// completion but giving them fresh IDs. Nothing is added if any of them has
// no title.
func (s *Store) Import(ts []Task) ([]Task, error) {
	added := make([]Task, len(ts))
	for i, t := range ts {
		t.Title = strings.TrimSpace(t.Title)
		if t.Title == "" {
			return nil, ErrEmptyTitle
		}
		t.ID = s.ids.Next()
		t.Description = strings.TrimSpace(t.Description)
		t.Category = strings.TrimSpace(t.Category)
		t.Priority = t.Priority.Normalize()
		if t.CreatedAt.IsZero() {
			t.CreatedAt = s.now()
		}
		t.CreatedAt = Timestamp(t.CreatedAt)
		if t.Due != nil {
			due := Timestamp(*t.Due)
			t.Due = &due
		}
		added[i] = t
	}
	if err := s.commit(append(s.Tasks(), added...)); err != nil {
		return nil, err
	}
	return added, nil
}

// Clear removes every task
func (s *Store) Clear() error {
	return s.commit([]Task{})
}

// commit persists the new collection and only then makes it current, so a
// failed write leaves the store as it was
func (s *Store) commit(tasks []Task) error {
	if err := s.persist.Save(tasks); err != nil {
		return err
	}
	s.tasks = tasks
	return nil
}

func (s *Store) Counts() Counts {
	return Count(s.tasks)
}

// View is what the task list shows: tasks with the given status that
// match query, in display order.
func (s *Store) View(status Status, query string) []Task {
	out := Search(Filter(s.tasks, status), query)
	Sort(out)
	return out
}
