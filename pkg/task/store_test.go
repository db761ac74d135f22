package task

import (
	"errors"
	"testing"
	"time"

	"github.com/matryer/is"
)

// memory is a Persistor that keeps the last saved collection
type memory struct {
	saved []Task
	saves int
	err   error
}

func (m *memory) Save(ts []Task) error {
	if m.err != nil {
		return m.err
	}
	m.saves++
	m.saved = append([]Task{}, ts...)
	return nil
}

func (m *memory) Load() []Task {
	return append([]Task{}, m.saved...)
}

// fixedClock returns the same instant on every call, so IDs would collide
// if the store relied on the clock alone
func fixedClock() time.Time {
	return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
}

func newTestStore() (*Store, *memory) {
	m := &memory{}
	return NewStore(m, WithClock(fixedClock)), m
}

func TestStore_Add(t *testing.T) {
	s, m := newTestStore()

	t.Run("adds exactly one pending task", func(t *testing.T) {
		is := is.New(t)
		due := fixedClock().Add(48 * time.Hour)
		added, err := s.Add(Fields{
			Title:       "  write report ",
			Description: " quarterly ",
			Due:         &due,
			Priority:    High,
			Category:    " Work ",
		})
		is.NoErr(err)
		is.Equal(len(s.Tasks()), 1)
		is.Equal(len(m.saved), 1) // written through
		is.Equal(added.Title, "write report")
		is.Equal(added.Description, "quarterly")
		is.Equal(added.Category, "Work")
		is.Equal(added.Priority, High)
		is.True(!added.Completed)
		is.Equal(added.CreatedAt, fixedClock())
		is.Equal(*added.Due, due)
	})

	t.Run("defaults priority", func(t *testing.T) {
		is := is.New(t)
		added, err := s.Add(Fields{Title: "gym", Priority: "urgent"})
		is.NoErr(err)
		is.Equal(added.Priority, Medium)
	})

	t.Run("ids are unique within the same millisecond", func(t *testing.T) {
		is := is.New(t)
		seen := map[ID]bool{}
		for _, existing := range s.Tasks() {
			seen[existing.ID] = true
		}
		for i := 0; i < 10; i++ {
			added, err := s.Add(Fields{Title: "again"})
			is.NoErr(err)
			is.True(!seen[added.ID])
			seen[added.ID] = true
		}
	})

	t.Run("rejects an empty title", func(t *testing.T) {
		is := is.New(t)
		before := len(s.Tasks())
		saves := m.saves
		_, err := s.Add(Fields{Title: "   "})
		is.Equal(err, ErrEmptyTitle)
		is.Equal(len(s.Tasks()), before)
		is.Equal(m.saves, saves)
	})
}

func TestStore_Update(t *testing.T) {
	s, m := newTestStore()
	a, _ := s.Add(Fields{Title: "a", Category: "home"})
	b, _ := s.Add(Fields{Title: "b"})

	t.Run("unknown id is a no-op", func(t *testing.T) {
		is := is.New(t)
		before := s.Tasks()
		saves := m.saves
		title := "changed"
		ok, err := s.Update(ID(42), Patch{Title: &title})
		is.NoErr(err)
		is.True(!ok)
		is.Equal(s.Tasks(), before)
		is.Equal(m.saves, saves)
	})

	t.Run("replaces only the given fields", func(t *testing.T) {
		is := is.New(t)
		title := "a, renamed"
		p := Low
		ok, err := s.Update(a.ID, Patch{Title: &title, Priority: &p})
		is.NoErr(err)
		is.True(ok)
		got, _ := s.Get(a.ID)
		is.Equal(got.Title, "a, renamed")
		is.Equal(got.Priority, Low)
		is.Equal(got.Category, "home")
		is.Equal(got.ID, a.ID)
		is.Equal(got.CreatedAt, a.CreatedAt)
		// order is kept
		is.Equal(s.Tasks()[0].ID, a.ID)
		is.Equal(s.Tasks()[1].ID, b.ID)
		is.Equal(m.saved[0].Title, "a, renamed")
	})

	t.Run("clears the due date and category", func(t *testing.T) {
		is := is.New(t)
		due := fixedClock()
		empty := ""
		_, err := s.Update(b.ID, Patch{Due: &due})
		is.NoErr(err)
		got, _ := s.Get(b.ID)
		is.True(got.Due != nil)

		_, err = s.Update(b.ID, Patch{ClearDue: true, Category: &empty})
		is.NoErr(err)
		got, _ = s.Get(b.ID)
		is.True(got.Due == nil)
		is.Equal(got.Category, "")
	})

	t.Run("rejects an empty title", func(t *testing.T) {
		is := is.New(t)
		empty := " "
		ok, err := s.Update(a.ID, Patch{Title: &empty})
		is.Equal(err, ErrEmptyTitle)
		is.True(!ok)
		got, _ := s.Get(a.ID)
		is.Equal(got.Title, "a, renamed")
	})

	t.Run("edit form replaces everything", func(t *testing.T) {
		is := is.New(t)
		_, err := s.Update(a.ID, PatchFromFields(Fields{Title: "new", Priority: High}))
		is.NoErr(err)
		got, _ := s.Get(a.ID)
		is.Equal(got.Title, "new")
		is.Equal(got.Description, "")
		is.Equal(got.Category, "")
		is.Equal(got.Priority, High)
		is.True(got.Due == nil)
	})
}

func TestStore_ToggleComplete(t *testing.T) {
	is := is.New(t)
	s, _ := newTestStore()
	a, _ := s.Add(Fields{Title: "a"})

	ok, err := s.ToggleComplete(a.ID)
	is.NoErr(err)
	is.True(ok)
	got, _ := s.Get(a.ID)
	is.True(got.Completed)

	_, err = s.ToggleComplete(a.ID)
	is.NoErr(err)
	got, _ = s.Get(a.ID)
	is.True(!got.Completed) // toggling twice restores the original value

	ok, err = s.ToggleComplete(ID(7))
	is.NoErr(err)
	is.True(!ok)
}

func TestStore_Delete(t *testing.T) {
	is := is.New(t)
	s, m := newTestStore()
	a, _ := s.Add(Fields{Title: "a"})
	b, _ := s.Add(Fields{Title: "b"})

	ok, err := s.Delete(a.ID)
	is.NoErr(err)
	is.True(ok)

	// a fresh store over the same persistor never sees it again
	s2 := NewStore(m)
	loaded := s2.Load()
	is.Equal(len(loaded), 1)
	is.Equal(loaded[0].ID, b.ID)

	ok, err = s.Delete(a.ID)
	is.NoErr(err)
	is.True(!ok)
}

func TestStore_FailedWriteKeepsState(t *testing.T) {
	is := is.New(t)
	s, m := newTestStore()
	a, _ := s.Add(Fields{Title: "a"})

	m.err = errors.New("disk full")
	_, err := s.Add(Fields{Title: "b"})
	is.True(err != nil)
	_, err = s.ToggleComplete(a.ID)
	is.True(err != nil)
	_, err = s.Delete(a.ID)
	is.True(err != nil)

	is.Equal(len(s.Tasks()), 1)
	got, _ := s.Get(a.ID)
	is.True(!got.Completed)
}

func TestStore_Load(t *testing.T) {
	t.Run("keeps storage order", func(t *testing.T) {
		is := is.New(t)
		m := &memory{saved: []Task{
			{ID: 3, Title: "c", Priority: Low},
			{ID: 1, Title: "a", Priority: High},
			{ID: 2, Title: "b", Priority: Medium},
		}}
		loaded := NewStore(m).Load()
		is.Equal([]ID{loaded[0].ID, loaded[1].ID, loaded[2].ID}, []ID{3, 1, 2})
	})

	t.Run("new ids stay above loaded ones", func(t *testing.T) {
		is := is.New(t)
		future := ID(fixedClock().Add(time.Hour).UnixMilli())
		m := &memory{saved: []Task{{ID: future, Title: "from the future"}}}
		s := NewStore(m, WithClock(fixedClock))
		s.Load()
		added, err := s.Add(Fields{Title: "now"})
		is.NoErr(err)
		is.True(added.ID > future)
	})

	t.Run("duplicate ids are renumbered", func(t *testing.T) {
		is := is.New(t)
		m := &memory{saved: []Task{{ID: 5, Title: "a"}, {ID: 5, Title: "b"}}}
		loaded := NewStore(m, WithClock(fixedClock)).Load()
		is.Equal(loaded[0].ID, ID(5))
		is.True(loaded[1].ID != ID(5))
	})

	t.Run("missing ids are assigned", func(t *testing.T) {
		is := is.New(t)
		m := &memory{saved: []Task{{Title: "legacy"}, {ID: -1, Title: "negative"}, {ID: 5, Title: "other"}}}
		s := NewStore(m, WithClock(fixedClock))
		loaded := s.Load()
		is.True(loaded[0].ID > 0)
		is.True(loaded[1].ID > 0)
		is.True(loaded[0].ID != loaded[1].ID)
		is.Equal(loaded[2].ID, ID(5))

		title := "renamed"
		ok, err := s.Update(loaded[0].ID, Patch{Title: &title})
		is.NoErr(err)
		is.True(ok)
		is.Equal(len(s.Tasks()), 3)
		is.Equal(s.Tasks()[0].Title, "renamed")
	})
}

func TestIDGen(t *testing.T) {
	is := is.New(t)
	now := fixedClock()
	g := NewIDGen(func() time.Time { return now })
	first := g.Next()
	is.Equal(first, ID(now.UnixMilli()))
	is.Equal(g.Next(), first+1)

	// the clock going backwards does not reuse ids
	now = now.Add(-time.Hour)
	is.Equal(g.Next(), first+2)
}

func TestStore_Import(t *testing.T) {
	is := is.New(t)
	s, m := newTestStore()
	_, err := s.Add(Fields{Title: "existing"})
	is.NoErr(err)

	created := fixedClock().AddDate(0, 0, -2)
	added, err := s.Import([]Task{
		{ID: 1, Title: "Review JavaScript concepts", Completed: true, CreatedAt: created, Priority: "urgent"},
		{Title: " no date "},
	})
	is.NoErr(err)
	is.Equal(len(added), 2)
	is.Equal(len(m.saved), 3)
	is.True(added[0].ID != 1) // fresh ids
	is.True(added[0].ID != added[1].ID)
	is.True(added[0].Completed)
	is.True(added[0].CreatedAt.Equal(created))
	is.Equal(added[0].Priority, Medium)
	is.Equal(added[1].Title, "no date")
	is.True(added[1].CreatedAt.Equal(fixedClock()))

	_, err = s.Import([]Task{{Title: "fine"}, {Title: "  "}})
	is.True(errors.Is(err, ErrEmptyTitle))
	is.Equal(len(s.Tasks()), 3) // all or nothing
}

func TestStore_Clear(t *testing.T) {
	is := is.New(t)
	s, m := newTestStore()
	_, err := s.Add(Fields{Title: "a"})
	is.NoErr(err)
	is.NoErr(s.Clear())
	is.Equal(len(s.Tasks()), 0)
	is.Equal(len(m.Load()), 0)
}
