package persist

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/td0m/tasktracker/pkg/kv"
	"github.com/td0m/tasktracker/pkg/task"
)

func collect(diags *[]Diagnostic) Option {
	return WithDiagnostics(func(d Diagnostic) {
		*diags = append(*diags, d)
	})
}

func TestLocal_SaveLoad(t *testing.T) {
	is := is.New(t)

	store, err := kv.InFile(filepath.Join(t.TempDir(), "store.json"))
	is.NoErr(err)
	var diags []Diagnostic
	l := In(store, collect(&diags))

	created := time.Date(2024, 5, 1, 9, 30, 0, 123e6, time.UTC)
	due := created.Add(72 * time.Hour)
	tasks := []task.Task{
		{ID: 2, Title: "report", Description: "q2", CreatedAt: created, Due: &due, Priority: task.High, Category: "Work"},
		{ID: 1, Title: "gym", Completed: true, CreatedAt: created, Priority: task.Low},
		{ID: 3, Title: "no priority", CreatedAt: created},
	}
	is.NoErr(l.Save(tasks))

	loaded := In(store).Load()
	is.Equal(len(loaded), 3)
	is.Equal(loaded[0], tasks[0])
	is.Equal(loaded[1], tasks[1])
	// a missing priority comes back as medium
	want := tasks[2]
	want.Priority = task.Medium
	is.Equal(loaded[2], want)
	is.Equal(len(diags), 0)
}

func TestLocal_Load(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantTasks int
		wantDiags int
	}{
		{"empty record", "", 0, 0},
		{"null", "null", 0, 0},
		{"malformed json", `[{"id": 1, "title": "a"`, 0, 1},
		{"not an array", `{"id": 1}`, 0, 1},
		{"bad due date is dropped", `[{"id":1,"title":"a","createdAt":"2024-05-01T09:30:00.000Z","dueDate":"soon"}]`, 1, 1},
		{"blank title is dropped", `[{"id":1,"title":"  ","createdAt":"2024-05-01T09:30:00.000Z"},{"id":2,"title":"b","createdAt":"2024-05-01T09:30:00.000Z"}]`, 1, 1},
		{"missing createdAt", `[{"id":1,"title":"a"}]`, 1, 1},
		{"empty optional fields", `[{"id":1,"title":"a","createdAt":"2024-05-01T09:30:00.000Z","dueDate":"","category":"","priority":""}]`, 1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			store := kv.InMemory()
			is.NoErr(store.Set(TasksKey, tt.raw))
			var diags []Diagnostic
			loaded := In(store, collect(&diags)).Load()
			is.Equal(len(loaded), tt.wantTasks)
			is.Equal(len(diags), tt.wantDiags)
			for _, d := range diags {
				is.Equal(d.Key, TasksKey)
			}
		})
	}
}

func TestLocal_LoadNormalises(t *testing.T) {
	is := is.New(t)
	store := kv.InMemory()
	// written by the browser version of the tracker
	is.NoErr(store.Set(TasksKey, `[
		{"id":1714555800000,"title":"Complete assignment","description":"",
		 "completed":false,"createdAt":"2024-05-01T09:30:00.000Z",
		 "priority":"urgent","dueDate":"2024-05-04T09:30:00.000Z","category":"Work"},
		{"id":1714555800001,"title":"Review","description":"es6",
		 "completed":true,"createdAt":"2024-04-30T09:30:00.000Z"}
	]`))
	loaded := In(store).Load()
	is.Equal(len(loaded), 2)
	is.Equal(loaded[0].ID, task.ID(1714555800000))
	is.Equal(loaded[0].Priority, task.Medium)
	is.Equal(loaded[0].Due.Format(time.RFC3339), "2024-05-04T09:30:00Z")
	is.Equal(loaded[0].Category, "Work")
	is.Equal(loaded[1].Priority, task.Medium)
	is.True(loaded[1].Due == nil)
	is.Equal(loaded[1].Category, "")
	is.True(loaded[1].Completed)
}

func TestLocal_LoadDefaultsCreatedAt(t *testing.T) {
	is := is.New(t)
	now := time.Date(2024, 5, 15, 10, 30, 0, 0, time.UTC)
	store := kv.InMemory()
	is.NoErr(store.Set(TasksKey, `[{"id":1,"title":"a"},{"id":2,"title":""}]`))
	var diags []Diagnostic
	l := In(store, collect(&diags), WithClock(func() time.Time { return now }))

	loaded := l.Load()
	is.Equal(len(loaded), 1)
	is.Equal(loaded[0].CreatedAt, now)
	is.Equal(len(diags), 2)
	is.True(errors.Is(diags[1].Err, errNoTitle))

	// the repaired collection is what gets written back
	is.NoErr(l.Save(loaded))
	raw, err := store.Get(TasksKey)
	is.NoErr(err)
	is.True(strings.Contains(raw, `"createdAt":"2024-05-15T10:30:00.000Z"`))
	is.True(!strings.Contains(raw, `"title":""`))
}

func TestLocal_Missing(t *testing.T) {
	is := is.New(t)
	var diags []Diagnostic
	l := In(kv.InMemory(), collect(&diags))
	is.Equal(len(l.Load()), 0)
	_, ok := l.User()
	is.True(!ok)
	is.Equal(len(diags), 0) // nothing stored is not a problem
}

// broken fails every read, like a file that cannot be parsed
type broken struct{ kv.Store }

func (broken) Get(string) (string, error) { return "", kv.ErrCorrupt }

func TestLocal_BrokenStore(t *testing.T) {
	is := is.New(t)
	var diags []Diagnostic
	l := In(broken{kv.InMemory()}, collect(&diags))
	is.Equal(len(l.Load()), 0)
	_, ok := l.User()
	is.True(!ok)
	is.Equal(len(diags), 2)
	is.True(errors.Is(diags[0].Err, kv.ErrCorrupt))
	is.Equal(diags[1].Key, UserKey)
}

func TestLocal_User(t *testing.T) {
	is := is.New(t)
	store := kv.InMemory()
	l := In(store)

	is.NoErr(l.SetUser("ada"))
	name, ok := l.User()
	is.True(ok)
	is.Equal(name, "ada")
	raw, err := store.Get(UserKey)
	is.NoErr(err)
	is.Equal(raw, "ada") // stored raw, not json encoded

	is.NoErr(l.ClearUser())
	_, ok = l.User()
	is.True(!ok)
}

func TestLocal_Clear(t *testing.T) {
	is := is.New(t)
	l := In(kv.InMemory())
	is.NoErr(l.Save([]task.Task{{ID: 1, Title: "a"}}))
	is.Equal(len(l.Load()), 1)
	is.NoErr(l.Clear())
	is.Equal(len(l.Load()), 0)
}
