package kv

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestStores(t *testing.T) {
	stores := map[string]func(t *testing.T) Store{
		"memory": func(t *testing.T) Store {
			return InMemory()
		},
		"file": func(t *testing.T) Store {
			s, err := InFile(filepath.Join(t.TempDir(), "nested", "store.json"))
			is.New(t).NoErr(err)
			return s
		},
		"sqlite": func(t *testing.T) Store {
			s, err := InSQLite(filepath.Join(t.TempDir(), "store.db"))
			is.New(t).NoErr(err)
			return s
		},
		"redis": func(t *testing.T) Store {
			addr := os.Getenv("TASKTRACKER_TEST_REDIS")
			if addr == "" {
				t.Skip("TASKTRACKER_TEST_REDIS not set")
			}
			s, err := InRedis(RedisOptions{Addr: addr, Prefix: "tasktracker-test:" + t.Name() + ":"})
			is.New(t).NoErr(err)
			return s
		},
	}
	for name, open := range stores {
		t.Run(name, func(t *testing.T) {
			s := open(t)
			defer s.Close()

			t.Run("missing key", func(t *testing.T) {
				is := is.New(t)
				_, err := s.Get("missing")
				is.True(errors.Is(err, ErrNotFound))
			})
			t.Run("set then get", func(t *testing.T) {
				is := is.New(t)
				is.NoErr(s.Set("user", "ada"))
				v, err := s.Get("user")
				is.NoErr(err)
				is.Equal(v, "ada")
			})
			t.Run("set overwrites", func(t *testing.T) {
				is := is.New(t)
				is.NoErr(s.Set("user", "grace"))
				v, err := s.Get("user")
				is.NoErr(err)
				is.Equal(v, "grace")
			})
			t.Run("keys are independent", func(t *testing.T) {
				is := is.New(t)
				is.NoErr(s.Set("tasks", `[{"id":1}]`))
				v, err := s.Get("user")
				is.NoErr(err)
				is.Equal(v, "grace")
			})
			t.Run("remove", func(t *testing.T) {
				is := is.New(t)
				is.NoErr(s.Remove("user"))
				_, err := s.Get("user")
				is.True(errors.Is(err, ErrNotFound))
				// removing twice is fine
				is.NoErr(s.Remove("user"))
			})
		})
	}
}

func TestFile_Persists(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "store.json")

	a, err := InFile(path)
	is.NoErr(err)
	is.NoErr(a.Set("tasks", "[]"))

	b, err := InFile(path)
	is.NoErr(err)
	v, err := b.Get("tasks")
	is.NoErr(err)
	is.Equal(v, "[]")
}

func TestFile_Corrupt(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "store.json")
	is.NoErr(os.WriteFile(path, []byte("{not json"), 0600))

	s, err := InFile(path)
	is.NoErr(err)

	_, err = s.Get("tasks")
	is.True(errors.Is(err, ErrCorrupt))

	// writing moves the broken file aside and starts over
	is.NoErr(s.Set("user", "ada"))
	v, err := s.Get("user")
	is.NoErr(err)
	is.Equal(v, "ada")
	bs, err := os.ReadFile(path + ".corrupt")
	is.NoErr(err)
	is.Equal(string(bs), "{not json")
}

func TestSQLite_Persists(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "store.db")

	a, err := InSQLite(path)
	is.NoErr(err)
	is.NoErr(a.Set("user", "ada"))
	is.NoErr(a.Close())

	b, err := InSQLite(path)
	is.NoErr(err)
	defer b.Close()
	v, err := b.Get("user")
	is.NoErr(err)
	is.Equal(v, "ada")
}

func TestOpen(t *testing.T) {
	t.Run("defaults to file", func(t *testing.T) {
		is := is.New(t)
		s, err := Open(Options{Path: filepath.Join(t.TempDir(), "store.json")})
		is.NoErr(err)
		_, ok := s.(*File)
		is.True(ok)
	})
	t.Run("memory", func(t *testing.T) {
		is := is.New(t)
		s, err := Open(Options{Backend: BackendMemory})
		is.NoErr(err)
		_, ok := s.(*Memory)
		is.True(ok)
	})
	t.Run("unknown backend", func(t *testing.T) {
		is := is.New(t)
		_, err := Open(Options{Backend: "etcd"})
		is.True(errors.Is(err, ErrUnknownBackend))
	})
}
