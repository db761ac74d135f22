package kv

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// File keeps every key in a single json object on disk.
// The file is re-read on each call, so edits made by another run of the
// program are picked up the next time a key is read.
type File struct {
	file string
}

var _ Store = &File{}

// InFile creates a file backed store, creating the parent directory if needed.
// The file itself is only created by the first write.
func InFile(file string) (*File, error) {
	if file == "" {
		return nil, errors.New("file store needs a path")
	}
	if err := os.MkdirAll(filepath.Dir(file), 0700); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return &File{file: file}, nil
}

func (f *File) Path() string {
	return f.file
}

func (f *File) Get(key string) (string, error) {
	values, err := f.fetch()
	if err != nil {
		return "", err
	}
	v, ok := values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (f *File) Set(key, value string) error {
	values, err := f.fetchForWrite()
	if err != nil {
		return err
	}
	values[key] = value
	return f.sync(values)
}

func (f *File) Remove(key string) error {
	values, err := f.fetchForWrite()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return f.sync(values)
}

func (f *File) Close() error {
	return nil
}

func (f *File) fetch() (map[string]string, error) {
	bs, err := os.ReadFile(f.file)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	values := map[string]string{}
	if len(bs) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(bs, &values); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, f.file, err)
	}
	return values, nil
}

// fetchForWrite behaves like fetch, except that a corrupt file is moved
// aside to <file>.corrupt and writing starts over from an empty object.
func (f *File) fetchForWrite() (map[string]string, error) {
	values, err := f.fetch()
	if errors.Is(err, ErrCorrupt) {
		if err := os.Rename(f.file, f.file+".corrupt"); err != nil {
			return nil, err
		}
		return map[string]string{}, nil
	}
	return values, err
}

// sync writes to a temporary file first so that a crash never leaves a
// half written store behind
func (f *File) sync(values map[string]string) error {
	tmp, err := os.CreateTemp(filepath.Dir(f.file), filepath.Base(f.file)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(values); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.file)
}
