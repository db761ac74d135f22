package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
)

func TestNew_File(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "logs", "tasktracker.log")

	log, err := New(Config{File: path, Level: "info"})
	is.NoErr(err)
	log.Debug("hidden")
	log.Info("visible")
	Sync(log)

	bs, err := os.ReadFile(path)
	is.NoErr(err)
	is.True(strings.Contains(string(bs), "visible"))
	is.True(!strings.Contains(string(bs), "hidden")) // below level
}

func TestNew_BadLevel(t *testing.T) {
	is := is.New(t)
	_, err := New(Config{Level: "loud"})
	is.True(err != nil)
}
