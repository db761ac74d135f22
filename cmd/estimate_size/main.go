// estimate_size writes a large synthetic task list through a store backend
// and reports how big the tasks record gets and how long it takes to write
// and read back.
package main

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/td0m/tasktracker/pkg/kv"
	"github.com/td0m/tasktracker/pkg/persist"
	"github.com/td0m/tasktracker/pkg/task"
)

func main() {
	var (
		opts    kv.Options
		backend string
		years   int
		perDay  int
	)
	cmd := &cobra.Command{
		Use:          "estimate_size",
		Short:        "Measure how a backend copes with years of tasks",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Backend = kv.Backend(backend)
			if opts.Path == "" {
				opts.Path = filepath.Join(os.TempDir(), "tasktracker-estimate."+backend)
			}
			return estimate(opts, years, perDay)
		},
	}
	cmd.Flags().StringVar(&backend, "backend", string(kv.BackendFile), "file, sqlite, redis or memory")
	cmd.Flags().StringVar(&opts.Path, "path", "", "store file, a temp file by default")
	cmd.Flags().StringVar(&opts.Redis.Addr, "redis", "localhost:6379", "redis address")
	cmd.Flags().IntVar(&years, "years", 10, "years of tasks")
	cmd.Flags().IntVar(&perDay, "per-day", 30, "tasks created per day")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func estimate(opts kv.Options, years, perDay int) error {
	store, err := kv.Open(opts)
	if err != nil {
		return err
	}
	defer store.Close()
	p := persist.In(store)

	total := 365 * perDay * years
	tasks := synthetic(total, time.Now())

	var writeErr error
	writeTime := measureTime(func() {
		writeErr = p.Save(tasks)
	})
	if writeErr != nil {
		return writeErr
	}

	var loaded []task.Task
	readTime := measureTime(func() {
		loaded = p.Load()
	})
	if len(loaded) != total {
		return fmt.Errorf("read back %d tasks, wrote %d", len(loaded), total)
	}

	raw, err := store.Get(persist.TasksKey)
	if err != nil {
		return err
	}
	if err := store.Remove(persist.TasksKey); err != nil {
		return err
	}

	fmt.Printf("Backend: %s\n", opts.Backend)
	fmt.Printf("Tasks: %d years, %d per day (%d total)\n", years, perDay, total)
	fmt.Printf("Record size: %dMB\n", len(raw)/1024/1024)
	fmt.Printf("Write time: %dms\n", writeTime.Milliseconds())
	fmt.Printf("Read time: %dms\n", readTime.Milliseconds())
	return nil
}

// synthetic creates n tasks spread over the days before now, about half of
// them completed and a third with a due date
func synthetic(n int, now time.Time) []task.Task {
	ids := task.NewIDGen(func() time.Time { return now })
	categories := []string{"", "Work", "Personal", "Learning", "Chores"}
	tasks := make([]task.Task, n)
	for i := range tasks {
		created := now.Add(-time.Duration(rand.IntN(365*24)) * time.Hour)
		t := task.Task{
			ID:          ids.Next(),
			Title:       randomString(20),
			Description: randomString(60),
			Completed:   rand.IntN(2) == 0,
			CreatedAt:   task.Timestamp(created),
			Priority:    task.Priorities[rand.IntN(len(task.Priorities))],
			Category:    categories[rand.IntN(len(categories))],
		}
		if i%3 == 0 {
			due := task.Timestamp(created.AddDate(0, 0, 7))
			t.Due = &due
		}
		tasks[i] = t
	}
	return tasks
}

func measureTime(fn func()) time.Duration {
	start := time.Now()
	fn()
	return time.Since(start)
}

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "

func randomString(l int) string {
	b := make([]byte, l)
	for i := range b {
		b[i] = letters[rand.IntN(len(letters))]
	}
	return string(b)
}
