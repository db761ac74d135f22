package app

import (
	"time"

	"github.com/td0m/tasktracker/pkg/task"
	"go.uber.org/zap"
)

// SampleTasks is what a first run starts with, relative to now
func SampleTasks(now time.Time) []task.Task {
	due := now.AddDate(0, 0, 3)
	return []task.Task{
		{
			Title:       "Complete React assignment",
			Description: "Build a task tracker application with all required features",
			CreatedAt:   now.AddDate(0, 0, -1),
			Due:         &due,
			Priority:    task.High,
			Category:    "Work",
		},
		{
			Title:       "Review JavaScript concepts",
			Description: "Go through closures, promises, and async/await",
			Completed:   true,
			CreatedAt:   now.AddDate(0, 0, -2),
			Priority:    task.Medium,
			Category:    "Learning",
		},
	}
}

// Seed adds the sample tasks when there are no tasks yet, and returns how
// many were added.
func (a *App) Seed() (int, error) {
	if a.Tasks.Counts().All > 0 {
		return 0, nil
	}
	added, err := a.Tasks.Import(SampleTasks(a.now()))
	if err != nil {
		return 0, err
	}
	a.Log.Info("sample tasks added", zap.Int("count", len(added)))
	return len(added), nil
}
