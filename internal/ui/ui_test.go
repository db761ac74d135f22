package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/matryer/is"
	"github.com/td0m/tasktracker/pkg/task"
)

func TestTabs(t *testing.T) {
	is := is.New(t)
	tabs := NewTabs()
	tabs.Width = 80
	tabs.SetCounts(task.Counts{All: 3, Completed: 1, Pending: 2})
	is.Equal(tabs.Value(), task.All)

	view := tabs.View()
	is.True(strings.Contains(view, "All Tasks (3)"))
	is.True(strings.Contains(view, "Pending (2)"))
	is.True(strings.Contains(view, "Completed (1)"))

	tabs, _ = tabs.Update(tea.KeyMsg{Type: tea.KeyTab})
	is.Equal(tabs.Value(), task.Pending)
	tabs, _ = tabs.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	tabs, _ = tabs.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	is.Equal(tabs.Value(), task.Completed) // wraps around

	tabs.Set(task.Pending)
	is.Equal(tabs.Value(), task.Pending)
}

func TestItem(t *testing.T) {
	now := time.Date(2024, time.May, 15, 12, 0, 0, 0, time.Local)
	yesterday := now.AddDate(0, 0, -1)
	soon := now.AddDate(0, 0, 3)
	base := task.Task{
		Title:     "Complete React assignment",
		CreatedAt: now.AddDate(0, 0, -1),
		Priority:  task.High,
		Category:  "Work",
	}

	t.Run("badges and dates", func(t *testing.T) {
		is := is.New(t)
		tk := base
		tk.Due = &soon
		tk.Description = "Finish the todo app"
		s := Item(tk, ItemOptions{Now: now})
		is.True(strings.Contains(s, UncheckedIcon))
		is.True(strings.Contains(s, "high"))
		is.True(strings.Contains(s, "Work"))
		is.True(strings.Contains(s, "Finish the todo app"))
		is.True(strings.Contains(s, "Created: May 14, 2024"))
		is.True(strings.Contains(s, "Due: May 18, 2024 12:00 (3 days)"))
	})

	t.Run("overdue", func(t *testing.T) {
		is := is.New(t)
		tk := base
		tk.Due = &yesterday
		is.True(strings.Contains(Item(tk, ItemOptions{Now: now}), "(overdue)"))

		tk.Completed = true
		s := Item(tk, ItemOptions{Now: now})
		is.True(!strings.Contains(s, "(overdue)")) // completed tasks are never overdue
		is.True(strings.Contains(s, CheckedIcon))
	})

	t.Run("armed", func(t *testing.T) {
		is := is.New(t)
		is.True(strings.Contains(Item(base, ItemOptions{Now: now, Armed: true}), "press d again"))
		is.True(!strings.Contains(Item(base, ItemOptions{Now: now}), "press d again"))
	})
}

func TestPriorityColor(t *testing.T) {
	is := is.New(t)
	is.Equal(PriorityColor(task.High), Red)
	is.Equal(PriorityColor(task.Medium), Yellow)
	is.Equal(PriorityColor(task.Low), Green)
	is.Equal(PriorityColor("urgent"), Yellow)
}

func TestDueColor(t *testing.T) {
	is := is.New(t)
	now := time.Date(2024, 5, 15, 10, 0, 0, 0, time.Local)
	is.Equal(DueColor(now.AddDate(0, 0, 1), now), Red)
	is.Equal(DueColor(now.AddDate(0, 0, 7), now), Orange)
	is.Equal(DueColor(now.AddDate(0, 1, 0), now), Secondary) // adapts to the terminal background
}
