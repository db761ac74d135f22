package task

import (
	"errors"
	"strings"
	"time"
)

var ErrEmptyTitle = errors.New("task title is required")

// ID identifies a task within a store. IDs are millisecond timestamps
// taken at creation, bumped when needed so that no two tasks share one.
type ID int64

type Priority string

const (
	Low    Priority = "low"
	Medium Priority = "medium"
	High   Priority = "high"
)

// Priorities lists every priority from lowest to highest
var Priorities = []Priority{Low, Medium, High}

// Rank orders priorities, higher is more important.
// Unknown priorities rank like Medium.
func (p Priority) Rank() int {
	switch p {
	case High:
		return 3
	case Low:
		return 1
	}
	return 2
}

func (p Priority) Valid() bool {
	return p == Low || p == Medium || p == High
}

// Normalize returns Medium for anything that is not a known priority
func (p Priority) Normalize() Priority {
	if !p.Valid() {
		return Medium
	}
	return p
}

// ParsePriority accepts a priority name (case insensitive) or its first letter
func ParsePriority(s string) (Priority, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range Priorities {
		if s == string(p) || (len(s) == 1 && s[0] == p[0]) {
			return p, nil
		}
	}
	return "", errors.New("priority must be low, medium or high")
}

// Next cycles low -> medium -> high -> low
func (p Priority) Next() Priority {
	switch p.Normalize() {
	case Low:
		return Medium
	case Medium:
		return High
	}
	return Low
}

type Task struct {
	ID          ID
	Title       string
	Description string
	Completed   bool
	// constant after creation
	CreatedAt time.Time
	Due       *time.Time
	Priority  Priority
	// empty when not set
	Category string
}

// Timestamp normalises t to what survives persistence: UTC, millisecond
// precision
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// Overdue reports whether a pending task is past its due date
func (t Task) Overdue(now time.Time) bool {
	return !t.Completed && t.Due != nil && t.Due.Before(now)
}

// Fields holds what a user supplies when creating a task
type Fields struct {
	Title       string
	Description string
	Due         *time.Time
	Priority    Priority
	Category    string
}

// Patch holds the fields to replace on an existing task; nil fields are kept.
type Patch struct {
	Title       *string
	Description *string
	Completed   *bool
	Due         *time.Time
	// ClearDue removes the due date, it wins over Due
	ClearDue bool
	Priority *Priority
	// an empty category clears it
	Category *string
}

// PatchFromFields builds a patch replacing every editable field, which is
// what submitting the edit form does.
func PatchFromFields(f Fields) Patch {
	return Patch{
		Title:       &f.Title,
		Description: &f.Description,
		Due:         f.Due,
		ClearDue:    f.Due == nil,
		Priority:    &f.Priority,
		Category:    &f.Category,
	}
}

func (p Patch) apply(t Task) (Task, error) {
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return t, ErrEmptyTitle
		}
		t.Title = title
	}
	if p.Description != nil {
		t.Description = strings.TrimSpace(*p.Description)
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.Due != nil {
		due := Timestamp(*p.Due)
		t.Due = &due
	}
	if p.ClearDue {
		t.Due = nil
	}
	if p.Priority != nil {
		t.Priority = p.Priority.Normalize()
	}
	if p.Category != nil {
		t.Category = strings.TrimSpace(*p.Category)
	}
	return t, nil
}
