package task

import (
	"fmt"
	"slices"
	"strings"
)

type Status string

const (
	All       Status = "all"
	Pending   Status = "pending"
	Completed Status = "completed"
)

// Statuses is the order in which the filter bar shows them
var Statuses = []Status{All, Pending, Completed}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	switch st {
	case All, Pending, Completed:
		return st, nil
	case "":
		return All, nil
	case "done":
		return Completed, nil
	}
	return "", fmt.Errorf("unknown filter %q, expected all, pending or completed", s)
}

func (st Status) Match(t Task) bool {
	switch st {
	case Completed:
		return t.Completed
	case Pending:
		return !t.Completed
	}
	return true
}

// Filter returns the tasks with the given status, keeping their order.
// The returned slice never aliases ts.
func Filter(ts []Task, st Status) []Task {
	out := []Task{}
	for _, t := range ts {
		if st.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Matches reports whether query is a case insensitive substring of the
// title, description or category. Every task matches an empty query.
func (t Task) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(t.Title), q) ||
		strings.Contains(strings.ToLower(t.Description), q) ||
		(t.Category != "" && strings.Contains(strings.ToLower(t.Category), q))
}

func Search(ts []Task, query string) []Task {
	out := []Task{}
	for _, t := range ts {
		if t.Matches(query) {
			out = append(out, t)
		}
	}
	return out
}

// Sort orders tasks by priority (high first), then by due date (earliest
// first). A task with a due date comes before one without, however far
// away the date is. Ties keep their relative order.
func Sort(ts []Task) {
	slices.SortStableFunc(ts, compare)
}

func compare(a, b Task) int {
	if d := b.Priority.Rank() - a.Priority.Rank(); d != 0 {
		return d
	}
	switch {
	case a.Due != nil && b.Due != nil:
		return a.Due.Compare(*b.Due)
	case a.Due != nil:
		return -1
	case b.Due != nil:
		return 1
	}
	return 0
}

type Counts struct {
	All       int
	Completed int
	Pending   int
}

func (c Counts) Of(st Status) int {
	switch st {
	case Completed:
		return c.Completed
	case Pending:
		return c.Pending
	}
	return c.All
}

func Count(ts []Task) Counts {
	c := Counts{All: len(ts)}
	for _, t := range ts {
		if t.Completed {
			c.Completed++
		} else {
			c.Pending++
		}
	}
	return c
}
