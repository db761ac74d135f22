package persist

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/td0m/tasktracker/pkg/task"
)

// isoLayout matches what javascript's Date.toISOString produces, which is
// what older versions of the collection were written with
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

// savable is the json shape of a task in the collection record.
// Optional fields are kept as plain strings so that empty values written
// by older versions decode instead of failing the whole record.
type savable struct {
	ID          task.ID `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Completed   bool    `json:"completed"`
	CreatedAt   string  `json:"createdAt"`
	DueDate     string  `json:"dueDate,omitempty"`
	Priority    string  `json:"priority"`
	Category    string  `json:"category,omitempty"`
}

func newSavable(t task.Task) savable {
	s := savable{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   formatTime(t.CreatedAt),
		Priority:    string(t.Priority.Normalize()),
		Category:    t.Category,
	}
	if t.Due != nil {
		s.DueDate = formatTime(*t.Due)
	}
	return s
}

func formatTime(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// errNoTitle marks a stored task that cannot be kept
var errNoTitle = errors.New("title is empty")

// Load turns a decoded record into a task, filling in defaults.
// Fields that cannot be read are reset and reported in problems. A missing
// creation time becomes now. Without a title the task cannot be kept, and
// the returned problem wraps errNoTitle.
func (s savable) Load(now time.Time) (t task.Task, problems []error) {
	t = task.Task{
		ID:          s.ID,
		Title:       strings.TrimSpace(s.Title),
		Description: s.Description,
		Completed:   s.Completed,
		CreatedAt:   task.Timestamp(now),
		Priority:    task.Priority(s.Priority).Normalize(),
		Category:    strings.TrimSpace(s.Category),
	}
	if t.Title == "" {
		return t, []error{fmt.Errorf("task %d: %w", s.ID, errNoTitle)}
	}
	if s.CreatedAt == "" {
		problems = append(problems, fmt.Errorf("task %d: createdAt is missing", s.ID))
	} else if created, err := time.Parse(time.RFC3339, s.CreatedAt); err != nil {
		problems = append(problems, fmt.Errorf("task %d: createdAt: %w", s.ID, err))
	} else {
		t.CreatedAt = task.Timestamp(created)
	}
	if s.DueDate != "" {
		due, err := time.Parse(time.RFC3339, s.DueDate)
		if err != nil {
			problems = append(problems, fmt.Errorf("task %d: dueDate: %w", s.ID, err))
		} else {
			due = task.Timestamp(due)
			t.Due = &due
		}
	}
	return t, problems
}
