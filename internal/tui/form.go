package tui

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/td0m/tasktracker/internal/ui"
	"github.com/td0m/tasktracker/pkg/dateinput"
	"github.com/td0m/tasktracker/pkg/task"
)

type field int

const (
	fieldTitle field = iota
	fieldDescription
	fieldDue
	fieldPriority
	fieldCategory
	fieldCount
)

var fieldLabels = [fieldCount]string{"Title", "Description", "Due", "Priority", "Category"}

var (
	formLabel       = lipgloss.NewStyle().Foreground(ui.Secondary).Width(13)
	formActiveLabel = formLabel.Copy().Foreground(ui.Primary).Bold(true)
	formHeading     = lipgloss.NewStyle().Bold(true).Padding(0, 1, 1, 1)
	formBody        = lipgloss.NewStyle().Padding(0, 1)
)

// form adds a task, or edits the one with id when edit is set
type form struct {
	id       task.ID
	edit     bool
	title    textinput.Model
	desc     textarea.Model
	due      dateinput.Model
	priority task.Priority
	category textinput.Model
	focus    field
	err      error
}

func newForm(t *task.Task, now func() time.Time) (form, tea.Cmd) {
	f := form{
		title:    textinput.New(),
		desc:     textarea.New(),
		due:      dateinput.NewModel(),
		category: textinput.New(),
		priority: task.Medium,
	}
	f.title.Prompt = ""
	f.title.Placeholder = "What needs to be done?"
	f.title.CharLimit = 200
	f.title.Width = 50

	f.desc.Placeholder = "Add details (optional)"
	f.desc.ShowLineNumbers = false
	f.desc.SetWidth(50)
	f.desc.SetHeight(3)

	f.due.SetClock(now)

	f.category.Prompt = ""
	f.category.Placeholder = "e.g. Work, Personal"
	f.category.CharLimit = 50
	f.category.Width = 30

	if t != nil {
		f.id = t.ID
		f.edit = true
		f.title.SetValue(t.Title)
		f.title.CursorEnd()
		f.desc.SetValue(t.Description)
		f.due.SetValue(t.Due)
		f.priority = t.Priority.Normalize()
		f.category.SetValue(t.Category)
		f.category.CursorEnd()
	}
	cmd := f.setFocus(fieldTitle)
	return f, cmd
}

func (f form) editing() bool {
	return f.edit
}

func (f *form) setFocus(i field) tea.Cmd {
	f.focus = (i + fieldCount) % fieldCount
	f.title.Blur()
	f.desc.Blur()
	f.due.Blur()
	f.category.Blur()
	switch f.focus {
	case fieldTitle:
		return f.title.Focus()
	case fieldDescription:
		return f.desc.Focus()
	case fieldDue:
		return f.due.Focus()
	case fieldCategory:
		return f.category.Focus()
	}
	return nil
}

// Update handles moving between fields and typing into the focused one.
// Submitting and cancelling are up to the caller.
func (f form) Update(msg tea.Msg) (form, tea.Cmd) {
	var cmd tea.Cmd
	if msg, ok := msg.(tea.KeyMsg); ok {
		move := 0
		switch msg.String() {
		case "tab":
			move = 1
		case "shift+tab":
			move = -1
		case "down":
			// the description is multi-line, arrows move within it
			if f.focus != fieldDescription {
				move = 1
			}
		case "up":
			if f.focus != fieldDescription {
				move = -1
			}
		}
		if move != 0 {
			cmd = f.setFocus(f.focus + field(move))
			return f, cmd
		}
		if f.focus == fieldPriority {
			switch msg.String() {
			case " ", "right", "l":
				f.priority = f.priority.Next()
			case "left", "h":
				f.priority = f.priority.Next().Next()
			case "1", "2", "3":
				f.priority = task.Priorities[msg.String()[0]-'1']
			}
			return f, nil
		}
	}
	switch f.focus {
	case fieldTitle:
		f.title, cmd = f.title.Update(msg)
		if strings.TrimSpace(f.title.Value()) != "" && errors.Is(f.err, task.ErrEmptyTitle) {
			f.err = nil
		}
	case fieldDescription:
		f.desc, cmd = f.desc.Update(msg)
	case fieldDue:
		f.due, cmd = f.due.Update(msg)
	case fieldCategory:
		f.category, cmd = f.category.Update(msg)
	}
	return f, cmd
}

// fields is what was typed, or why it cannot be saved
func (f form) fields() (task.Fields, error) {
	due, err := f.due.Value()
	if err != nil {
		return task.Fields{}, err
	}
	if strings.TrimSpace(f.title.Value()) == "" {
		return task.Fields{}, task.ErrEmptyTitle
	}
	return task.Fields{
		Title:       f.title.Value(),
		Description: f.desc.Value(),
		Due:         due,
		Priority:    f.priority,
		Category:    f.category.Value(),
	}, nil
}

func (f form) View() string {
	heading := "New task"
	if f.editing() {
		heading = "Edit task"
	}
	rows := make([]string, fieldCount)
	for i := field(0); i < fieldCount; i++ {
		label := formLabel
		if i == f.focus {
			label = formActiveLabel
		}
		var input string
		switch i {
		case fieldTitle:
			input = f.title.View()
		case fieldDescription:
			input = f.desc.View()
		case fieldDue:
			input = f.due.View()
		case fieldPriority:
			input = f.priorities()
		case fieldCategory:
			input = f.category.View()
		}
		rows[i] = lipgloss.JoinHorizontal(lipgloss.Top, label.Render(fieldLabels[i]), input)
	}
	s := formHeading.Render(heading) + "\n" + formBody.Render(strings.Join(rows, "\n"))
	if f.err != nil {
		s += "\n\n" + formBody.Render(ui.Error.Render(capitalize(f.err.Error())))
	}
	return s
}

func (f form) priorities() string {
	out := make([]string, len(task.Priorities))
	for i, p := range task.Priorities {
		if p == f.priority {
			out[i] = ui.Badge.Copy().Background(ui.PriorityColor(p)).Render(string(p))
		} else {
			out[i] = lipgloss.NewStyle().Padding(0, 1).Foreground(ui.Faded).Render(string(p))
		}
	}
	return strings.Join(out, " ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
