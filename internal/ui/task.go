package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/td0m/tasktracker/pkg/dateinput"
	"github.com/td0m/tasktracker/pkg/task"
)

var (
	TaskIcon     = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	TaskTitle    = lipgloss.NewStyle().Bold(true)
	SubTaskTitle = lipgloss.NewStyle().Foreground(Secondary)
	TaskDone     = lipgloss.NewStyle().Strikethrough(true).Foreground(Faded)
	Selected     = lipgloss.NewStyle().Background(Faded)

	TaskDivider = lipgloss.NewStyle().Foreground(Faded).Padding(0, 1).Render("∙")
	Badge       = lipgloss.NewStyle().Padding(0, 1).Foreground(Background)
	Overdue     = lipgloss.NewStyle().Foreground(Red).Bold(true)
	Armed       = lipgloss.NewStyle().Foreground(Red).Bold(true)
	Error       = lipgloss.NewStyle().Foreground(Red)
	Help        = lipgloss.NewStyle().Foreground(Faded)
)

const (
	CheckedIcon   = "☑"
	UncheckedIcon = "☐"
)

const dateLayout = "Jan 2, 2006"

// ItemOptions is the state around a task that changes how it renders
type ItemOptions struct {
	Selected bool
	// Armed means the next delete press removes the task
	Armed bool
	Now   time.Time
}

// Item renders one task of the list: a checkbox, the title and badges on the
// first line, description and dates below.
func Item(t task.Task, o ItemOptions) string {
	icon := UncheckedIcon
	title := TaskTitle
	if t.Completed {
		icon = CheckedIcon
		title = TaskDone
	}
	if o.Selected {
		title = title.Copy().Inherit(Selected)
	}

	line := TaskIcon.Render(icon) + title.Render(t.Title)
	line += " " + Badge.Copy().Background(PriorityColor(t.Priority)).Render(string(t.Priority.Normalize()))
	if t.Category != "" {
		line += " " + Badge.Copy().Background(Purple).Render(t.Category)
	}
	if o.Armed {
		line += TaskDivider + Armed.Render("press d again to delete")
	}

	indent := strings.Repeat(" ", lipgloss.Width(TaskIcon.Render(icon)))
	lines := []string{line}
	if t.Description != "" {
		lines = append(lines, indent+SubTaskTitle.Render(t.Description))
	}
	lines = append(lines, indent+dates(t, o.Now))
	return strings.Join(lines, "\n")
}

func dates(t task.Task, now time.Time) string {
	s := SubTaskTitle.Render("Created: " + t.CreatedAt.Local().Format(dateLayout))
	if t.Due == nil {
		return s
	}
	due := "Due: " + t.Due.Local().Format(dateLayout)
	if h, m, _ := t.Due.Local().Clock(); h != 0 || m != 0 {
		due += t.Due.Local().Format(" 15:04")
	}
	s += TaskDivider
	if t.Overdue(now) {
		return s + Overdue.Render(due+" (overdue)")
	}
	return s + lipgloss.NewStyle().Foreground(DueColor(*t.Due, now)).Render(due+" ("+dateinput.Format(*t.Due, now)+")")
}

// DueColor gets more urgent as the date approaches
func DueColor(due, now time.Time) lipgloss.TerminalColor {
	diff := dateinput.StartOfDay(due.In(now.Location())).Sub(dateinput.StartOfDay(now))
	switch days := int(diff.Hours()) / 24; {
	case days <= 2:
		return Red
	case days <= 14:
		return Orange
	default:
		return Secondary
	}
}
