package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/td0m/tasktracker/internal/ui"
	"github.com/td0m/tasktracker/pkg/task"
)

var (
	greeting = lipgloss.NewStyle().Bold(true).Foreground(ui.Primary).Padding(1, 1, 0, 1)
	subtitle = lipgloss.NewStyle().Foreground(ui.Secondary).Padding(0, 1)
	padded   = lipgloss.NewStyle().Padding(0, 1)
	status   = lipgloss.NewStyle().Foreground(ui.Blue).Padding(0, 1)
	box      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(ui.Faded).Padding(1, 2)
)

const listHelp = "a add • e edit • space toggle • p priority • d delete • / search • tab filter • L logout • q quit"

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (m *Model) View() string {
	switch m.mode {
	case modeLogin:
		return m.viewLogin()
	case modeForm:
		return m.form.View() + "\n\n" + padded.Render(ui.Help.Render("tab next field • enter save • ctrl+s save • esc cancel"))
	}
	return m.header() + m.viewport.View() + "\n" + m.footer()
}

func (m *Model) viewLogin() string {
	s := lipgloss.NewStyle().Bold(true).Render("Task Tracker") + "\n" +
		ui.Help.Render("Sign in to manage your tasks") + "\n\n" +
		"Username " + m.login.View()
	if m.loginErr != nil {
		s += "\n" + ui.Error.Render(capitalize(m.loginErr.Error()))
	}
	s += "\n\n" + ui.Help.Render("enter sign in • ctrl+c quit")
	return box.Render(s)
}

func (m *Model) header() string {
	user, _ := m.app.Session.Current()
	return greeting.Render("Welcome back, "+user+"!") + "\n" +
		subtitle.Render("Let's get things done today.") + "\n\n" +
		padded.Render(m.search.View()) + "\n" +
		m.tabs.View()
}

func (m *Model) footer() string {
	help := listHelp
	switch {
	case m.mode == modeSearch:
		help = "enter done • esc clear search"
	case m.app.Tasks.Counts().All == 0:
		help = "a add • s add sample tasks • L logout • q quit"
	}
	return status.Render(m.status) + "\n" + padded.Render(ui.Help.Render(help))
}

// emptyMessage explains an empty list: nothing matched the search, or
// there is nothing with the selected status
func (m *Model) emptyMessage() string {
	return EmptyMessage(m.tabs.Value(), m.search.Value())
}

// EmptyMessage is what an empty task list says instead
func EmptyMessage(st task.Status, query string) string {
	if query != "" {
		return `No tasks found matching "` + query + `"`
	}
	switch st {
	case task.Completed:
		return "No completed tasks yet."
	case task.Pending:
		return "No pending tasks. Great job!"
	}
	return "No tasks yet. Add one to get started!"
}
