package ui

import (
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/td0m/tasktracker/pkg/task"
)

var (
	tabContainer = lipgloss.NewStyle().Padding(0, 1)
	activeTab    = lipgloss.NewStyle().Foreground(Primary).Bold(true).Underline(true)
	inactiveTab  = lipgloss.NewStyle().Foreground(Secondary)
	tabCount     = lipgloss.NewStyle().Foreground(Faded)
	tabDivider   = lipgloss.NewStyle().Foreground(Faded)
)

var statusLabels = map[task.Status]string{
	task.All:       "All Tasks",
	task.Pending:   "Pending",
	task.Completed: "Completed",
}

// Tabs is the filter bar: one tab per status, each with the number of
// tasks it would show.
type Tabs struct {
	i      int
	counts task.Counts

	Width int
	Info  string
}

func NewTabs() Tabs {
	return Tabs{}
}

func (m Tabs) Init() tea.Cmd {
	return nil
}

// Update moves between tabs with tab and shift+tab
func (m Tabs) Update(msg tea.Msg) (Tabs, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		n := len(task.Statuses)
		switch msg.String() {
		case "tab":
			m.i = (m.i + 1) % n
		case "shift+tab":
			m.i = (m.i + n - 1) % n
		}
	}
	return m, nil
}

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (m Tabs) View() string {
	tabs := make([]string, len(task.Statuses))
	for i, st := range task.Statuses {
		r := inactiveTab
		if i == m.i {
			r = activeTab
		}
		tabs[i] = r.Render(statusLabels[st]) + tabCount.Render(" ("+strconv.Itoa(m.counts.Of(st))+")")
	}
	w := lipgloss.Width
	left := strings.Join(tabs, tabDivider.Render(" | "))
	right := m.Info
	space := lipgloss.NewStyle().Width(max(m.Width-2-w(left)-w(right), 1)).Render("")
	return tabContainer.Render(lipgloss.JoinHorizontal(lipgloss.Center, left, space, right)) + "\n"
}

func (m Tabs) Value() task.Status {
	return task.Statuses[m.i]
}

func (m *Tabs) Set(st task.Status) {
	for i, s := range task.Statuses {
		if s == st {
			m.i = i
		}
	}
}

func (m *Tabs) SetCounts(c task.Counts) {
	m.counts = c
}
