package dateinput

import (
	"math"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	indicator = lipgloss.NewStyle().Padding(0, 1).Bold(true)
	checkmark = indicator.Copy().
			Foreground(lipgloss.AdaptiveColor{Light: "#00ad3b", Dark: "#73F59F"}).
			Render("✓")

	cross = indicator.Copy().
		Foreground(lipgloss.AdaptiveColor{Light: "", Dark: "#FF5047"}).
		Render("✗")

	faded = lipgloss.AdaptiveColor{Light: "#666", Dark: "#999"}
)

// Model is a text input for due dates that shows whether what was typed
// parses, and what it parses to.
type Model struct {
	i     textinput.Model
	value *time.Time
	err   error
	now   func() time.Time
}

func NewModel() Model {
	i := textinput.New()
	i.CharLimit = 32
	i.Prompt = ""
	i.Placeholder = "tomorrow 17:00"
	return Model{
		i:   i,
		now: time.Now,
	}
}

// Init is the first function that will be called. It returns an optional
// initial command. To not perform an initial command return nil.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update is called when a message is received. Use it to inspect messages
// and, in response, update the model and/or send a command.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.i, cmd = m.i.Update(msg)
		m.parse()
		return m, cmd
	}
	m.i, cmd = m.i.Update(msg)
	return m, cmd
}

func (m *Model) parse() {
	m.value, m.err = Parse(m.i.Value(), m.now())
}

// View renders the program's UI, which is just a string. The view is
// rendered after every Update.
func (m Model) View() string {
	indicator := cross
	if m.i.Value() == "" {
		indicator = ""
	} else if m.err == nil && m.value != nil {
		indicator = checkmark + lipgloss.NewStyle().Foreground(faded).Render(Format(*m.value, m.now()))
	}
	return m.i.View() + indicator
}

// SetClock replaces time.Now as the reference for relative dates
func (m *Model) SetClock(now func() time.Time) {
	m.now = now
}

func (m *Model) Focus() tea.Cmd {
	return m.i.Focus()
}

func (m *Model) Blur() {
	m.i.Blur()
}

// Value is the parsed date, nil when the input is empty
func (m Model) Value() (*time.Time, error) {
	return m.value, m.err
}

func (m *Model) SetValue(t *time.Time) {
	if t == nil {
		m.i.SetValue("")
	} else {
		local := t.Local()
		s := local.Format("2006-01-02")
		if hour, minute, _ := local.Clock(); hour != 0 || minute != 0 {
			s += local.Format(" 15:04")
		}
		m.i.SetValue(s)
	}
	m.i.CursorEnd()
	m.parse()
}

// Format describes t relative to now: "today", "3 days", "2 weeks"...
// Dates before today are "overdue".
func Format(t, now time.Time) string {
	diff := StartOfDay(t.In(now.Location())).Sub(StartOfDay(now))
	switch days := int(math.Round(diff.Hours() / 24)); {
	case days < 0:
		return "overdue"
	case days == 0:
		return "today"
	case days == 1:
		return "tomorrow"
	case days < 14:
		return strconv.Itoa(days) + " days"
	// max 1 month
	case days <= 31:
		return strconv.Itoa(days/7) + " weeks"
	// months
	default:
		postfix := ""
		months := days / 31
		if months > 1 {
			postfix = "s"
		}
		return strconv.Itoa(months) + " month" + postfix
	}
}
