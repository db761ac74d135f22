// Package tui is the interactive terminal client: a login screen, the task
// dashboard and the add/edit form.
package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/td0m/tasktracker/internal/app"
	"github.com/td0m/tasktracker/internal/ui"
	"github.com/td0m/tasktracker/pkg/task"
	"go.uber.org/zap"
)

const (
	headerHeight = 6
	footerHeight = 2
)

type mode int

const (
	modeLogin mode = iota
	modeList
	modeSearch
	modeForm
)

// disarmMsg resets a delete confirmation, unless a newer one replaced it
type disarmMsg struct {
	seq int
}

type Model struct {
	app  *app.App
	mode mode

	width    int
	viewport viewport.Model
	tabs     ui.Tabs
	search   textinput.Model
	login    textinput.Model
	loginErr error
	form     form

	cursor  int
	visible []task.Task

	// armed is the task the next delete press removes, while confirming
	armed      task.ID
	confirming bool
	armSeq     int
	confirm time.Duration

	status string
}

// Run starts the TUI and blocks until the user quits
func Run(a *app.App) error {
	p := tea.NewProgram(New(a), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func New(a *app.App) *Model {
	login := textinput.New()
	login.Prompt = ""
	login.Placeholder = "Your name"
	login.CharLimit = 50
	login.Width = 30

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search tasks..."
	search.Width = 40

	m := &Model{
		app:      a,
		viewport: viewport.New(0, 0),
		tabs:     ui.NewTabs(),
		search:   search,
		login:    login,
		confirm:  a.Config.UI.ConfirmTimeout,
	}
	if m.confirm <= 0 {
		m.confirm = 3 * time.Second
	}
	if len(a.Diagnostics()) > 0 {
		m.status = "Some saved data could not be read and was reset"
	}
	if _, ok := a.Session.Current(); ok {
		m.mode = modeList
	} else {
		m.mode = modeLogin
		m.login.Focus()
	}
	m.refresh()
	return m
}

// Init is the first function that will be called. It returns an optional
// initial command. To not perform an initial command return nil.
func (m *Model) Init() tea.Cmd {
	if m.mode == modeLogin {
		return textinput.Blink
	}
	return nil
}

// Update is called when a message is received. Use it to inspect messages
// and, in response, update the model and/or send a command.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerHeight-footerHeight, 1)
		m.tabs.Width = msg.Width
		m.setCursor(m.cursor)
	case disarmMsg:
		if msg.seq == m.armSeq {
			m.disarm()
		}
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.mode {
		case modeLogin:
			cmd = m.loginUpdate(msg)
		case modeSearch:
			cmd = m.searchUpdate(msg)
		case modeForm:
			cmd = m.formUpdate(msg)
		default:
			cmd = m.listUpdate(msg)
		}
	default:
		// blinking cursors and the like
		switch m.mode {
		case modeLogin:
			m.login, cmd = m.login.Update(msg)
		case modeSearch:
			m.search, cmd = m.search.Update(msg)
		case modeForm:
			m.form, cmd = m.form.Update(msg)
		}
	}
	m.render()
	return m, cmd
}

func (m *Model) loginUpdate(msg tea.KeyMsg) tea.Cmd {
	if msg.Type != tea.KeyEnter {
		var cmd tea.Cmd
		m.login, cmd = m.login.Update(msg)
		m.loginErr = nil
		return cmd
	}
	if err := m.app.Session.SignIn(m.login.Value()); err != nil {
		m.loginErr = err
		return nil
	}
	user, _ := m.app.Session.Current()
	m.app.Log.Info("signed in", zap.String("user", user))
	m.login.Reset()
	m.login.Blur()
	m.loginErr = nil
	m.mode = modeList
	m.refresh()
	return nil
}

func (m *Model) searchUpdate(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		m.search.Blur()
		m.mode = modeList
		return nil
	case tea.KeyEsc:
		m.search.Reset()
		m.search.Blur()
		m.mode = modeList
		m.refresh()
		m.setCursor(0)
		return nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refresh()
	m.setCursor(0)
	return cmd
}

func (m *Model) formUpdate(msg tea.KeyMsg) tea.Cmd {
	switch {
	case msg.Type == tea.KeyEsc:
		m.mode = modeList
		return nil
	case msg.Type == tea.KeyCtrlS,
		msg.Type == tea.KeyEnter && m.form.focus != fieldDescription:
		m.submit()
		return nil
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return cmd
}

// submit saves the form, leaving it open with an inline error when it
// cannot be saved
func (m *Model) submit() {
	fields, err := m.form.fields()
	if err != nil {
		m.form.err = err
		if errors.Is(err, task.ErrEmptyTitle) {
			m.form.setFocus(fieldTitle)
		}
		return
	}
	id := m.form.id
	if m.form.editing() {
		_, err = m.app.Tasks.Update(id, task.PatchFromFields(fields))
	} else {
		var t task.Task
		t, err = m.app.Tasks.Add(fields)
		id = t.ID
	}
	if err != nil {
		m.app.Log.Error("saving task failed", zap.Error(err))
		m.form.err = fmt.Errorf("could not save: %w", err)
		return
	}
	if m.form.editing() {
		m.status = "Task updated"
	} else {
		m.status = "Task added"
	}
	m.mode = modeList
	m.refresh()
	m.focusTask(id)
}

func (m *Model) listUpdate(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch msg.String() {
	case "q":
		return tea.Quit
	case "j", "down":
		m.setCursor(m.cursor + 1)
	case "k", "up":
		m.setCursor(m.cursor - 1)
	case "g", "home":
		m.setCursor(0)
	case "G", "end":
		m.setCursor(len(m.visible) - 1)
	case "ctrl+d", "pgdown":
		m.setCursor(m.cursor + 5)
	case "ctrl+u", "pgup":
		m.setCursor(m.cursor - 5)
	case "tab", "shift+tab":
		m.tabs, cmd = m.tabs.Update(msg)
		m.refresh()
		m.setCursor(0)
	case "1", "2", "3":
		m.tabs.Set(task.Statuses[msg.String()[0]-'1'])
		m.refresh()
		m.setCursor(0)
	case "/":
		m.mode = modeSearch
		cmd = m.search.Focus()
	case "a", "n":
		m.form, cmd = newForm(nil, m.app.Now)
		m.mode = modeForm
	case "e", "enter":
		if t, ok := m.atCursor(); ok {
			m.form, cmd = newForm(&t, m.app.Now)
			m.mode = modeForm
		}
	case " ", "x":
		if t, ok := m.atCursor(); ok {
			m.check(m.app.Tasks.ToggleComplete(t.ID))
			m.refresh()
			m.focusTask(t.ID)
		}
	case "p":
		if t, ok := m.atCursor(); ok {
			next := t.Priority.Next()
			m.check(m.app.Tasks.Update(t.ID, task.Patch{Priority: &next}))
			m.refresh()
			m.focusTask(t.ID)
		}
	case "d", "delete":
		if t, ok := m.atCursor(); ok {
			cmd = m.delete(t.ID)
		}
	case "s":
		if m.app.Tasks.Counts().All == 0 {
			n, err := m.app.Seed()
			if err != nil {
				m.fail(err)
			} else {
				m.status = fmt.Sprintf("Added %d sample tasks", n)
			}
			m.refresh()
		}
	case "L":
		if err := m.app.Session.SignOut(); err != nil {
			m.fail(err)
			break
		}
		m.mode = modeLogin
		m.status = ""
		cmd = m.login.Focus()
	}
	return cmd
}

// delete arms the confirmation on the first press and deletes on a second
// press for the same task before the confirmation times out
func (m *Model) delete(id task.ID) tea.Cmd {
	if !m.confirming || m.armed != id {
		m.armed = id
		m.confirming = true
		m.armSeq++
		seq := m.armSeq
		return tea.Tick(m.confirm, func(time.Time) tea.Msg {
			return disarmMsg{seq: seq}
		})
	}
	m.disarm()
	m.armSeq++
	if m.check(m.app.Tasks.Delete(id)) {
		m.status = "Task deleted"
	}
	m.refresh()
	m.setCursor(m.cursor)
	return nil
}

func (m *Model) disarm() {
	m.armed = 0
	m.confirming = false
}

// check reports a failed write in the status line
func (m *Model) check(ok bool, err error) bool {
	if err != nil {
		m.fail(err)
		return false
	}
	return ok
}

func (m *Model) fail(err error) {
	m.app.Log.Error("update failed", zap.Error(err))
	m.status = "Error: " + err.Error()
}

// refresh recomputes the visible tasks after anything changed
func (m *Model) refresh() {
	m.visible = m.app.Tasks.View(m.tabs.Value(), m.search.Value())
	m.tabs.SetCounts(m.app.Tasks.Counts())
	m.cursor = clamp(m.cursor, 0, max(len(m.visible)-1, 0))
	m.render()
}

func (m *Model) focusTask(id task.ID) {
	for i, t := range m.visible {
		if t.ID == id {
			m.setCursor(i)
			return
		}
	}
	m.setCursor(m.cursor)
}

func (m *Model) atCursor() (task.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return task.Task{}, false
	}
	return m.visible[m.cursor], true
}

// setCursor moves the cursor and scrolls the viewport so the task under it
// is visible
func (m *Model) setCursor(value int) {
	size := len(m.visible)
	m.cursor = clamp(value, 0, max(size-1, 0))
	m.render()
	if size == 0 {
		return
	}

	linesBeforeCursor := 0
	for i := range m.visible[:m.cursor] {
		linesBeforeCursor += m.sizeOf(i)
	}
	cursorSize := m.sizeOf(m.cursor)

	if linesBeforeCursor+cursorSize > m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(linesBeforeCursor + cursorSize - m.viewport.Height)
	}
	if linesBeforeCursor < m.viewport.YOffset {
		m.viewport.SetYOffset(linesBeforeCursor)
	}
}

// sizeOf is the number of lines the i-th visible task takes, its
// separator included
func (m *Model) sizeOf(i int) int {
	return lipgloss.Height(m.item(i)) + 1
}

func (m *Model) item(i int) string {
	t := m.visible[i]
	return ui.Item(t, ui.ItemOptions{
		Selected: i == m.cursor && m.mode != modeSearch,
		Armed:    m.confirming && t.ID == m.armed,
		Now:      m.app.Now(),
	})
}

func (m *Model) render() {
	m.viewport.SetContent(m.viewTasks())
}

func (m *Model) viewTasks() string {
	if len(m.visible) == 0 {
		return "\n" + ui.Help.Render("  "+m.emptyMessage())
	}
	s := ""
	for i := range m.visible {
		s += m.item(i) + "\n\n"
	}
	return s
}

func clamp(v, low, high int) int {
	return min(high, max(low, v))
}
