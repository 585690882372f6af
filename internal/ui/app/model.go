package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"timer/internal/ui/components"
	"timer/internal/ui/theme"
	tasksview "timer/internal/ui/views/tasks"
)

// refreshInterval is how often elapsed minutes of the running task are
// redrawn.
const refreshInterval = 30 * time.Second

// ─── messages ────────────────────────────────────────────────────────────────

// FileChangedMsg is sent by the file watcher when the task file changes.
type FileChangedMsg struct{}

// WatchErrMsg reports a watcher failure; the dashboard keeps running.
type WatchErrMsg struct{ Err error }

type tickMsg time.Time

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Filter key.Binding
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Filter: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Reload, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Filter},
		{k.Reload, k.Help, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model of the read-only dashboard. Task data
// comes from the tasks port; the watcher feeds FileChangedMsg.
type Model struct {
	tasksPath string
	now       func() time.Time

	tasks tasksview.Model

	keys     keyMap
	help     help.Model
	showHelp bool
	status   string
	width    int
	height   int
}

func NewModel(tasksPath string, port tasksview.TasksPort, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	return Model{
		tasksPath: tasksPath,
		now:       now,
		tasks:     tasksview.New(port, now),
		keys:      defaultKeys(),
		help:      help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.tasks.Init(), tick())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		var cmd tea.Cmd
		m.tasks, cmd = m.tasks.Update(tea.WindowSizeMsg{Width: msg.Width, Height: m.contentHeight()})
		return m, cmd

	case tea.KeyMsg:
		if m.tasks.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.Reload):
			m.status = "reloading…"
			return m, m.tasks.Reload()
		}

	case FileChangedMsg:
		m.status = "task file changed"
		return m, m.tasks.Reload()

	case WatchErrMsg:
		m.status = "watch: " + msg.Err.Error()
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.tasks.Refresh(), tick())

	case tasksview.TasksLoadedMsg:
		if msg.Err != nil {
			m.status = "load failed"
		} else {
			m.status = fmt.Sprintf("%d tasks", len(msg.Tasks))
		}
	}

	var cmd tea.Cmd
	m.tasks, cmd = m.tasks.Update(msg)
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	header := components.Header(m.width, "timer", m.tasksPath)
	var content string
	if m.showHelp {
		content = lipgloss.NewStyle().Width(m.width).Height(m.contentHeight()).
			Render(m.help.View(m.keys))
	} else {
		content = m.tasks.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, content, m.renderStatusBar())
}

// Status is the text shown at the left of the status bar.
func (m Model) Status() string {
	return m.status
}

func (m Model) renderStatusBar() string {
	left := m.status
	if active, ok := m.tasks.Active(); ok {
		minutes := int(m.now().Sub(active.StartTime) / time.Minute)
		left = theme.Hot.Render(fmt.Sprintf("● %s %dm", active.Name, minutes)) + "  " + left
	}
	return components.StatusBar(m.width, left, "?:help  r:reload  q:quit")
}

func (m Model) contentHeight() int {
	h := m.height - 2
	if h < 1 {
		h = 1
	}
	return h
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}
