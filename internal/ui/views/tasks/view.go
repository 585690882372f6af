package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	trackerinadapter "timer/internal/modules/tracker/adapter/in"
	trackerdto "timer/internal/modules/tracker/dto"
	"timer/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type TasksPort interface {
	List(ctx context.Context) ([]trackerdto.TaskOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type TasksLoadedMsg struct {
	Tasks []trackerdto.TaskOutput
	Err   error
}

// ─── list item ───────────────────────────────────────────────────────────────

type taskItem struct {
	task trackerdto.TaskOutput
	now  time.Time
}

func (i taskItem) Title() string {
	if i.task.Active {
		return fmt.Sprintf("#%d %s %s", i.task.ID, i.task.Name, theme.Running.Render("●"))
	}
	return fmt.Sprintf("#%d %s", i.task.ID, i.task.Name)
}

func (i taskItem) Description() string {
	minutes := int(i.task.Duration / time.Minute)
	if i.task.Active {
		minutes = int(i.now.Sub(i.task.StartTime) / time.Minute)
	}
	return fmt.Sprintf("%s  %d min", i.task.StartTime.Format(trackerinadapter.DisplayLayout), minutes)
}

func (i taskItem) FilterValue() string { return i.task.Name }

// ─── model ───────────────────────────────────────────────────────────────────

// Model lists tasks newest first next to the block of the selected one.
type Model struct {
	port    TasksPort
	now     func() time.Time
	list    list.Model
	tasks   []trackerdto.TaskOutput
	preview viewport.Model
	spinner spinner.Model
	loading bool
	err     error
	width   int
	height  int
}

func New(port TasksPort, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Tasks"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Foreground(theme.Text).
		Padding(1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		now:     now,
		list:    l,
		preview: vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Reload(), m.spinner.Tick)
}

// Reload fetches the task list again.
func (m Model) Reload() tea.Cmd {
	return func() tea.Msg {
		tasks, err := m.port.List(context.Background())
		return TasksLoadedMsg{Tasks: tasks, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case TasksLoadedMsg:
		m.loading = false
		m.err = msg.Err
		if msg.Err != nil {
			m.preview.SetContent(theme.Error.Render(msg.Err.Error()))
			return m, nil
		}
		m.tasks = msg.Tasks
		cmds = append(cmds, m.list.SetItems(m.items()))
		m.preview.SetContent(m.renderDetail())

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		prevIdx := m.list.Index()
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)
		if m.list.Index() != prevIdx {
			m.preview.SetContent(m.renderDetail())
		}

		var vCmd tea.Cmd
		m.preview, vCmd = m.preview.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

// Refresh re-renders elapsed times without reloading the file.
func (m *Model) Refresh() tea.Cmd {
	m.preview.SetContent(m.renderDetail())
	return m.list.SetItems(m.items())
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading tasks…")
	}

	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := theme.Pane.
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// Active returns the running task, if any.
func (m Model) Active() (trackerdto.TaskOutput, bool) {
	for i := len(m.tasks) - 1; i >= 0; i-- {
		if m.tasks[i].Active {
			return m.tasks[i], true
		}
	}
	return trackerdto.TaskOutput{}, false
}

// Filtering reports whether the list's search filter is currently active.
// The app model checks this to avoid consuming global keys during a search.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Len() int {
	return len(m.tasks)
}

func (m Model) Err() error {
	return m.err
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
}

func (m Model) items() []list.Item {
	now := m.now()
	items := make([]list.Item, 0, len(m.tasks))
	for i := len(m.tasks) - 1; i >= 0; i-- {
		items = append(items, taskItem{task: m.tasks[i], now: now})
	}
	return items
}

func (m Model) renderDetail() string {
	item, ok := m.list.SelectedItem().(taskItem)
	if !ok {
		return theme.Muted.Render("No tasks yet. Start one with `timer add`.")
	}
	return trackerinadapter.RenderTask(item.task, m.now())
}
