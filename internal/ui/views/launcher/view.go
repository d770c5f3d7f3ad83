package launcher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	launcherdto "threadsuite/internal/modules/launcher/dto"
	"threadsuite/internal/ui/theme"
)

const maxLogLines = 200

// ─── port ────────────────────────────────────────────────────────────────────

type LauncherPort interface {
	Targets(ctx context.Context) ([]launcherdto.TargetOutput, error)
	Launch(ctx context.Context, target string) (launcherdto.LaunchOutput, error)
	Running(ctx context.Context) []launcherdto.RunningOutput
	StopAll(ctx context.Context) int
}

// ─── messages ────────────────────────────────────────────────────────────────

type TargetsLoadedMsg struct {
	Targets []launcherdto.TargetOutput
	Err     error
}

type LaunchedMsg struct {
	Result launcherdto.LaunchOutput
	Err    error
}

type RunningMsg struct {
	Running []launcherdto.RunningOutput
	Logged  bool
}

type StoppedMsg struct {
	Count int
}

// ─── list item ───────────────────────────────────────────────────────────────

type targetItem struct {
	target launcherdto.TargetOutput
}

func (i targetItem) Title() string { return i.target.Name }
func (i targetItem) Description() string {
	switch {
	case !i.target.Resolvable:
		return "missing"
	case i.target.PrimaryExists:
		return "ready  " + i.target.PrimaryPath
	default:
		return "ready  " + i.target.FallbackPath + " (fallback)"
	}
}
func (i targetItem) FilterValue() string { return i.target.Name }

// ─── model ───────────────────────────────────────────────────────────────────

// Model lists launch targets next to an activity log. It never blocks on a
// launch: every port call runs as a tea.Cmd.
type Model struct {
	port    LauncherPort
	now     func() time.Time
	list    list.Model
	log     viewport.Model
	lines   []string
	spinner spinner.Model
	loading bool
	running int
	width   int
	height  int
}

func New(port LauncherPort, now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Targets"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(0, 1)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Lavender)

	return Model{
		port:    port,
		now:     now,
		list:    l,
		log:     vp,
		spinner: sp,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadTargetsCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case TargetsLoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.appendLog(theme.Bad.Render("targets: " + msg.Err.Error()))
			return m, nil
		}
		items := make([]list.Item, len(msg.Targets))
		for i, t := range msg.Targets {
			items[i] = targetItem{target: t}
		}
		cmds = append(cmds, m.list.SetItems(items))
		m.appendLog(fmt.Sprintf("%d targets loaded", len(msg.Targets)))

	case LaunchedMsg:
		switch {
		case msg.Err != nil:
			m.appendLog(theme.Bad.Render("launch: " + msg.Err.Error()))
		case msg.Result.Started:
			m.running++
			m.appendLog(theme.Good.Render(fmt.Sprintf("started %s (pid %d)", msg.Result.Target, msg.Result.PID)) +
				theme.Muted.Render("  "+msg.Result.ResolvedPath))
		default:
			m.appendLog(theme.Bad.Render(fmt.Sprintf("%s: %s", msg.Result.Target, msg.Result.Error)))
		}

	case RunningMsg:
		m.running = len(msg.Running)
		if msg.Logged {
			m.appendLog(fmt.Sprintf("status refreshed: %d running", m.running))
		}

	case StoppedMsg:
		m.running = 0
		if msg.Count == 0 {
			m.appendLog("no applications were running")
		} else {
			m.appendLog(theme.Hot.Render(fmt.Sprintf("closed %d applications", msg.Count)))
		}

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	if !m.loading {
		var lCmd tea.Cmd
		m.list, lCmd = m.list.Update(msg)
		cmds = append(cmds, lCmd)

		var vCmd tea.Cmd
		m.log, vCmd = m.log.Update(msg)
		cmds = append(cmds, vCmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading targets…")
	}

	listW := m.width * 4 / 10
	logW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	logPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(logW - 2).
		Height(m.height - 2).
		Render(theme.Title.Render("Activity") + "\n" + m.log.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, logPane)
}

// RunningCount is the number of live processes at the last refresh.
func (m Model) RunningCount() int { return m.running }

// Filtering reports whether the list's search filter is currently active.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// SelectedTarget returns the highlighted target name, if any.
func (m Model) SelectedTarget() (string, bool) {
	if item, ok := m.list.SelectedItem().(targetItem); ok {
		return item.target.Name, true
	}
	return "", false
}

// Lines returns the activity log, oldest first.
func (m Model) Lines() []string {
	return append([]string(nil), m.lines...)
}

func (m Model) Launch(name string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Launch(context.Background(), name)
		return LaunchedMsg{Result: out, Err: err}
	}
}

func (m Model) Refresh(logged bool) tea.Cmd {
	return func() tea.Msg {
		return RunningMsg{Running: m.port.Running(context.Background()), Logged: logged}
	}
}

func (m Model) StopAll() tea.Cmd {
	return func() tea.Msg {
		return StoppedMsg{Count: m.port.StopAll(context.Background())}
	}
}

func (m Model) Reload() tea.Cmd {
	return m.loadTargetsCmd()
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) appendLog(line string) {
	m.lines = append(m.lines, fmt.Sprintf("[%s] %s", m.now().Format("15:04:05"), line))
	if len(m.lines) > maxLogLines {
		m.lines = m.lines[len(m.lines)-maxLogLines:]
	}
	m.log.SetContent(strings.Join(m.lines, "\n"))
	m.log.GotoBottom()
}

func (m *Model) resize() {
	listW := m.width * 4 / 10
	logW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.log.Width = logW - 4
	m.log.Height = m.height - 3
}

func (m Model) loadTargetsCmd() tea.Cmd {
	return func() tea.Msg {
		targets, err := m.port.Targets(context.Background())
		return TargetsLoadedMsg{Targets: targets, Err: err}
	}
}
