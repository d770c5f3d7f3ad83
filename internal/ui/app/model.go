package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	launcherdto "threadsuite/internal/modules/launcher/dto"
	threaddto "threadsuite/internal/modules/thread/dto"
	"threadsuite/internal/ui/components"
	"threadsuite/internal/ui/theme"
	launcherview "threadsuite/internal/ui/views/launcher"
	threadsview "threadsuite/internal/ui/views/threads"
)

const pollInterval = 2 * time.Second

// ─── ports ───────────────────────────────────────────────────────────────────

type launcherPort interface {
	Targets(ctx context.Context) ([]launcherdto.TargetOutput, error)
	Launch(ctx context.Context, target string) (launcherdto.LaunchOutput, error)
	Running(ctx context.Context) []launcherdto.RunningOutput
	StopAll(ctx context.Context) int
}

type threadPort interface {
	ListThreads(ctx context.Context, limit int) ([]threaddto.ThreadSummaryOutput, error)
	GetThread(ctx context.Context, id string) (threaddto.ThreadDetailOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabLauncher tabID = iota
	tabThreads
	tabCount
)

var tabLabels = [tabCount]string{"Launcher", "Threads"}

type pollMsg struct{}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab      key.Binding
	Launch   key.Binding
	Refresh  key.Binding
	StopAll  key.Binding
	Reload   key.Binding
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
	QuitStop key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Launch:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "launch")),
		Refresh:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh status")),
		StopAll:  key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "close all")),
		Reload:   key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reload lists")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		QuitStop: key.NewBinding(key.WithKeys("Q"), key.WithHelp("Q", "close all and quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Launch, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Launch, k.Refresh},
		{k.StopAll, k.Reload, k.Palette},
		{k.Help, k.Quit, k.QuitStop},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the help overlay,
// and the command palette; each tab renders through its own sub-view.
type Model struct {
	launcher launcherPort

	launchView  launcherview.Model
	threadsView threadsview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	quitting  bool
	width     int
	height    int
}

func NewModel(launcher launcherPort, threads threadPort, now func() time.Time) Model {
	return Model{
		launcher:    launcher,
		launchView:  launcherview.New(launcher, now),
		threadsView: threadsview.New(threads),
		activeTab:   tabLauncher,
		keys:        defaultKeys(),
		help:        help.New(),
		palette:     components.NewPalette(),
		status:      "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.launchView.Init(), m.threadsView.Init(), pollCmd())
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	if m.palette.Visible() {
		var cmd tea.Cmd
		m.palette, cmd = m.palette.Update(msg)
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case pollMsg:
		return m, tea.Batch(m.launchView.Refresh(false), pollCmd())

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	// Launcher results always reach the launcher view, whichever tab is open.
	case launcherview.LaunchedMsg:
		if msg.Err != nil {
			m.status = "launch failed: " + msg.Err.Error()
		} else if msg.Result.Started {
			m.status = "started " + msg.Result.Target
		} else {
			m.status = msg.Result.Target + ": " + msg.Result.Reason
		}
		return m.routeToLauncher(msg)

	case launcherview.StoppedMsg:
		if m.quitting {
			return m, tea.Quit
		}
		return m.routeToLauncher(msg)

	case launcherview.RunningMsg, launcherview.TargetsLoadedMsg:
		return m.routeToLauncher(msg)

	case threadsview.ThreadsLoadedMsg, threadsview.DetailLoadedMsg:
		var cmd tea.Cmd
		m.threadsView, cmd = m.threadsView.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}

		if m.subViewFiltering() {
			break
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.QuitStop):
			m.quitting = true
			return m, m.launchView.StopAll()
		case key.Matches(msg, m.keys.Tab):
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case msg.String() == "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.Palette):
			return m, m.palette.Open()
		case key.Matches(msg, m.keys.Refresh):
			return m, m.launchView.Refresh(true)
		case key.Matches(msg, m.keys.StopAll):
			return m, m.launchView.StopAll()
		case key.Matches(msg, m.keys.Reload):
			return m, tea.Batch(m.launchView.Reload(), m.threadsView.Reload())
		case key.Matches(msg, m.keys.Launch):
			if m.activeTab == tabLauncher {
				if name, ok := m.launchView.SelectedTarget(); ok {
					m.status = "launching " + name
					return m, m.launchView.Launch(name)
				}
			}
		}
	}

	var tabCmd tea.Cmd
	switch m.activeTab {
	case tabLauncher:
		m.launchView, tabCmd = m.launchView.Update(msg)
	case tabThreads:
		m.threadsView, tabCmd = m.threadsView.Update(msg)
	}
	cmds = append(cmds, tabCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) routeToLauncher(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.launchView, cmd = m.launchView.Update(msg)
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()

	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.activeTab == tabThreads:
		content = m.threadsView.View()
	default:
		content = m.launchView.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := "threadsuite  " + strings.Join(parts, sep)
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := theme.Hot.Render(runningLabel(m.launchView.RunningCount())) + "  " + m.status
	right := theme.Muted.Render("?:help  enter:launch  x:close all  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

func runningLabel(n int) string {
	if n == 1 {
		return "● 1 app running"
	}
	return fmt.Sprintf("● %d apps running", n)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	switch parts[0] {
	case "launch":
		if len(parts) < 2 {
			m.status = "usage: launch <target>"
			return m, nil
		}
		cmds := make([]tea.Cmd, 0, len(parts)-1)
		for _, name := range parts[1:] {
			cmds = append(cmds, m.launchView.Launch(name))
		}
		m.activeTab = tabLauncher
		m.status = "launching " + strings.Join(parts[1:], ", ")
		return m, tea.Batch(cmds...)
	case "refresh":
		return m, m.launchView.Refresh(true)
	case "stop-all":
		return m, m.launchView.StopAll()
	case "reload":
		return m, tea.Batch(m.launchView.Reload(), m.threadsView.Reload())
	case "threads":
		m.activeTab = tabThreads
		return m, m.threadsView.Reload()
	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) subViewFiltering() bool {
	switch m.activeTab {
	case tabLauncher:
		return m.launchView.Filtering()
	case tabThreads:
		return m.threadsView.Filtering()
	}
	return false
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: m.height - 3}
	m.launchView, _ = m.launchView.Update(sz)
	m.threadsView, _ = m.threadsView.Update(sz)
}

func pollCmd() tea.Cmd {
	return tea.Tick(pollInterval, func(time.Time) tea.Msg { return pollMsg{} })
}
