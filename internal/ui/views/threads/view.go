package threads

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	threaddto "threadsuite/internal/modules/thread/dto"
	"threadsuite/internal/ui/theme"
)

const historyLimit = 100

type ThreadPort interface {
	ListThreads(ctx context.Context, limit int) ([]threaddto.ThreadSummaryOutput, error)
	GetThread(ctx context.Context, id string) (threaddto.ThreadDetailOutput, error)
}

type ThreadsLoadedMsg struct {
	Threads []threaddto.ThreadSummaryOutput
	Err     error
}

type DetailLoadedMsg struct {
	Detail threaddto.ThreadDetailOutput
	Err    error
}

type threadItem struct {
	thread threaddto.ThreadSummaryOutput
}

func (i threadItem) Title() string { return i.thread.Title }
func (i threadItem) Description() string {
	return fmt.Sprintf("%d posts  %s", i.thread.SegmentCount, i.thread.CreatedAt.Local().Format("2006-01-02 15:04"))
}
func (i threadItem) FilterValue() string { return i.thread.Title }

// Model browses saved threads with a preview of their segments.
type Model struct {
	port    ThreadPort
	list    list.Model
	detail  threaddto.ThreadDetailOutput
	preview viewport.Model
	status  string
	width   int
	height  int
}

func New(port ThreadPort) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Threads"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		Background(theme.Mantle).
		Foreground(theme.Text).
		Padding(1)

	return Model{port: port, list: l, preview: vp}
}

func (m Model) Init() tea.Cmd {
	return m.loadThreadsCmd()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case ThreadsLoadedMsg:
		if msg.Err != nil {
			m.status = msg.Err.Error()
			m.preview.SetContent(theme.Bad.Render(m.status))
			return m, nil
		}
		items := make([]list.Item, len(msg.Threads))
		for i, t := range msg.Threads {
			items[i] = threadItem{thread: t}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if len(msg.Threads) > 0 {
			cmds = append(cmds, m.loadDetailCmd(msg.Threads[0].ID))
		} else {
			m.preview.SetContent(theme.Muted.Render("No saved threads. Use `threadsuite split --save`."))
		}

	case DetailLoadedMsg:
		if msg.Err == nil {
			m.detail = msg.Detail
			m.preview.SetContent(m.renderDetail())
			m.preview.GotoTop()
		}
	}

	prevIdx := m.list.Index()
	var lCmd tea.Cmd
	m.list, lCmd = m.list.Update(msg)
	cmds = append(cmds, lCmd)
	if m.list.Index() != prevIdx {
		if item, ok := m.list.SelectedItem().(threadItem); ok {
			cmds = append(cmds, m.loadDetailCmd(item.thread.ID))
		}
	}

	var vCmd tea.Cmd
	m.preview, vCmd = m.preview.Update(msg)
	cmds = append(cmds, vCmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	listW := m.width * 4 / 10
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().
		Width(listW).
		Height(m.height).
		Render(m.list.View())

	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(detailW - 2).
		Height(m.height - 2).
		Render(m.preview.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Reload() tea.Cmd {
	return m.loadThreadsCmd()
}

func (m *Model) resize() {
	listW := m.width * 4 / 10
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.preview.Width = detailW - 4
	m.preview.Height = m.height - 4
}

func (m Model) renderDetail() string {
	d := m.detail
	if d.ID == "" {
		return theme.Muted.Render("Select a thread to see its posts")
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render(d.Title) + "\n")
	sb.WriteString(theme.Muted.Render(fmt.Sprintf("%d posts  max %d  id %s", len(d.Segments), d.MaxLength, d.ID)) + "\n\n")
	for _, s := range d.Segments {
		label := fmt.Sprintf("#%d  %d/%d", s.Index, s.Length, d.MaxLength)
		if s.Length > d.MaxLength {
			sb.WriteString(theme.Bad.Render(label) + "\n")
		} else {
			sb.WriteString(theme.Muted.Render(label) + "\n")
		}
		sb.WriteString(s.Text + "\n\n")
	}
	return sb.String()
}

func (m Model) loadThreadsCmd() tea.Cmd {
	return func() tea.Msg {
		items, err := m.port.ListThreads(context.Background(), historyLimit)
		return ThreadsLoadedMsg{Threads: items, Err: err}
	}
}

func (m Model) loadDetailCmd(id string) tea.Cmd {
	return func() tea.Msg {
		detail, err := m.port.GetThread(context.Background(), id)
		return DetailLoadedMsg{Detail: detail, Err: err}
	}
}
