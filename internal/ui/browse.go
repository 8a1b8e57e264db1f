package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"suitedeploy/internal/domain"
	"suitedeploy/internal/tree"
)

// Actions is what the browser can trigger.
type Actions interface {
	ProcessLocalObjects(ctx context.Context) (domain.ScanSummary, error)
	RetrieveServerObjects(ctx context.Context) error
	ImportObject(ctx context.Context, id domain.ScriptID) error
	DeployObject(ctx context.Context, id domain.ScriptID) error
	Verify(ctx context.Context) (domain.VerifyReport, error)
	Reset() error
	StatusText() string
}

const (
	paneLocal = iota
	paneServer
)

type row struct {
	node  tree.Node
	depth int
}

type pane struct {
	title    string
	provider tree.Provider
	rows     []row
	cursor   int
	expanded map[string]bool
	err      error
}

func (p *pane) reload() {
	p.rows = p.rows[:0]
	p.err = nil
	roots, err := p.provider.Children(nil)
	if err != nil {
		p.err = err
		return
	}
	for i := range roots {
		n := roots[i]
		p.rows = append(p.rows, row{node: n})
		if !n.Collapsible || !p.expanded[n.ID] {
			continue
		}
		children, err := p.provider.Children(&n)
		if err != nil {
			p.err = err
			return
		}
		for _, c := range children {
			p.rows = append(p.rows, row{node: c, depth: 1})
		}
	}
	if p.cursor >= len(p.rows) {
		p.cursor = max(len(p.rows)-1, 0)
	}
}

func (p *pane) selected() (tree.Node, bool) {
	if p.cursor < 0 || p.cursor >= len(p.rows) {
		return tree.Node{}, false
	}
	return p.rows[p.cursor].node, true
}

// actionDoneMsg reports the end of an asynchronous action.
type actionDoneMsg struct {
	name   string
	err    error
	report *domain.VerifyReport
}

// Model is the interactive two-pane browser.
type Model struct {
	ctx     context.Context
	actions Actions
	panes   [2]*pane
	active  int

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	styles  Styles
	busy    func() bool

	running   int
	status    string
	notice    string
	noticeErr bool
	width     int
	height    int
}

// NewModel builds a browser over the two providers.
func NewModel(ctx context.Context, actions Actions, local, server tree.Provider, styles Styles) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	m := Model{
		ctx:     ctx,
		actions: actions,
		panes: [2]*pane{
			{title: "Local objects", provider: local, expanded: map[string]bool{}},
			{title: "Server objects", provider: server, expanded: map[string]bool{}},
		},
		keys:    defaultKeyMap(),
		help:    help.New(),
		spinner: sp,
		styles:  styles,
		status:  actions.StatusText(),
	}
	for _, p := range m.panes {
		p.reload()
	}
	return m
}

// WithBusy makes the status line show when the SuiteCloud CLI is running,
// including processes started outside the browser's own actions.
func (m Model) WithBusy(fn func() bool) Model {
	m.busy = fn
	return m
}

// BusyLabel is appended to the status line while the CLI is running.
const BusyLabel = "suitecloud running"

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case RefreshMsg:
		for _, p := range m.panes {
			p.reload()
		}
		m.status = m.actions.StatusText()
		return m, nil

	case StatusMsg:
		m.status = msg.Text
		return m, nil

	case NoticeMsg:
		m.notice, m.noticeErr = msg.Text, msg.Err
		return m, nil

	case actionDoneMsg:
		m.running--
		if msg.err != nil {
			m.notice, m.noticeErr = msg.name+" failed: "+msg.err.Error(), true
		} else if msg.report != nil && !msg.report.Skipped {
			m.notice, m.noticeErr = fmt.Sprintf("Verified: %d deployed, %d not deployed.",
				len(msg.report.Deployed), len(msg.report.Undeployed)), false
		}
		for _, p := range m.panes {
			p.reload()
		}
		m.status = m.actions.StatusText()
		return m, nil

	case spinner.TickMsg:
		if m.running == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.panes[m.active]
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Switch):
		m.active = (m.active + 1) % len(m.panes)
	case key.Matches(msg, m.keys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if p.cursor < len(p.rows)-1 {
			p.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if n, ok := p.selected(); ok && n.Collapsible {
			p.expanded[n.ID] = !p.expanded[n.ID]
			p.reload()
		}
	case key.Matches(msg, m.keys.Process):
		return m.run("process", func(ctx context.Context) actionDoneMsg {
			_, err := m.actions.ProcessLocalObjects(ctx)
			return actionDoneMsg{err: err}
		})
	case key.Matches(msg, m.keys.Retrieve):
		return m.run("retrieve", func(ctx context.Context) actionDoneMsg {
			return actionDoneMsg{err: m.actions.RetrieveServerObjects(ctx)}
		})
	case key.Matches(msg, m.keys.Verify):
		return m.run("verify", func(ctx context.Context) actionDoneMsg {
			r, err := m.actions.Verify(ctx)
			return actionDoneMsg{err: err, report: &r}
		})
	case key.Matches(msg, m.keys.Reset):
		return m.run("reset", func(context.Context) actionDoneMsg {
			return actionDoneMsg{err: m.actions.Reset()}
		})
	case key.Matches(msg, m.keys.Import), key.Matches(msg, m.keys.Deploy):
		id, ok := m.selectedObject()
		if !ok {
			m.notice, m.noticeErr = "Select an object first.", true
			return m, nil
		}
		if key.Matches(msg, m.keys.Import) {
			return m.run("import", func(ctx context.Context) actionDoneMsg {
				return actionDoneMsg{err: m.actions.ImportObject(ctx, id)}
			})
		}
		return m.run("deploy", func(ctx context.Context) actionDoneMsg {
			return actionDoneMsg{err: m.actions.DeployObject(ctx, id)}
		})
	}
	return m, nil
}

// run starts fn in the background. The one-process guard lives below the
// browser, so a second action while one is running is still dispatched.
func (m Model) run(name string, fn func(context.Context) actionDoneMsg) (tea.Model, tea.Cmd) {
	m.running++
	ctx := m.ctx
	action := func() tea.Msg {
		msg := fn(ctx)
		msg.name = name
		return msg
	}
	if m.running == 1 {
		return m, tea.Batch(action, m.spinner.Tick)
	}
	return m, action
}

func (m Model) selectedObject() (domain.ScriptID, bool) {
	n, ok := m.panes[m.active].selected()
	if !ok {
		return "", false
	}
	if n.Context != tree.ContextLocalObject && n.Context != tree.ContextServerObject {
		return "", false
	}
	return domain.ScriptID(n.ID), true
}

// View implements tea.Model.
func (m Model) View() string {
	paneWidth := 40
	if m.width > 0 {
		paneWidth = max(m.width/2-4, 20)
	}

	views := make([]string, len(m.panes))
	for i, p := range m.panes {
		style := m.styles.Pane
		if i == m.active {
			style = m.styles.PaneFocus
		}
		views[i] = style.Width(paneWidth).Render(m.renderPane(p, i == m.active))
	}

	var sb strings.Builder
	sb.WriteString(m.styles.Title.Render("SuiteDeploy"))
	sb.WriteString("\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, views...))
	sb.WriteString("\n")

	status := m.styles.Status.Render(m.status)
	if m.running > 0 {
		status = m.spinner.View() + " " + status
	}
	if m.busy != nil && m.busy() {
		status += " " + m.styles.Muted.Render("· "+BusyLabel)
	}
	sb.WriteString(status)
	if m.notice != "" {
		style := m.styles.Notice
		if m.noticeErr {
			style = m.styles.Error
		}
		sb.WriteString("  ")
		sb.WriteString(style.Render(m.notice))
	}
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

func (m Model) renderPane(p *pane, focused bool) string {
	var sb strings.Builder
	sb.WriteString(m.styles.PaneTitle.Render(p.title))
	sb.WriteString("\n")
	if p.err != nil {
		sb.WriteString(m.styles.Error.Render(p.err.Error()))
		return sb.String()
	}
	if len(p.rows) == 0 {
		sb.WriteString(m.styles.Muted.Render("(empty)"))
		return sb.String()
	}
	for i, r := range p.rows {
		line := strings.Repeat("  ", r.depth)
		switch {
		case r.node.Collapsible && p.expanded[r.node.ID]:
			line += "▾ " + m.styles.Type.Render(r.node.Label)
		case r.node.Collapsible:
			line += "▸ " + m.styles.Type.Render(r.node.Label)
		case strings.HasPrefix(r.node.Label, "(D) "):
			line += "  " + m.styles.Deployed.Render(r.node.Label)
		default:
			line += "  " + m.styles.Item.Render(r.node.Label)
		}
		if r.node.Description != "" {
			line += " " + m.styles.Muted.Render(r.node.Description)
		}
		if focused && i == p.cursor {
			line = m.styles.Selected.Render(line)
		}
		sb.WriteString(line)
		if i < len(p.rows)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}
