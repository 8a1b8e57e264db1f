package ui

import (
	"fmt"
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"suitedeploy/internal/domain"
)

// TerminalNotifier prints notifications as single lines.
type TerminalNotifier struct {
	mu     sync.Mutex
	w      io.Writer
	styles Styles
	quiet  bool
}

// NewTerminalNotifier writes to w. A quiet notifier only prints errors.
func NewTerminalNotifier(w io.Writer, styles Styles, quiet bool) *TerminalNotifier {
	return &TerminalNotifier{w: w, styles: styles, quiet: quiet}
}

func (n *TerminalNotifier) Info(message string) {
	if n.quiet {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.w, n.styles.Notice.Render("• "+message))
}

func (n *TerminalNotifier) Error(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintln(n.w, n.styles.Error.Render("✗ "+message))
}

// StatusLine keeps the latest status text.
type StatusLine struct {
	mu   sync.Mutex
	text string
}

func (s *StatusLine) SetText(text string) {
	s.mu.Lock()
	s.text = text
	s.mu.Unlock()
}

func (s *StatusLine) Text() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.text
}

// NoticeMsg carries a notification into the browser.
type NoticeMsg struct {
	Text string
	Err  bool
}

// StatusMsg carries a status line update into the browser.
type StatusMsg struct{ Text string }

// RefreshMsg asks the browser to reload both panes.
type RefreshMsg struct{}

// ProgramHost forwards notifications, status updates and refreshes to a
// running tea.Program. Messages sent before Attach are dropped.
type ProgramHost struct {
	mu   sync.RWMutex
	send func(tea.Msg)
}

// Attach routes subsequent messages to send, typically (*tea.Program).Send.
func (h *ProgramHost) Attach(send func(tea.Msg)) {
	h.mu.Lock()
	h.send = send
	h.mu.Unlock()
}

func (h *ProgramHost) post(msg tea.Msg) {
	h.mu.RLock()
	send := h.send
	h.mu.RUnlock()
	if send != nil {
		send(msg)
	}
}

func (h *ProgramHost) Info(message string)  { h.post(NoticeMsg{Text: message}) }
func (h *ProgramHost) Error(message string) { h.post(NoticeMsg{Text: message, Err: true}) }
func (h *ProgramHost) SetText(text string)  { h.post(StatusMsg{Text: text}) }
func (h *ProgramHost) Refresh()             { h.post(RefreshMsg{}) }

// Compile-time assertions.
var (
	_ domain.Notifier  = (*TerminalNotifier)(nil)
	_ domain.StatusBar = (*StatusLine)(nil)
	_ domain.Notifier  = (*ProgramHost)(nil)
	_ domain.StatusBar = (*ProgramHost)(nil)
	_ domain.View      = (*ProgramHost)(nil)
)
