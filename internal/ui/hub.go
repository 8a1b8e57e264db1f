package ui

import (
	"sync"

	"suitedeploy/internal/domain"
)

// Hub is the Notifier and StatusBar handed to the services. The CLI points
// it at the terminal; the browser swaps itself in while it runs.
type Hub struct {
	mu       sync.RWMutex
	notifier domain.Notifier
	bars     []domain.StatusBar
}

// NewHub returns a Hub delivering to notifier and bars.
func NewHub(notifier domain.Notifier, bars ...domain.StatusBar) *Hub {
	return &Hub{notifier: notifier, bars: bars}
}

// SetNotifier replaces the notification sink and returns the previous one.
func (h *Hub) SetNotifier(n domain.Notifier) domain.Notifier {
	h.mu.Lock()
	defer h.mu.Unlock()
	prev := h.notifier
	h.notifier = n
	return prev
}

// AddStatusBar adds a status sink.
func (h *Hub) AddStatusBar(b domain.StatusBar) {
	h.mu.Lock()
	h.bars = append(h.bars, b)
	h.mu.Unlock()
}

func (h *Hub) Info(message string) {
	h.mu.RLock()
	n := h.notifier
	h.mu.RUnlock()
	if n != nil {
		n.Info(message)
	}
}

func (h *Hub) Error(message string) {
	h.mu.RLock()
	n := h.notifier
	h.mu.RUnlock()
	if n != nil {
		n.Error(message)
	}
}

func (h *Hub) SetText(text string) {
	h.mu.RLock()
	bars := append([]domain.StatusBar(nil), h.bars...)
	h.mu.RUnlock()
	for _, b := range bars {
		b.SetText(text)
	}
}

var (
	_ domain.Notifier  = (*Hub)(nil)
	_ domain.StatusBar = (*Hub)(nil)
)
