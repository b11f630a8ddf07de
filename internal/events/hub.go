package events

import (
	"log"
	"sync"
	"time"

	"github.com/cube5963/feedo-cfes/internal/stats"
)

const (
	TypeConnected        = "connected"
	TypeStatisticsUpdate = "statistics_update"
)

// Event is one live-statistics notification, shaped exactly as the SSE
// stream delivers it.
type Event struct {
	Type        string                   `json:"type"`
	SectionUUID string                   `json:"sectionUUID,omitempty"`
	Statistics  *stats.SectionStatistics `json:"statistics,omitempty"`
	Timestamp   string                   `json:"timestamp,omitempty"`
}

func StatisticsUpdate(sectionUUID string, statistics stats.SectionStatistics) Event {
	return Event{
		Type:        TypeStatisticsUpdate,
		SectionUUID: sectionUUID,
		Statistics:  &statistics,
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
	}
}

// Hub fans statistics events out to every live viewer of a form. SSE and
// websocket handlers both consume the same subscriber channels.
type Hub struct {
	mu    sync.RWMutex
	forms map[string]map[chan Event]bool
}

func NewHub() *Hub {
	return &Hub{
		forms: make(map[string]map[chan Event]bool),
	}
}

func (h *Hub) Subscribe(formUUID string) chan Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.forms[formUUID] == nil {
		h.forms[formUUID] = make(map[chan Event]bool)
	}
	ch := make(chan Event, 16)
	h.forms[formUUID][ch] = true
	log.Printf("events: viewer subscribed to form %s (total: %d)", formUUID, len(h.forms[formUUID]))
	return ch
}

func (h *Hub) Unsubscribe(formUUID string, ch chan Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if subs, ok := h.forms[formUUID]; ok {
		if subs[ch] {
			delete(subs, ch)
			close(ch)
		}
		if len(subs) == 0 {
			delete(h.forms, formUUID)
		}
		log.Printf("events: viewer unsubscribed from form %s", formUUID)
	}
}

func (h *Hub) Broadcast(formUUID string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.forms[formUUID] {
		select {
		case ch <- event:
		default:
			// Slow viewer; the next recompute supersedes this event anyway.
			log.Printf("events: dropped event for form %s", formUUID)
		}
	}
}

func (h *Hub) SubscriberCount(formUUID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.forms[formUUID])
}
