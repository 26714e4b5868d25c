// Package events fans notifications out to interested subscribers.
//
// The explorer core publishes plain-string notifications with a severity
// level; the WebSocket layer subscribes and forwards them to clients.
package events

import (
	"sync"
	"time"

	"github.com/GriffinCanCode/dired/backend/internal/shared/types"
)

const subscriberBuffer = 64

// Hub is a lightweight publish/subscribe fan-out for notifications.
type Hub struct {
	mu     sync.RWMutex
	subs   map[uint64]chan types.Notification
	nextID uint64
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[uint64]chan types.Notification)}
}

// Subscribe registers a new subscriber and returns its channel plus a
// cancel function. The channel is closed on cancel.
func (h *Hub) Subscribe() (<-chan types.Notification, func()) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	ch := make(chan types.Notification, subscriberBuffer)
	h.subs[id] = ch
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if sub, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(sub)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers a notification to every subscriber. Slow subscribers
// with a full buffer miss the message rather than blocking the publisher.
func (h *Hub) Publish(severity types.Severity, message string) {
	n := types.Notification{
		Severity: severity,
		Message:  message,
		Time:     time.Now().Unix(),
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- n:
		default:
		}
	}
}

// Info publishes an informational notification.
func (h *Hub) Info(message string) { h.Publish(types.SeverityInfo, message) }

// Warning publishes a warning notification.
func (h *Hub) Warning(message string) { h.Publish(types.SeverityWarning, message) }

// Error publishes an error notification.
func (h *Hub) Error(message string) { h.Publish(types.SeverityError, message) }

// SubscriberCount returns the number of active subscribers.
func (h *Hub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
