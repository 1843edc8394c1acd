package app

import (
	"sync"
	"time"
)

// EventType tags platform events pushed to admin subscribers.
type EventType string

const (
	// EventQuizPending fires when a new quiz arrives for review.
	EventQuizPending EventType = "quiz_pending"
	// EventResultRecorded fires when a scored result lands in the store.
	EventResultRecorded EventType = "result_recorded"
)

// Event is the payload broadcast to websocket subscribers.
type Event struct {
	Type      EventType `json:"type"`
	QuizID    string    `json:"quiz_id,omitempty"`
	QuizTitle string    `json:"quiz_title,omitempty"`
	UserEmail string    `json:"user_email,omitempty"`
	Message   string    `json:"message"`
	At        time.Time `json:"at"`
}

// Hub fans platform events out to subscribers. Slow subscribers have their
// oldest buffered event dropped rather than blocking the publisher.
type Hub struct {
	mu          sync.Mutex
	subscribers map[chan Event]struct{}
	now         func() time.Time
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[chan Event]struct{}),
		now:         time.Now,
	}
}

// Subscribe returns a channel of events and a cancel function the caller
// must invoke to avoid leaks.
func (h *Hub) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 8)

	h.mu.Lock()
	h.subscribers[ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if _, ok := h.subscribers[ch]; ok {
			delete(h.subscribers, ch)
			close(ch)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Publish stamps the event and delivers it to every subscriber.
func (h *Hub) Publish(event Event) {
	event.At = h.now()

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subscribers {
		select {
		case ch <- event:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- event
		}
	}
}
