package app

import (
	"sync"
	"time"
)

const (
	TopicHotelsUpdated   = "hotels.updated"
	TopicHotelsLoading   = "hotels.loading"
	TopicHotelsError     = "hotels.error"
	TopicHotelSelected   = "hotels.selected"
	TopicBookingsUpdated = "bookings.updated"
	TopicBookingsError   = "bookings.error"
	TopicBookingCurrent  = "bookings.current"
	TopicBookingsSaved   = "bookings.saved"
	TopicSessionChanged  = "session.changed"
)

type Event struct {
	Topic string    `json:"topic"`
	At    time.Time `json:"at"`
}

// Hub fans store-change events out to subscribers. A subscriber whose buffer
// is full misses the event; it is expected to re-read the store anyway.
type Hub struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
	now  func() time.Time
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan Event]struct{}), now: time.Now}
}

// Subscribe returns the event channel and a cancel func that closes it.
func (h *Hub) Subscribe(buf int) (<-chan Event, func()) {
	if buf <= 0 {
		buf = 16
	}
	ch := make(chan Event, buf)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, ch)
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Publish is safe on a nil Hub so stores can run without one.
func (h *Hub) Publish(topic string) {
	if h == nil {
		return
	}
	ev := Event{Topic: topic, At: h.now().UTC()}
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}
