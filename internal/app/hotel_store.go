package app

import (
	"sync"

	"github.com/rs/zerolog/log"

	"suite_hotel/internal/adapters/observability"
	"suite_hotel/internal/domain"
)

// HotelState is a point-in-time copy of the hotel store.
type HotelState struct {
	Hotels      []domain.Hotel `json:"hotels"`
	Selected    *domain.Hotel  `json:"selected,omitempty"`
	Loading     bool           `json:"loading"`
	Error       string         `json:"error,omitempty"`
	SearchQuery string         `json:"searchQuery,omitempty"`
}

// HotelStore holds the catalog and the selected hotel. It performs no I/O;
// the catalog service feeds it fetch-lifecycle transitions.
type HotelStore struct {
	mu          sync.RWMutex
	hotels      []domain.Hotel
	selected    *domain.Hotel
	loading     bool
	err         string
	searchQuery string
	hub         *Hub
}

func NewHotelStore(hub *Hub) *HotelStore {
	return &HotelStore{hub: hub}
}

// SetHotels replaces the whole catalog and clears any previous error.
func (s *HotelStore) SetHotels(hotels []domain.Hotel) {
	s.mu.Lock()
	s.hotels = domain.CloneHotels(hotels)
	s.err = ""
	s.mu.Unlock()

	log.Debug().Int("count", len(hotels)).Msg("hotel store: catalog replaced")
	observability.ObserveStore("hotels", "set")
	observability.SetCatalogSize(len(hotels))
	s.hub.Publish(TopicHotelsUpdated)
}

func (s *HotelStore) SetSelectedHotel(h *domain.Hotel) {
	s.mu.Lock()
	if h == nil {
		s.selected = nil
	} else {
		c := h.Clone()
		s.selected = &c
	}
	s.mu.Unlock()
	s.hub.Publish(TopicHotelSelected)
}

func (s *HotelStore) SelectedHotel() (domain.Hotel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.selected == nil {
		return domain.Hotel{}, false
	}
	return s.selected.Clone(), true
}

// GetHotelByID is a linear scan; absence is a normal result, not an error.
func (s *HotelStore) GetHotelByID(id string) (domain.Hotel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.hotels {
		if h.ID == id {
			return h.Clone(), true
		}
	}
	return domain.Hotel{}, false
}

func (s *HotelStore) Hotels() []domain.Hotel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CloneHotels(s.hotels)
}

func (s *HotelStore) SetLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
	s.hub.Publish(TopicHotelsLoading)
}

// SetError records the last fetch failure; "" clears it.
func (s *HotelStore) SetError(msg string) {
	s.mu.Lock()
	s.err = msg
	s.mu.Unlock()
	if msg != "" {
		log.Warn().Str("error", msg).Msg("hotel store: error set")
		observability.ObserveStore("hotels", "error")
	}
	s.hub.Publish(TopicHotelsError)
}

func (s *HotelStore) SetSearchQuery(q string) {
	s.mu.Lock()
	s.searchQuery = q
	s.mu.Unlock()
}

func (s *HotelStore) SearchQuery() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searchQuery
}

func (s *HotelStore) State() HotelState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := HotelState{
		Hotels:      domain.CloneHotels(s.hotels),
		Loading:     s.loading,
		Error:       s.err,
		SearchQuery: s.searchQuery,
	}
	if s.selected != nil {
		c := s.selected.Clone()
		st.Selected = &c
	}
	return st
}
