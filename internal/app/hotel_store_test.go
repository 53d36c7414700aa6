package app_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suite_hotel/internal/app"
	"suite_hotel/internal/domain"
)

func sampleHotels() []domain.Hotel {
	return []domain.Hotel{
		{ID: "1", Name: "Ocean View Resort", Price: 120, Rating: 4.8, Location: "Miami", Amenities: []string{"Pool", "Free WiFi"}},
		{ID: "2", Name: "Mountain Lodge", Price: 300, Rating: 4.2, Location: "Aspen", Amenities: []string{"Spa", "Parking"}},
		{ID: "3", Name: "City Central", Price: 200, Rating: 4.5, Location: "Chicago", Amenities: []string{"Free WiFi", "Restaurant"}},
	}
}

func TestHotelStore_SetAndGet(t *testing.T) {
	s := app.NewHotelStore(nil)
	s.SetHotels(sampleHotels())

	h, ok := s.GetHotelByID("2")
	require.True(t, ok)
	assert.Equal(t, "Mountain Lodge", h.Name)

	_, ok = s.GetHotelByID("999")
	assert.False(t, ok, "absence is a normal result")

	s.SetHotels(nil)
	assert.Empty(t, s.Hotels())
}

func TestHotelStore_ReturnsCopies(t *testing.T) {
	s := app.NewHotelStore(nil)
	in := sampleHotels()
	s.SetHotels(in)

	in[0].Amenities[0] = "changed by caller"
	got := s.Hotels()
	assert.Equal(t, "Pool", got[0].Amenities[0])

	got[0].Name = "changed by reader"
	h, _ := s.GetHotelByID("1")
	assert.Equal(t, "Ocean View Resort", h.Name)
}

func TestHotelStore_SelectedHotel(t *testing.T) {
	s := app.NewHotelStore(nil)
	_, ok := s.SelectedHotel()
	assert.False(t, ok)

	// a selected hotel need not be in the catalog
	ext := domain.Hotel{ID: "x", Name: "Elsewhere"}
	s.SetSelectedHotel(&ext)
	sel, ok := s.SelectedHotel()
	require.True(t, ok)
	assert.Equal(t, "x", sel.ID)

	s.SetSelectedHotel(nil)
	_, ok = s.SelectedHotel()
	assert.False(t, ok)
}

func TestHotelStore_LoadingAndError(t *testing.T) {
	s := app.NewHotelStore(nil)
	s.SetLoading(true)
	s.SetError("Failed to fetch hotels. Please try again.")

	st := s.State()
	assert.True(t, st.Loading)
	assert.Equal(t, "Failed to fetch hotels. Please try again.", st.Error)

	s.SetHotels(sampleHotels())
	s.SetLoading(false)
	st = s.State()
	assert.False(t, st.Loading)
	assert.Empty(t, st.Error, "a successful load clears the error")
	assert.Len(t, st.Hotels, 3)

	s.SetError("x")
	s.SetError("")
	assert.Empty(t, s.State().Error)
}

func TestHotelStore_PublishesEvents(t *testing.T) {
	hub := app.NewHub()
	ch, cancel := hub.Subscribe(8)
	defer cancel()

	s := app.NewHotelStore(hub)
	s.SetHotels(sampleHotels())
	s.SetSelectedHotel(nil)

	assert.Equal(t, app.TopicHotelsUpdated, (<-ch).Topic)
	assert.Equal(t, app.TopicHotelSelected, (<-ch).Topic)
}
