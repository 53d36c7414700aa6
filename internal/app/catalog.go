package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"suite_hotel/internal/domain"
)

const (
	hotelsCacheKey = "hotels:all"

	// shown to the user; the cause goes to the log
	hotelsFetchError = "Failed to fetch hotels. Please try again."
)

func roomsCacheKey(hotelID string) string { return "rooms:" + hotelID }

// CatalogService loads the hotel catalogue from the gateway into the hotel
// store, with a cache-aside layer in front of the gateway.
type CatalogService struct {
	gw        domain.Gateway
	cache     domain.Cache // optional
	hotels    *HotelStore
	hotelsTTL time.Duration
	roomsTTL  time.Duration
	workers   int64
}

func NewCatalogService(gw domain.Gateway, cache domain.Cache, hotels *HotelStore, hotelsTTL, roomsTTL time.Duration, workers int) *CatalogService {
	if workers <= 0 {
		workers = 4
	}
	return &CatalogService{
		gw:        gw,
		cache:     cache,
		hotels:    hotels,
		hotelsTTL: hotelsTTL,
		roomsTTL:  roomsTTL,
		workers:   int64(workers),
	}
}

// Refresh replaces the store's hotels with the current catalogue. A failure
// leaves the previous hotels in place and records the error on the store.
func (s *CatalogService) Refresh(ctx context.Context) error {
	s.hotels.SetLoading(true)
	defer s.hotels.SetLoading(false)

	var list []domain.Hotel
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, hotelsCacheKey, &list); ok {
			s.hotels.SetHotels(list)
			return nil
		}
	}

	list, err := s.load(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("catalog refresh failed")
		s.hotels.SetError(hotelsFetchError)
		return err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, hotelsCacheKey, list, int(s.hotelsTTL.Seconds()))
	}
	s.hotels.SetHotels(list)
	log.Info().Int("count", len(list)).Msg("catalog refreshed")
	return nil
}

// load fetches hotels, then prices each one from its rooms.
func (s *CatalogService) load(ctx context.Context) ([]domain.Hotel, error) {
	raw, err := s.gw.ListHotels(ctx)
	if err != nil {
		return nil, fmt.Errorf("list hotels: %w", err)
	}
	list := mapHotels(raw)

	sem := semaphore.NewWeighted(s.workers)
	var wg sync.WaitGroup
	for i := range list {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer sem.Release(1)

			rooms, err := s.Rooms(ctx, list[i].ID)
			if err != nil {
				// best-effort: keep the placeholder price
				log.Debug().Str("hotel_id", list[i].ID).Err(err).Msg("rooms unavailable")
				return
			}
			list[i] = withRoomPrice(list[i], rooms)
		}(i)
	}
	wg.Wait()
	return list, nil
}

// Rooms lists a hotel's rooms, cached for the rooms TTL.
func (s *CatalogService) Rooms(ctx context.Context, hotelID string) ([]domain.Room, error) {
	key := roomsCacheKey(hotelID)
	var rooms []domain.Room
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &rooms); ok {
			return rooms, nil
		}
	}
	raw, err := s.gw.ListRooms(ctx, hotelID)
	if err != nil {
		return nil, fmt.Errorf("list rooms for %s: %w", hotelID, err)
	}
	rooms = mapRooms(hotelID, raw)
	if s.cache != nil {
		_ = s.cache.Set(ctx, key, rooms, int(s.roomsTTL.Seconds()))
	}
	return rooms, nil
}

// Invalidate evicts the catalogue and the rooms of every hotel the store knows.
func (s *CatalogService) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Del(ctx, hotelsCacheKey); err != nil {
		return err
	}
	for _, h := range s.hotels.Hotels() {
		_ = s.cache.Del(ctx, roomsCacheKey(h.ID))
	}
	return nil
}

// Hotels exposes the store the service writes into.
func (s *CatalogService) Hotels() *HotelStore { return s.hotels }
