package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"suite_hotel/internal/domain"
)

// ReservationSource builds the booking history of the connected wallet from
// the gateway's reservations, merged with bookings created through this
// service and kept in the repository.
type ReservationSource struct {
	gw      domain.Gateway
	session *SessionStore
	hotels  HotelLookup
	repo    domain.BookingRepository // optional
}

func NewReservationSource(gw domain.Gateway, session *SessionStore, hotels HotelLookup, repo domain.BookingRepository) *ReservationSource {
	return &ReservationSource{gw: gw, session: session, hotels: hotels, repo: repo}
}

func (r *ReservationSource) LoadBookings(ctx context.Context) ([]domain.Booking, error) {
	guest, err := r.session.Address()
	if err != nil {
		return nil, err
	}

	raw, err := r.gw.ListReservations(ctx, guest)
	if err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	reservations := mapReservations(raw)
	out := make([]domain.Booking, 0, len(reservations))
	seen := make(map[string]struct{}, len(reservations))
	for _, rv := range reservations {
		out = append(out, reservationToBooking(rv, r.hotels))
		seen[rv.ID] = struct{}{}
	}

	if r.repo == nil {
		return out, nil
	}
	local, err := r.repo.ListBookings(ctx, guest)
	if err != nil {
		// the gateway view is still usable
		log.Warn().Err(err).Str("guest", guest).Msg("local bookings unavailable")
		return out, nil
	}
	for _, b := range local {
		if _, dup := seen[b.ID]; dup {
			continue
		}
		if _, dup := seen[b.TransactionID]; dup && b.TransactionID != "" {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}
