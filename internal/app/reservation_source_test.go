package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"suite_hotel/internal/app"
	"suite_hotel/internal/domain"
	"suite_hotel/internal/domain/mocks"
)

type listRepo struct {
	fakeRepo
	list []domain.Booking
	err  error
}

func (r *listRepo) ListBookings(ctx context.Context, guest string) ([]domain.Booking, error) {
	return r.list, r.err
}

func connectedSession(t *testing.T) *app.SessionStore {
	t.Helper()
	s := app.NewSessionStore(newMemKV(), nil, app.SessionConfig{}, nil)
	_, err := s.Connect(context.Background(), addr, "")
	require.NoError(t, err)
	return s
}

func reservationRecords() []map[string]any {
	return []map[string]any{{
		"objectId": "0xres1", "room_id": "7", "hotel_id": "1", "guest_address": addr,
		"start_date": 1721001600000.0, "end_date": 1721260800000.0, "total_cost": 450.0, "is_active": true,
	}}
}

func TestReservationSource_NotConnected(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockGateway(ctrl)
	s := app.NewSessionStore(newMemKV(), nil, app.SessionConfig{}, nil)

	_, err := app.NewReservationSource(gw, s, nil, nil).LoadBookings(context.Background())
	require.ErrorIs(t, err, domain.ErrNotConnected)
}

func TestReservationSource_MergesLocalBookings(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockGateway(ctrl)
	gw.EXPECT().ListReservations(gomock.Any(), addr).Return(reservationRecords(), nil)

	hotels := app.NewHotelStore(nil)
	hotels.SetHotels(sampleHotels())
	repo := &listRepo{list: []domain.Booking{
		{ID: "local-1", HotelID: "2", TransactionID: "0xaaaa"},
		{ID: "local-2", TransactionID: "0xres1"}, // already on chain
		{ID: "0xres1"},
	}}

	got, err := app.NewReservationSource(gw, connectedSession(t), hotels, repo).LoadBookings(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "0xres1", got[0].ID)
	assert.Equal(t, "Ocean View Resort", got[0].HotelName)
	assert.Equal(t, 3, got[0].Nights)
	assert.Equal(t, domain.StatusConfirmed, got[0].Status)
	assert.Equal(t, "local-1", got[1].ID)
}

func TestReservationSource_RepoErrorTolerated(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockGateway(ctrl)
	gw.EXPECT().ListReservations(gomock.Any(), addr).Return(reservationRecords(), nil)
	repo := &listRepo{err: errors.New("db down")}

	got, err := app.NewReservationSource(gw, connectedSession(t), nil, repo).LoadBookings(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "1", got[0].HotelName, "no lookup falls back to the hotel id")
}

func TestReservationSource_GatewayError(t *testing.T) {
	ctrl := gomock.NewController(t)
	gw := mocks.NewMockGateway(ctrl)
	gw.EXPECT().ListReservations(gomock.Any(), addr).Return(nil, domain.ErrNotFound)

	_, err := app.NewReservationSource(gw, connectedSession(t), nil, nil).LoadBookings(context.Background())
	require.ErrorIs(t, err, domain.ErrNotFound)
}
