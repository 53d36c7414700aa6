package mysql_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"suite_hotel/internal/domain"
	mysqlrepo "suite_hotel/internal/storage/mysql"
)

var bookingColumns = []string{
	"id", "guest_address", "hotel_id", "hotel_name", "hotel_image", "room_type",
	"check_in", "check_out", "nights", "guests", "total_price", "status", "transaction_id", "nft_token",
}

func newMock(t *testing.T) (*mysqlrepo.Repo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return mysqlrepo.New(db), mock
}

func sampleBooking() domain.Booking {
	return domain.Booking{
		ID:            "b-1",
		GuestAddress:  "0xabc",
		HotelID:       "0xh1",
		HotelName:     "Sea Breeze",
		HotelImage:    "https://img/1.jpg",
		RoomType:      "Deluxe",
		CheckIn:       "2024-07-15",
		CheckOut:      "2024-07-17",
		Nights:        2,
		Guests:        2,
		TotalPrice:    210,
		Status:        domain.StatusConfirmed,
		TransactionID: "0x1234abcd...ef567890",
	}
}

func TestInsertBooking(t *testing.T) {
	repo, mock := newMock(t)
	b := sampleBooking()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO bookings")).
		WithArgs(b.ID, b.GuestAddress, b.HotelID, b.HotelName, b.HotelImage, b.RoomType,
			time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC), time.Date(2024, 7, 17, 0, 0, 0, 0, time.UTC),
			2, 2, 210.0, "confirmed", b.TransactionID, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.InsertBooking(context.Background(), b))
}

func TestInsertBooking_BadDate(t *testing.T) {
	repo, _ := newMock(t)
	b := sampleBooking()
	b.CheckIn = "15/07/2024"

	err := repo.InsertBooking(context.Background(), b)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateBookingStatus(t *testing.T) {
	repo, mock := newMock(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings")).
		WithArgs("cancelled", "b-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE bookings")).
		WithArgs("cancelled", "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	ctx := context.Background()
	require.NoError(t, repo.UpdateBookingStatus(ctx, "b-1", domain.StatusCancelled))
	require.ErrorIs(t, repo.UpdateBookingStatus(ctx, "missing", domain.StatusCancelled), domain.ErrNotFound)
}

func TestListBookings(t *testing.T) {
	repo, mock := newMock(t)

	rows := sqlmock.NewRows(bookingColumns).
		AddRow("b-1", "0xabc", "0xh1", "Sea Breeze", "https://img/1.jpg", "Deluxe",
			time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC), time.Date(2024, 7, 17, 0, 0, 0, 0, time.UTC),
			2, 2, 210.0, "confirmed", "0x1234abcd...ef567890", nil).
		AddRow("b-2", "0xabc", "0xh2", "Mountain Lodge", "", "Suite",
			time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 8, 4, 0, 0, 0, 0, time.UTC),
			3, 1, 660.0, "cancelled", "0xdead...beef", "nft-7")
	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings")).WithArgs("0xabc").WillReturnRows(rows)

	got, err := repo.ListBookings(context.Background(), "0xabc")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, sampleBooking(), got[0])
	assert.Equal(t, "2024-08-01", got[1].CheckIn)
	assert.Equal(t, domain.StatusCancelled, got[1].Status)
	assert.Equal(t, "nft-7", got[1].NFTToken)
}

func TestListBookings_QueryError(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings")).WillReturnError(errors.New("conn reset"))

	_, err := repo.ListBookings(context.Background(), "0xabc")
	require.Error(t, err)
}

func TestGetBooking_NotFound(t *testing.T) {
	repo, mock := newMock(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM bookings")).WithArgs("nope").
		WillReturnRows(sqlmock.NewRows(bookingColumns))

	_, err := repo.GetBooking(context.Background(), "nope")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
