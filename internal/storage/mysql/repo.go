package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"suite_hotel/internal/domain"
)

const dateLayout = "2006-01-02"

func valStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// valDate converts a YYYY-MM-DD string to a DATE parameter.
func valDate(s string) (any, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q", domain.ErrInvalidInput, s)
	}
	return t, nil
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) InsertBooking(ctx context.Context, b domain.Booking) error {
	in, err := valDate(b.CheckIn)
	if err != nil {
		return err
	}
	out, err := valDate(b.CheckOut)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, insertBookingSQL,
		b.ID,
		b.GuestAddress,
		b.HotelID,
		b.HotelName,
		b.HotelImage,
		b.RoomType,
		in,
		out,
		b.Nights,
		b.Guests,
		b.TotalPrice,
		string(b.Status),
		b.TransactionID,
		valStr(b.NFTToken),
	)
	return err
}

// UpdateBookingStatus returns domain.ErrNotFound when no row has the id.
func (r *Repo) UpdateBookingStatus(ctx context.Context, id string, status domain.BookingStatus) error {
	res, err := r.db.ExecContext(ctx, updateBookingStatusSQL, string(status), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListBookings returns a guest's bookings in creation order.
func (r *Repo) ListBookings(ctx context.Context, guestAddress string) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, listBookingsSQL, guestAddress)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []domain.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repo) GetBooking(ctx context.Context, id string) (domain.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx, getBookingSQL, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Booking{}, domain.ErrNotFound
	}
	return b, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBooking(s scanner) (domain.Booking, error) {
	var (
		b       domain.Booking
		in, out time.Time
		status  string
		nft     sql.NullString
	)
	if err := s.Scan(
		&b.ID, &b.GuestAddress, &b.HotelID, &b.HotelName, &b.HotelImage, &b.RoomType,
		&in, &out, &b.Nights, &b.Guests, &b.TotalPrice, &status, &b.TransactionID, &nft,
	); err != nil {
		return domain.Booking{}, err
	}
	b.CheckIn = in.Format(dateLayout)
	b.CheckOut = out.Format(dateLayout)
	b.Status = domain.BookingStatus(status)
	b.NFTToken = nft.String
	return b, nil
}
