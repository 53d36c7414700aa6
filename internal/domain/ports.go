package domain

import "context"

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// KeyValueStore is durable storage for small blobs. Get returns ErrNotFound
// when the key is absent.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

type BookingRepository interface {
	InsertBooking(ctx context.Context, b Booking) error
	UpdateBookingStatus(ctx context.Context, id string, status BookingStatus) error
	ListBookings(ctx context.Context, guestAddress string) ([]Booking, error)
	GetBooking(ctx context.Context, id string) (Booking, error)
}
