package domain

//go:generate go run go.uber.org/mock/mockgen -source=./external.go -destination=./mocks/external_mock.go -package=mocks

import "context"

// Gateway is the remote hotel/room/reservation API. Records come back as
// decoded JSON objects; the app layer maps them.
type Gateway interface {
	ListHotels(ctx context.Context) ([]map[string]any, error)
	ListRooms(ctx context.Context, hotelID string) ([]map[string]any, error)
	ListReservations(ctx context.Context, guestAddress string) ([]map[string]any, error)
}

// WalletProvider answers balance queries for an address and coin type.
type WalletProvider interface {
	Balance(ctx context.Context, owner, coinType string) (string, error)
}
