package domain

type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusPending   BookingStatus = "pending"
	StatusCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case StatusConfirmed, StatusPending, StatusCancelled:
		return true
	}
	return false
}

// Booking carries a snapshot of the hotel at booking time; later catalog
// changes never propagate into it.
type Booking struct {
	ID            string        `json:"id"`
	GuestAddress  string        `json:"guestAddress,omitempty"`
	HotelID       string        `json:"hotelId"`
	HotelName     string        `json:"hotelName"`
	HotelImage    string        `json:"hotelImage"`
	RoomType      string        `json:"roomType"`
	CheckIn       string        `json:"checkIn"`
	CheckOut      string        `json:"checkOut"`
	Nights        int           `json:"nights"`
	Guests        int           `json:"guests"`
	TotalPrice    float64       `json:"totalPrice"`
	Status        BookingStatus `json:"status"`
	TransactionID string        `json:"transactionId"`
	NFTToken      string        `json:"nftToken,omitempty"`
}

// BookingDraft is a Booking before the store assigns id, status and
// transaction reference.
type BookingDraft struct {
	GuestAddress string  `json:"guestAddress,omitempty"`
	HotelID      string  `json:"hotelId" validate:"required"`
	HotelName    string  `json:"hotelName" validate:"required"`
	HotelImage   string  `json:"hotelImage"`
	RoomType     string  `json:"roomType" validate:"required"`
	CheckIn      string  `json:"checkIn" validate:"required"`
	CheckOut     string  `json:"checkOut" validate:"required"`
	Nights       int     `json:"nights" validate:"min=1"`
	Guests       int     `json:"guests" validate:"min=1"`
	TotalPrice   float64 `json:"totalPrice" validate:"gte=0"`
	NFTToken     string  `json:"nftToken,omitempty"`
}
