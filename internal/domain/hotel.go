package domain

type Hotel struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Rating      float64  `json:"rating"` // 0..5
	ReviewCount int      `json:"reviewCount"`
	Price       float64  `json:"price"` // per night, gateway currency unit
	Images      []string `json:"images"`
	Amenities   []string `json:"amenities"`
	Location    string   `json:"location"`
	Reviews     []Review `json:"reviews"`

	// Placeholders lists the fields that were filled with stub values because
	// the gateway does not provide them yet.
	Placeholders []string `json:"placeholders,omitempty"`
}

// Clone returns a copy that shares no slices with h.
func (h Hotel) Clone() Hotel {
	out := h
	out.Images = cloneStrings(h.Images)
	out.Amenities = cloneStrings(h.Amenities)
	out.Placeholders = cloneStrings(h.Placeholders)
	if h.Reviews != nil {
		out.Reviews = make([]Review, len(h.Reviews))
		for i, r := range h.Reviews {
			out.Reviews[i] = r.Clone()
		}
	}
	return out
}

// IsPlaceholder reports whether field was stubbed by the transformation step.
func (h Hotel) IsPlaceholder(field string) bool {
	for _, p := range h.Placeholders {
		if p == field {
			return true
		}
	}
	return false
}

func CloneHotels(in []Hotel) []Hotel {
	if in == nil {
		return nil
	}
	out := make([]Hotel, len(in))
	for i, h := range in {
		out[i] = h.Clone()
	}
	return out
}

// Room is the gateway's room record; it is only used for pricing and listing.
type Room struct {
	ID          string  `json:"id"`
	HotelID     string  `json:"hotelId"`
	PricePerDay float64 `json:"pricePerDay"`
	Booked      bool    `json:"booked"`
	Image       string  `json:"image"`
}

// Reservation is the gateway's on-chain reservation record.
type Reservation struct {
	ID           string  `json:"id"`
	RoomID       string  `json:"roomId"`
	HotelID      string  `json:"hotelId"`
	GuestAddress string  `json:"guestAddress"`
	StartDate    int64   `json:"startDate"` // unix ms
	EndDate      int64   `json:"endDate"`   // unix ms
	TotalCost    float64 `json:"totalCost"`
	Active       bool    `json:"active"`
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
