package app

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"suite_hotel/internal/domain"
)

/********** alias registries (single source of truth) **********/

var hotelAliases = map[string][]string{
	"id":       {"objectId", "object_id", "id", "hotel_id"},
	"name":     {"name", "hotel_name"},
	"location": {"physical_address", "address", "location", "location.address"},
	"owner":    {"owner", "owner_address"},
	"treasury": {"treasury", "balance"},
}

var roomAliases = map[string][]string{
	"id":       {"objectId", "object_id", "id"},
	"hotel_id": {"hotel_id", "hotelId"},
	"price":    {"price_per_day", "pricePerDay", "price"},
	"booked":   {"is_booked", "isBooked", "booked"},
	"image":    {"image_blob_id", "image", "image_url"},
}

var reservationAliases = map[string][]string{
	"id":       {"objectId", "object_id", "id"},
	"room_id":  {"room_id", "roomId"},
	"hotel_id": {"hotel_id", "hotelId"},
	"guest":    {"guest_address", "guestAddress"},
	"start":    {"start_date", "startDate"},
	"end":      {"end_date", "endDate"},
	"cost":     {"total_cost", "totalCost"},
	"active":   {"is_active", "isActive", "active"},
}

/********** placeholder values for fields the gateway lacks **********/

const (
	PlaceholderImage       = "https://images.unsplash.com/photo-1566073771259-6a8506099945?ixlib=rb-4.0.3&auto=format&fit=crop&w=1000&q=80"
	placeholderRating      = 4.5
	placeholderPrice       = 200
	placeholderReviewCount = 0
)

var placeholderAmenities = []string{"Free WiFi", "Pool", "Parking"}

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns string at path or "". Numbers are rendered without exponent.
func lookupStr(m map[string]any, path string) string {
	switch v := lookupAny(m, path).(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

// firstNonEmptyAlias: first non-empty string for a named alias set.
func firstNonEmptyAlias(m map[string]any, aliases map[string][]string, key string) string {
	for _, p := range aliases[key] {
		if s := strings.TrimSpace(lookupStr(m, p)); s != "" {
			return s
		}
	}
	return ""
}

// getFloatFlexible: number from several paths (float64/int/string like "8,0").
func getFloatFlexible(m map[string]any, paths ...string) *float64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case int64:
			f := float64(v)
			return &f
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

// getBoolFlexible: bool from several paths (bool/"true"/1).
func getBoolFlexible(m map[string]any, paths ...string) bool {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case bool:
			return v
		case float64:
			return v != 0
		case string:
			if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
				return b
			}
		}
	}
	return false
}

/********** hotel mapper **********/

// mapHotel turns one gateway hotel record into the display model. Fields the
// gateway does not carry are filled with placeholders and listed on the
// result. ok is false when the record has no id.
func mapHotel(p map[string]any) (domain.Hotel, bool) {
	id := firstNonEmptyAlias(p, hotelAliases, "id")
	if id == "" {
		return domain.Hotel{}, false
	}
	name := firstNonEmptyAlias(p, hotelAliases, "name")
	location := firstNonEmptyAlias(p, hotelAliases, "location")

	h := domain.Hotel{
		ID:       id,
		Name:     name,
		Location: location,
		Reviews:  []domain.Review{},
	}
	if h.Name == "" {
		h.Name = id
		h.Placeholders = append(h.Placeholders, "name")
	}

	// 1) description: the gateway only knows the address
	if location != "" {
		h.Description = "Located at " + location
	}
	h.Placeholders = append(h.Placeholders, "description")

	// 2) rating / reviews: no source yet
	h.Rating = placeholderRating
	h.ReviewCount = placeholderReviewCount
	h.Placeholders = append(h.Placeholders, "rating", "reviewCount")

	// 3) price: replaced later by room prices when rooms can be loaded
	if f := getFloatFlexible(p, "price", "price_per_day", "min_price"); f != nil {
		h.Price = *f
	} else {
		h.Price = placeholderPrice
		h.Placeholders = append(h.Placeholders, "price")
	}

	// 4) media and amenities
	h.Images = []string{PlaceholderImage}
	h.Amenities = append([]string(nil), placeholderAmenities...)
	h.Placeholders = append(h.Placeholders, "images", "amenities")

	return h, true
}

func mapHotels(in []map[string]any) []domain.Hotel {
	out := make([]domain.Hotel, 0, len(in))
	for _, r := range in {
		h, ok := mapHotel(r)
		if !ok {
			log.Warn().Str("context", "mapHotels").Msg("skipping gateway hotel without id")
			continue
		}
		out = append(out, h)
	}
	return out
}

/********** room mapper **********/

func mapRooms(hotelID string, in []map[string]any) []domain.Room {
	out := make([]domain.Room, 0, len(in))
	for _, r := range in {
		rm := domain.Room{
			ID:      firstNonEmptyAlias(r, roomAliases, "id"),
			HotelID: firstNonEmptyAlias(r, roomAliases, "hotel_id"),
			Booked:  getBoolFlexible(r, roomAliases["booked"]...),
			Image:   firstNonEmptyAlias(r, roomAliases, "image"),
		}
		if rm.ID == "" {
			log.Warn().Str("context", "mapRooms").Str("hotel_id", hotelID).Msg("skipping room without id")
			continue
		}
		if rm.HotelID == "" {
			rm.HotelID = hotelID
		}
		if f := getFloatFlexible(r, roomAliases["price"]...); f != nil {
			rm.PricePerDay = *f
		}
		out = append(out, rm)
	}
	return out
}

// nightlyFromRooms is the cheapest unbooked room, or the cheapest room when
// all are booked. ok is false when no room has a positive price.
func nightlyFromRooms(rooms []domain.Room) (float64, bool) {
	best, bestAny := math.Inf(1), math.Inf(1)
	for _, r := range rooms {
		if r.PricePerDay <= 0 {
			continue
		}
		bestAny = math.Min(bestAny, r.PricePerDay)
		if !r.Booked {
			best = math.Min(best, r.PricePerDay)
		}
	}
	switch {
	case !math.IsInf(best, 1):
		return best, true
	case !math.IsInf(bestAny, 1):
		return bestAny, true
	}
	return 0, false
}

// withRoomPrice sets the nightly price from rooms and drops the price placeholder.
func withRoomPrice(h domain.Hotel, rooms []domain.Room) domain.Hotel {
	p, ok := nightlyFromRooms(rooms)
	if !ok {
		return h
	}
	h.Price = p
	kept := h.Placeholders[:0:0]
	for _, f := range h.Placeholders {
		if f != "price" {
			kept = append(kept, f)
		}
	}
	h.Placeholders = kept
	if img := firstRoomImage(rooms); img != "" && h.IsPlaceholder("images") {
		h.Images = []string{img}
	}
	return h
}

func firstRoomImage(rooms []domain.Room) string {
	for _, r := range rooms {
		if strings.HasPrefix(r.Image, "http") {
			return r.Image
		}
	}
	return ""
}

/********** reservation mapper **********/

func mapReservations(in []map[string]any) []domain.Reservation {
	out := make([]domain.Reservation, 0, len(in))
	for _, r := range in {
		rv := domain.Reservation{
			ID:           firstNonEmptyAlias(r, reservationAliases, "id"),
			RoomID:       firstNonEmptyAlias(r, reservationAliases, "room_id"),
			HotelID:      firstNonEmptyAlias(r, reservationAliases, "hotel_id"),
			GuestAddress: firstNonEmptyAlias(r, reservationAliases, "guest"),
			Active:       getBoolFlexible(r, reservationAliases["active"]...),
		}
		if rv.ID == "" {
			log.Warn().Str("context", "mapReservations").Msg("skipping reservation without id")
			continue
		}
		if f := getFloatFlexible(r, reservationAliases["start"]...); f != nil {
			rv.StartDate = int64(*f)
		}
		if f := getFloatFlexible(r, reservationAliases["end"]...); f != nil {
			rv.EndDate = int64(*f)
		}
		if f := getFloatFlexible(r, reservationAliases["cost"]...); f != nil {
			rv.TotalCost = *f
		}
		out = append(out, rv)
	}
	return out
}

// HotelLookup is the read accessor a reservation needs to denormalise hotel
// fields; *HotelStore satisfies it.
type HotelLookup interface {
	GetHotelByID(id string) (domain.Hotel, bool)
}

// reservationToBooking snapshots hotel fields from the lookup at mapping time.
func reservationToBooking(rv domain.Reservation, hotels HotelLookup) domain.Booking {
	b := domain.Booking{
		ID:            rv.ID,
		GuestAddress:  rv.GuestAddress,
		HotelID:       rv.HotelID,
		HotelName:     rv.HotelID,
		HotelImage:    PlaceholderImage,
		RoomType:      "Room " + rv.RoomID,
		CheckIn:       msToDate(rv.StartDate),
		CheckOut:      msToDate(rv.EndDate),
		Guests:        1,
		TotalPrice:    rv.TotalCost,
		Status:        domain.StatusCancelled,
		TransactionID: rv.ID,
	}
	if rv.RoomID == "" {
		b.RoomType = "Standard Room"
	}
	if rv.Active {
		b.Status = domain.StatusConfirmed
	}
	if hotels != nil {
		if h, ok := hotels.GetHotelByID(rv.HotelID); ok {
			b.HotelName = h.Name
			if len(h.Images) > 0 {
				b.HotelImage = h.Images[0]
			}
		}
	}
	if n, err := CalculateNights(b.CheckIn, b.CheckOut); err == nil {
		b.Nights = n
	}
	return b
}

func msToDate(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02")
}

