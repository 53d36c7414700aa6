package app

import (
	"fmt"
	"sort"
	"strings"

	"suite_hotel/internal/domain"
)

type PriceBucket string

const (
	PriceAny    PriceBucket = "Any"
	PriceLow    PriceBucket = "Low"    // <= 150
	PriceMedium PriceBucket = "Medium" // 150 < p <= 350
	PriceHigh   PriceBucket = "High"   // > 350
)

type SortKey string

const (
	SortRecommended SortKey = "recommended"
	SortPriceLow    SortKey = "price-low"
	SortPriceHigh   SortKey = "price-high"
	SortRating      SortKey = "rating"
)

type HotelFilter struct {
	Search    string
	Price     PriceBucket
	Amenities []string
}

func ParsePriceBucket(s string) (PriceBucket, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "any":
		return PriceAny, nil
	case "low":
		return PriceLow, nil
	case "medium":
		return PriceMedium, nil
	case "high":
		return PriceHigh, nil
	}
	return "", fmt.Errorf("%w: unknown price bucket %q", domain.ErrInvalidInput, s)
}

func ParseSortKey(s string) (SortKey, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "recommended":
		return SortRecommended, nil
	case "price-low":
		return SortPriceLow, nil
	case "price-high":
		return SortPriceHigh, nil
	case "rating":
		return SortRating, nil
	}
	return "", fmt.Errorf("%w: unknown sort key %q", domain.ErrInvalidInput, s)
}

func (b PriceBucket) Contains(price float64) bool {
	switch b {
	case PriceLow:
		return price <= 150
	case PriceMedium:
		return price > 150 && price <= 350
	case PriceHigh:
		return price > 350
	}
	return true
}

// Matches applies search, price bucket and amenities conjunctively.
func (f HotelFilter) Matches(h domain.Hotel) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		if !strings.Contains(strings.ToLower(h.Name), q) && !strings.Contains(strings.ToLower(h.Location), q) {
			return false
		}
	}
	if !f.Price.Contains(h.Price) {
		return false
	}
	if len(f.Amenities) > 0 {
		have := make(map[string]struct{}, len(h.Amenities))
		for _, a := range h.Amenities {
			have[amenityKey(a)] = struct{}{}
		}
		for _, want := range f.Amenities {
			if _, ok := have[amenityKey(want)]; !ok {
				return false
			}
		}
	}
	return true
}

// FilterHotels returns the matching hotels in input order.
func FilterHotels(hotels []domain.Hotel, f HotelFilter) []domain.Hotel {
	out := make([]domain.Hotel, 0, len(hotels))
	for _, h := range hotels {
		if f.Matches(h) {
			out = append(out, h)
		}
	}
	return out
}

// SortHotels returns a stably sorted copy; ties keep input order.
func SortHotels(hotels []domain.Hotel, key SortKey) []domain.Hotel {
	out := make([]domain.Hotel, len(hotels))
	copy(out, hotels)
	var less func(i, j int) bool
	switch key {
	case SortPriceLow:
		less = func(i, j int) bool { return out[i].Price < out[j].Price }
	case SortPriceHigh:
		less = func(i, j int) bool { return out[i].Price > out[j].Price }
	case SortRating:
		less = func(i, j int) bool { return out[i].Rating > out[j].Rating }
	default:
		return out
	}
	sort.SliceStable(out, less)
	return out
}

// amenityKey folds "Free WiFi" and "free-wifi" to the same key.
func amenityKey(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Join(strings.FieldsFunc(s, func(r rune) bool { return r == ' ' || r == '-' || r == '_' }), "-")
}
