package app

import (
	"fmt"
	"math"
	"strings"
	"time"

	"suite_hotel/internal/domain"
)

const (
	FeeRate      = 0.10
	DiscountRate = 0.05
)

// BookingDateLayout is the canonical form stored on a Booking.
const BookingDateLayout = "2006-01-02"

var dateLayouts = []string{BookingDateLayout, time.RFC3339, "Jan 2, 2006", "January 2, 2006"}

type Quote struct {
	Nights       int     `json:"nights"`
	NightlyPrice float64 `json:"nightlyPrice"`
	Subtotal     float64 `json:"subtotal"`
	Fees         float64 `json:"fees"`
	Discount     float64 `json:"discount"`
	Total        float64 `json:"total"`
}

// ParseDate accepts the date shapes the booking form produces. Dates without
// a zone are read as UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognised date %q", domain.ErrInvalidInput, s)
}

// CalculateNights is the ceiling of the day difference. A check-out on or
// before check-in gives zero or a negative count; Quote rejects those.
func CalculateNights(checkIn, checkOut string) (int, error) {
	in, err := ParseDate(checkIn)
	if err != nil {
		return 0, err
	}
	out, err := ParseDate(checkOut)
	if err != nil {
		return 0, err
	}
	days := out.Sub(in).Hours() / 24
	return int(math.Ceil(days)), nil
}

func CalculateSubtotal(nightly float64, nights int) float64 { return nightly * float64(nights) }

func CalculateFees(subtotal float64) float64 { return roundHalfUp(subtotal * FeeRate) }

func CalculateDiscount(subtotal float64) float64 { return roundHalfUp(subtotal * DiscountRate) }

func CalculateTotal(subtotal, fees, discount float64) float64 { return subtotal + fees - discount }

// QuoteStay prices a stay and rejects empty or inverted date ranges.
func QuoteStay(nightly float64, checkIn, checkOut string) (Quote, error) {
	nights, err := CalculateNights(checkIn, checkOut)
	if err != nil {
		return Quote{}, err
	}
	if nights <= 0 {
		return Quote{}, fmt.Errorf("%s to %s: %w", checkIn, checkOut, domain.ErrInvalidDateRange)
	}
	if nightly < 0 {
		return Quote{}, fmt.Errorf("%w: negative nightly price", domain.ErrInvalidInput)
	}
	sub := CalculateSubtotal(nightly, nights)
	fees := CalculateFees(sub)
	disc := CalculateDiscount(sub)
	return Quote{
		Nights:       nights,
		NightlyPrice: nightly,
		Subtotal:     sub,
		Fees:         fees,
		Discount:     disc,
		Total:        CalculateTotal(sub, fees, disc),
	}, nil
}

// roundHalfUp rounds .5 towards +Inf.
func roundHalfUp(x float64) float64 { return math.Floor(x + 0.5) }
