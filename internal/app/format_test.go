package app_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"suite_hotel/internal/app"
)

func TestTruncateAddress(t *testing.T) {
	a := "0x1234567890abcdef1234567890abcdef"
	assert.Equal(t, "0x1234...cdef", app.TruncateAddress(a, 6, 4))
	assert.Equal(t, "0x12", app.TruncateAddress("0x12", 6, 4))
	assert.Equal(t, "", app.TruncateAddress("", 6, 4))
}

func TestFormatBalance(t *testing.T) {
	assert.Equal(t, "1.50", app.FormatBalance("1500000000", app.SuiDecimals))
	assert.Equal(t, "0.00", app.FormatBalance("0", app.SuiDecimals))
	assert.Equal(t, "123456.79", app.FormatBalance("123456789000000", app.SuiDecimals))
	assert.Equal(t, "0", app.FormatBalance("lots", app.SuiDecimals))
	assert.Equal(t, "0", app.FormatBalance("", app.SuiDecimals))
}

func TestCapitalizeFirst(t *testing.T) {
	assert.Equal(t, "Confirmed", app.CapitalizeFirst("confirmed"))
	assert.Equal(t, "Élan", app.CapitalizeFirst("élan"))
	assert.Equal(t, "", app.CapitalizeFirst(""))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "Jul 15, 2024", app.FormatDate(time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC)))
}
