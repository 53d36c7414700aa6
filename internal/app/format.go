package app

import (
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// SuiDecimals is the number of decimal places in one SUI (MIST units).
const SuiDecimals = 9

func FormatDate(t time.Time) string { return t.Format("Jan 2, 2006") }

// TruncateAddress keeps the first start and last end characters.
func TruncateAddress(addr string, start, end int) string {
	if addr == "" {
		return ""
	}
	if len(addr) <= start+end {
		return addr
	}
	return addr[:start] + "..." + addr[len(addr)-end:]
}

func CapitalizeFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// FormatBalance renders raw base units with two decimals; bad input is "0".
func FormatBalance(raw string, decimals int) string {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return "0"
	}
	return d.Shift(int32(-decimals)).StringFixed(2)
}
