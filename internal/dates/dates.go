// Package dates renders feed publish dates for Turkish readers.
package dates

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/araddon/dateparse"
	"github.com/bilgisen/haberci/internal/logger"
)

var turkishMonths = [...]string{
	time.January:   "Ocak",
	time.February:  "Şubat",
	time.March:     "Mart",
	time.April:     "Nisan",
	time.May:       "Mayıs",
	time.June:      "Haziran",
	time.July:      "Temmuz",
	time.August:    "Ağustos",
	time.September: "Eylül",
	time.October:   "Ekim",
	time.November:  "Kasım",
	time.December:  "Aralık",
}

// TurkishMonth returns the Turkish name of m
func TurkishMonth(m time.Month) string {
	if m < time.January || m > time.December {
		return m.String()
	}
	return turkishMonths[m]
}

// Format renders t as "5 Mart 2024, 14:30" in t's own location
func Format(t time.Time) string {
	return fmt.Sprintf("%d %s %d, %s", t.Day(), TurkishMonth(t.Month()), t.Year(), t.Format("15:04"))
}

// FormatPublishDate parses a raw feed date and renders it with Format.
// ok is false only when raw is empty. A date that cannot be parsed is
// logged and handed back unmodified, so a non-empty input never yields "".
func FormatPublishDate(raw string) (formatted string, ok bool) {
	if raw == "" {
		return "", false
	}

	cleaned := strings.TrimFunc(raw, func(r rune) bool {
		return r == '\uFEFF' || unicode.IsSpace(r)
	})

	t, err := dateparse.ParseAny(cleaned)
	if err != nil {
		logger.Get().Warn().
			Err(err).
			Str("raw_date", raw).
			Msg("Could not parse publish date, keeping raw value")
		return raw, true
	}

	return Format(t), true
}
