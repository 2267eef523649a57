package core

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// The backend mixes YYYY-MM-DD and DD-MM-YYYY spellings, with or without a
// time component and with arbitrary trailing content ("+00", timezone
// suffixes). Both patterns anchor at the start and ignore the tail.
var (
	ymdPattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})(?:[ T](\d{2}):(\d{2}):(\d{2}))?`)
	dmyPattern = regexp.MustCompile(`^(\d{2})-(\d{2})-(\d{4})(?:[ T](\d{2}):(\d{2}):(\d{2}))?`)
)

// fallbackLayouts cover occasional well-formed strings that neither pattern
// matches. Tried in order, all interpreted as UTC.
var fallbackLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"02/01/2006 15:04:05",
	"02/01/2006",
}

// ParseSaleDate turns a raw sale-date string into a UTC instant. It never
// panics; the second return value reports whether parsing succeeded.
//
// Calendar fields are always interpreted in UTC so the result does not
// depend on the host timezone. After construction the year/month/day are
// re-extracted and compared against the parsed input, so silently
// overflowing dates ("2024-02-30" becoming March 1st) are rejected.
// A missing time component defaults to midnight.
func ParseSaleDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}

	var year, month, day, hour, minute, second int
	parts := ymdPattern.FindStringSubmatch(raw)
	if parts != nil {
		year = atoi(parts[1])
		month = atoi(parts[2])
		day = atoi(parts[3])
	} else {
		parts = dmyPattern.FindStringSubmatch(raw)
		if parts != nil {
			day = atoi(parts[1])
			month = atoi(parts[2])
			year = atoi(parts[3])
		}
	}

	if parts == nil {
		for _, layout := range fallbackLayouts {
			if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
				return t.UTC(), true
			}
		}
		return time.Time{}, false
	}

	hour = atoi(parts[4])
	minute = atoi(parts[5])
	second = atoi(parts[6])

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)

	// time.Date normalizes out-of-range fields instead of failing, so an
	// impossible day quietly rolls into the next month. Reject those.
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}

	return t, true
}

// FormatSaleDate renders a sale date for display in dd/mm/yyyy hh:mm form.
// Unparseable input renders as "Data Inválida". A successfully parsed date
// with a year before 2000 is not a parse failure, but the record is clearly
// inconsistent with a real sale; it renders as "Data Inconsistente".
func FormatSaleDate(raw string) string {
	t, ok := ParseSaleDate(raw)
	if !ok {
		return "Data Inválida"
	}
	if t.Year() < 2000 {
		return "Data Inconsistente"
	}
	return t.Format("02/01/2006 15:04")
}

// DayKey returns the YYYY-MM-DD key of an instant's UTC day.
func DayKey(t time.Time) string {
	t = t.UTC()
	return fmt.Sprintf("%04d-%02d-%02d", t.Year(), int(t.Month()), t.Day())
}

// truncateToDay drops the time-of-day component, keeping the UTC day.
func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
