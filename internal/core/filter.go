package core

import (
	"sort"
	"time"
)

// RangeMode selects the date window a filter applies.
type RangeMode string

const (
	RangeAll    RangeMode = "all"
	RangeWeek   RangeMode = "week"
	RangeMonth  RangeMode = "month"
	RangeCustom RangeMode = "custom"
)

// FilterState carries the user's active selection. An empty Partners
// slice means "all partners". CustomStart and CustomEnd are only read in
// RangeCustom mode; a nil bound is open on that side.
type FilterState struct {
	Partners    []string
	Range       RangeMode
	CustomStart *time.Time
	CustomEnd   *time.Time
}

// Filter applies the partner exclusion, the partner selection and the
// date window to a record slice and returns a new slice sorted by sale
// date descending. The input is never mutated. Records with unparseable
// dates survive RangeAll (sorted to the end) and are dropped by every
// other range mode.
func Filter(sales []Sale, st FilterState, now time.Time) []Sale {
	selected := make(map[string]struct{}, len(st.Partners))
	for _, p := range st.Partners {
		selected[NormalizeName(p)] = struct{}{}
	}

	inRange := rangePredicate(st, now)

	type dated struct {
		sale   Sale
		at     time.Time
		parsed bool
	}
	kept := make([]dated, 0, len(sales))
	for _, s := range sales {
		if IsExcludedPartner(s.PartnerName) {
			continue
		}
		if len(selected) > 0 {
			if _, ok := selected[NormalizeName(s.PartnerName)]; !ok {
				continue
			}
		}
		t, ok := ParseSaleDate(s.SaleDate)
		if st.Range != RangeAll {
			if !ok || !inRange(t) {
				continue
			}
		}
		kept = append(kept, dated{sale: s, at: t, parsed: ok})
	}

	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].parsed != kept[j].parsed {
			return kept[i].parsed
		}
		if !kept[i].parsed {
			return false
		}
		return kept[i].at.After(kept[j].at)
	})

	out := make([]Sale, len(kept))
	for i, d := range kept {
		out[i] = d.sale
	}
	return out
}

func rangePredicate(st FilterState, now time.Time) func(time.Time) bool {
	switch st.Range {
	case RangeWeek:
		start, end := weekBounds(now)
		return func(t time.Time) bool {
			d := truncateToDay(t)
			return !d.Before(start) && d.Before(end)
		}
	case RangeMonth:
		first := time.Date(now.UTC().Year(), now.UTC().Month(), 1, 0, 0, 0, 0, time.UTC)
		return func(t time.Time) bool {
			return !truncateToDay(t).Before(first)
		}
	case RangeCustom:
		return func(t time.Time) bool {
			d := truncateToDay(t)
			if st.CustomStart != nil && d.Before(truncateToDay(*st.CustomStart)) {
				return false
			}
			if st.CustomEnd != nil && d.After(truncateToDay(*st.CustomEnd)) {
				return false
			}
			return true
		}
	default:
		return func(time.Time) bool { return true }
	}
}

// weekBounds returns the Monday-start week containing now as a
// [start, end) pair of UTC day boundaries.
func weekBounds(now time.Time) (time.Time, time.Time) {
	today := truncateToDay(now.UTC())
	offset := int(today.Weekday()) - 1
	if today.Weekday() == time.Sunday {
		offset = 6
	}
	start := today.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 7)
}
