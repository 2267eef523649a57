package core

import (
	"sort"
	"strings"
	"time"
)

// Summary holds the headline figures for a filtered record set. All
// money values are integer cents.
type Summary struct {
	TotalCents   int64 `json:"totalCents"`
	Count        int   `json:"count"`
	AverageCents int64 `json:"averageCents"`
}

// Total pairs a display label with an accumulated value.
type Total struct {
	Label string `json:"label"`
	Cents int64  `json:"cents"`
	Count int    `json:"count"`
}

// DayTotal is one point of the daily revenue series.
type DayTotal struct {
	Day   string `json:"day"`
	Cents int64  `json:"cents"`
	Count int    `json:"count"`
}

// Summarize computes total, count and average over a record slice. The
// average of an empty slice is zero, never a division fault.
func Summarize(sales []Sale) Summary {
	var s Summary
	for _, sale := range sales {
		s.TotalCents += sale.ValueCents
		s.Count++
	}
	if s.Count > 0 {
		s.AverageCents = s.TotalCents / int64(s.Count)
	}
	return s
}

// PartnerTotals groups revenue by partner name, descending by value.
// Records with an empty partner name fall into the "N/A" bucket.
func PartnerTotals(sales []Sale) []Total {
	return groupTotals(sales, func(s Sale) string {
		name := strings.TrimSpace(s.PartnerName)
		if name == "" {
			return "N/A"
		}
		return name
	}, byCentsDesc, 0)
}

// ItemTotals groups revenue by item name, descending by value, keeping
// the top ten buckets. Empty item names group under "Desconhecido".
func ItemTotals(sales []Sale) []Total {
	return groupTotals(sales, func(s Sale) string {
		name := strings.TrimSpace(s.ItemName)
		if name == "" {
			return "Desconhecido"
		}
		return name
	}, byCentsDesc, 10)
}

// ActivePartners counts distinct non-empty partner names. Names are
// compared after trimming only; the dashboard exclusion does not apply
// here, so the figure reflects everything the filter let through.
func ActivePartners(sales []Sale) int {
	seen := make(map[string]struct{})
	for _, s := range sales {
		name := strings.TrimSpace(s.PartnerName)
		if name == "" {
			continue
		}
		seen[name] = struct{}{}
	}
	return len(seen)
}

// BrandBreakdown counts HVAC records per brand, descending by count,
// top ten. Non-HVAC records are excluded.
func BrandBreakdown(sales []Sale) []Total {
	counts := make(map[string]*Total)
	for _, s := range sales {
		brand, ok := ClassifyBrand(s.ItemName)
		if !ok {
			continue
		}
		t := counts[brand]
		if t == nil {
			t = &Total{Label: brand}
			counts[brand] = t
		}
		t.Cents += s.ValueCents
		t.Count++
	}
	return rank(counts, byCountDesc, 10)
}

// TypeBreakdown groups records by machine type, descending by count.
// The non-HVAC bucket is dropped so the chart only shows equipment
// categories.
func TypeBreakdown(sales []Sale) []Total {
	counts := make(map[string]*Total)
	for _, s := range sales {
		label := ClassifyMachineType(s.ItemName)
		if label == TypeOther {
			continue
		}
		t := counts[label]
		if t == nil {
			t = &Total{Label: label}
			counts[label] = t
		}
		t.Cents += s.ValueCents
		t.Count++
	}
	return rank(counts, byCountDesc, 0)
}

// PaymentBreakdown groups records by canonical payment method,
// descending by occurrence count.
func PaymentBreakdown(sales []Sale) []Total {
	return groupTotals(sales, func(s Sale) string {
		label := ClassifyPayment(s.PaymentDetail)
		if strings.TrimSpace(label) == "" {
			return "N/A"
		}
		return label
	}, byCountDesc, 0)
}

// HourlyCounts buckets record counts by UTC hour of day. Records with
// unparseable dates are skipped.
func HourlyCounts(sales []Sale) [24]int {
	var hours [24]int
	for _, s := range sales {
		t, ok := ParseSaleDate(s.SaleDate)
		if !ok {
			continue
		}
		hours[t.UTC().Hour()]++
	}
	return hours
}

// DailySeries builds the revenue-per-day series in ascending day order.
// Unparseable dates and implausible years are skipped so one bad record
// cannot stretch the chart axis back to year zero.
func DailySeries(sales []Sale) []DayTotal {
	byDay := make(map[string]*DayTotal)
	for _, s := range sales {
		t, ok := ParseSaleDate(s.SaleDate)
		if !ok || t.Year() < 2000 {
			continue
		}
		key := DayKey(t)
		d := byDay[key]
		if d == nil {
			d = &DayTotal{Day: key}
			byDay[key] = d
		}
		d.Cents += s.ValueCents
		d.Count++
	}
	out := make([]DayTotal, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
	return out
}

// StateTotals groups revenue by the partner's UF, descending by value,
// top ten. Records without a state group under "N/A".
func StateTotals(sales []Sale) []Total {
	return groupTotals(sales, func(s Sale) string {
		uf := strings.ToUpper(strings.TrimSpace(s.State))
		if uf == "" {
			return "N/A"
		}
		return uf
	}, byCentsDesc, 10)
}

// LatestSale returns the most recent record by parsed sale date, or
// false when no record carries a parseable date.
func LatestSale(sales []Sale) (Sale, bool) {
	var (
		best   Sale
		bestAt time.Time
		found  bool
	)
	for _, s := range sales {
		t, ok := ParseSaleDate(s.SaleDate)
		if !ok {
			continue
		}
		if !found || t.After(bestAt) {
			best, bestAt, found = s, t, true
		}
	}
	return best, found
}

func groupTotals(sales []Sale, key func(Sale) string, less func(a, b *Total) bool, limit int) []Total {
	buckets := make(map[string]*Total)
	for _, s := range sales {
		label := key(s)
		t := buckets[label]
		if t == nil {
			t = &Total{Label: label}
			buckets[label] = t
		}
		t.Cents += s.ValueCents
		t.Count++
	}
	return rank(buckets, less, limit)
}

func rank(buckets map[string]*Total, less func(a, b *Total) bool, limit int) []Total {
	out := make([]Total, 0, len(buckets))
	for _, t := range buckets {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Cents == out[j].Cents && out[i].Count == out[j].Count {
			return out[i].Label < out[j].Label
		}
		return less(&out[i], &out[j])
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func byCentsDesc(a, b *Total) bool {
	if a.Cents != b.Cents {
		return a.Cents > b.Cents
	}
	return a.Label < b.Label
}

func byCountDesc(a, b *Total) bool {
	if a.Count != b.Count {
		return a.Count > b.Count
	}
	return a.Label < b.Label
}
