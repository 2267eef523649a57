// Package report builds the exportable per-partner revenue report from
// a filtered record set.
package report

import (
	"context"
	"fmt"
	"time"

	"vendas/internal/core"
)

// Row is one partner line of the report.
type Row struct {
	Partner      string `json:"partner"`
	TotalCents   int64  `json:"totalCents"`
	Count        int    `json:"count"`
	AverageCents int64  `json:"averageCents"`
}

// Report is a point-in-time export of the filtered dashboard.
type Report struct {
	GeneratedAt  time.Time    `json:"generatedAt"`
	PeriodLabel  string       `json:"periodLabel"`
	PartnerLabel string       `json:"partnerLabel"`
	Summary      core.Summary `json:"summary"`
	Rows         []Row        `json:"rows"`
}

// Writer exports a report somewhere and returns an opaque reference to
// where it landed (filename, sheet range).
type Writer interface {
	Export(ctx context.Context, r Report) (ref string, err error)
}

// Build derives the report from an already-filtered record set and the
// filter state that produced it.
func Build(sales []core.Sale, st core.FilterState, now time.Time) Report {
	r := Report{
		GeneratedAt:  now,
		PeriodLabel:  periodLabel(st),
		PartnerLabel: partnerLabel(st),
		Summary:      core.Summarize(sales),
	}

	for _, t := range core.PartnerTotals(sales) {
		row := Row{
			Partner:    t.Label,
			TotalCents: t.Cents,
			Count:      t.Count,
		}
		if t.Count > 0 {
			row.AverageCents = t.Cents / int64(t.Count)
		}
		r.Rows = append(r.Rows, row)
	}
	return r
}

func periodLabel(st core.FilterState) string {
	switch st.Range {
	case core.RangeWeek:
		return "Esta Semana"
	case core.RangeMonth:
		return "Este Mês"
	case core.RangeCustom:
		return "Personalizado"
	default:
		return "Período Completo"
	}
}

func partnerLabel(st core.FilterState) string {
	switch len(st.Partners) {
	case 0:
		return "Todos os Parceiros"
	case 1:
		return st.Partners[0]
	default:
		return fmt.Sprintf("%d Parceiros", len(st.Partners))
	}
}
