package report

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"vendas/internal/core"
)

func sampleSales() []core.Sale {
	return []core.Sale{
		{ID: "1", PartnerName: "Alfa", ValueCents: 1000, SaleDate: "2025-01-10"},
		{ID: "2", PartnerName: "Alfa", ValueCents: 2000, SaleDate: "2025-01-11"},
		{ID: "3", PartnerName: "Beta", ValueCents: 5000, SaleDate: "2025-01-12"},
	}
}

func TestBuild(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	r := Build(sampleSales(), core.FilterState{Range: core.RangeAll}, now)

	if r.PeriodLabel != "Período Completo" {
		t.Fatalf("period label %q", r.PeriodLabel)
	}
	if r.PartnerLabel != "Todos os Parceiros" {
		t.Fatalf("partner label %q", r.PartnerLabel)
	}
	if r.Summary.TotalCents != 8000 || r.Summary.Count != 3 {
		t.Fatalf("summary %+v", r.Summary)
	}
	if len(r.Rows) != 2 {
		t.Fatalf("rows %v", r.Rows)
	}
	if r.Rows[0].Partner != "Beta" || r.Rows[0].TotalCents != 5000 || r.Rows[0].AverageCents != 5000 {
		t.Fatalf("row %+v", r.Rows[0])
	}
	if r.Rows[1].Partner != "Alfa" || r.Rows[1].AverageCents != 1500 {
		t.Fatalf("row %+v", r.Rows[1])
	}
}

func TestBuildLabels(t *testing.T) {
	cases := []struct {
		st      core.FilterState
		period  string
		partner string
	}{
		{core.FilterState{Range: core.RangeWeek}, "Esta Semana", "Todos os Parceiros"},
		{core.FilterState{Range: core.RangeMonth, Partners: []string{"Alfa"}}, "Este Mês", "Alfa"},
		{core.FilterState{Range: core.RangeCustom, Partners: []string{"Alfa", "Beta"}}, "Personalizado", "2 Parceiros"},
	}
	for _, tc := range cases {
		r := Build(nil, tc.st, time.Now())
		if r.PeriodLabel != tc.period || r.PartnerLabel != tc.partner {
			t.Fatalf("got (%q, %q), want (%q, %q)", r.PeriodLabel, r.PartnerLabel, tc.period, tc.partner)
		}
	}
}

func TestCSVExport(t *testing.T) {
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	r := Build(sampleSales(), core.FilterState{Range: core.RangeAll}, now)

	var buf bytes.Buffer
	ref, err := NewCSVWriter(&buf).Export(context.Background(), r)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if ref != "relatorio-2025-01-15.csv" {
		t.Fatalf("ref %q", ref)
	}

	out := buf.String()
	for _, want := range []string{
		"Relatório de Vendas",
		"Período;Período Completo",
		"Total;R$ 80,00",
		"Parceiro;Faturamento;Vendas;Ticket Médio",
		"Beta;R$ 50,00;1;R$ 50,00",
		"Alfa;R$ 30,00;2;R$ 15,00",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("csv missing %q:\n%s", want, out)
		}
	}
}

func TestCSVExportEmptyReport(t *testing.T) {
	r := Build(nil, core.FilterState{Range: core.RangeAll}, time.Now())

	var buf bytes.Buffer
	if _, err := NewCSVWriter(&buf).Export(context.Background(), r); err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(buf.String(), "Vendas;0") {
		t.Fatalf("csv missing zero count:\n%s", buf.String())
	}
}
