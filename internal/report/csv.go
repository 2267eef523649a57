package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"vendas/internal/core"
)

// CSVWriter renders reports as semicolon-separated CSV, the dialect
// spreadsheet imports expect alongside comma decimal values.
type CSVWriter struct {
	out io.Writer
}

func NewCSVWriter(out io.Writer) *CSVWriter {
	return &CSVWriter{out: out}
}

func (w *CSVWriter) Export(ctx context.Context, r Report) (string, error) {
	cw := csv.NewWriter(w.out)
	cw.Comma = ';'

	header := [][]string{
		{"Relatório de Vendas"},
		{"Gerado em", r.GeneratedAt.Format("02/01/2006 15:04")},
		{"Período", r.PeriodLabel},
		{"Parceiros", r.PartnerLabel},
		{"Total", core.FormatBRL(r.Summary.TotalCents)},
		{"Vendas", strconv.Itoa(r.Summary.Count)},
		{"Ticket Médio", core.FormatBRL(r.Summary.AverageCents)},
		{},
		{"Parceiro", "Faturamento", "Vendas", "Ticket Médio"},
	}
	for _, row := range header {
		if err := cw.Write(row); err != nil {
			return "", fmt.Errorf("write csv header: %w", err)
		}
	}

	for _, row := range r.Rows {
		record := []string{
			row.Partner,
			core.FormatBRL(row.TotalCents),
			strconv.Itoa(row.Count),
			core.FormatBRL(row.AverageCents),
		}
		if err := cw.Write(record); err != nil {
			return "", fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("flush csv: %w", err)
	}

	return fmt.Sprintf("relatorio-%s.csv", r.GeneratedAt.Format("2006-01-02")), nil
}
