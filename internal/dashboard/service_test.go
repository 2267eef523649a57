package dashboard

import (
	"context"
	"testing"
	"time"

	"vendas/internal/core"
	"vendas/internal/log"
	"vendas/internal/store/memory"
)

func newService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	mem := memory.New()
	logger := log.New(log.DefaultConfig())
	return NewService(mem, 0, logger), mem
}

func TestReloadReplacesState(t *testing.T) {
	svc, mem := newService(t)
	ctx := context.Background()

	for _, id := range []string{"a", "b"} {
		if err := mem.InsertSale(ctx, core.Sale{ID: id, ValueCents: 100, SaleDate: "2025-01-10", PartnerName: "Alfa"}); err != nil {
			t.Fatal(err)
		}
	}

	n, err := svc.Reload(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if n != 2 || svc.State().Len() != 2 {
		t.Fatalf("loaded %d, state %d", n, svc.State().Len())
	}

	// A second reload does not accumulate.
	if _, err := svc.Reload(ctx); err != nil {
		t.Fatal(err)
	}
	if svc.State().Len() != 2 {
		t.Fatalf("state grew to %d after reload", svc.State().Len())
	}
}

func TestApplyIsVisibleToNextDashboard(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	svc.Apply(ctx, core.Sale{ID: "s1", ValueCents: 500, SaleDate: "2025-01-15 09:00:00", PartnerName: "Alfa"})

	d := svc.Dashboard(core.FilterState{Range: core.RangeAll}, now)
	if d.Summary.Count != 1 || d.Summary.TotalCents != 500 {
		t.Fatalf("got %+v", d.Summary)
	}
	if d.LatestSale == nil || d.LatestSale.ID != "s1" {
		t.Fatalf("latest sale %+v", d.LatestSale)
	}
}

func TestApplyKeepsDuplicates(t *testing.T) {
	svc, mem := newService(t)
	ctx := context.Background()

	sale := core.Sale{ID: "s1", ValueCents: 500, SaleDate: "2025-01-15", PartnerName: "Alfa"}
	if err := mem.InsertSale(ctx, sale); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Reload(ctx); err != nil {
		t.Fatal(err)
	}
	svc.Apply(ctx, sale)

	d := svc.Dashboard(core.FilterState{Range: core.RangeAll}, time.Now())
	if d.Summary.Count != 2 || d.Summary.TotalCents != 1000 {
		t.Fatalf("expected the feed copy to count twice, got %+v", d.Summary)
	}
}

func TestDashboardAppliesFilter(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	now := time.Date(2025, 2, 15, 10, 0, 0, 0, time.UTC)

	svc.Apply(ctx, core.Sale{ID: "s1", ValueCents: 100, SaleDate: "2025-02-10", PartnerName: "Alfa"})
	svc.Apply(ctx, core.Sale{ID: "s2", ValueCents: 200, SaleDate: "2025-01-10", PartnerName: "Alfa"})
	svc.Apply(ctx, core.Sale{ID: "s3", ValueCents: 400, SaleDate: "2025-02-12", PartnerName: "Conecta"})

	d := svc.Dashboard(core.FilterState{Range: core.RangeMonth}, now)
	if d.Summary.Count != 1 || d.Summary.TotalCents != 100 {
		t.Fatalf("got %+v", d.Summary)
	}
}

func TestResetClearsState(t *testing.T) {
	svc, _ := newService(t)
	svc.Apply(context.Background(), core.Sale{ID: "s1", ValueCents: 100, PartnerName: "Alfa"})
	svc.Reset()
	if svc.State().Len() != 0 {
		t.Fatalf("state not cleared: %d", svc.State().Len())
	}
}

func TestDashboardCacheInvalidatedByPush(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	now := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)

	svc.Apply(ctx, core.Sale{ID: "s1", ValueCents: 100, SaleDate: "2025-01-14", PartnerName: "Alfa"})

	st := core.FilterState{Range: core.RangeAll}
	if d := svc.Dashboard(st, now); d.Summary.Count != 1 {
		t.Fatalf("got %+v", d.Summary)
	}
	// Same filter again is a cache hit and must still reflect the push.
	svc.Apply(ctx, core.Sale{ID: "s2", ValueCents: 200, SaleDate: "2025-01-15", PartnerName: "Alfa"})
	if d := svc.Dashboard(st, now); d.Summary.Count != 2 || d.Summary.TotalCents != 300 {
		t.Fatalf("stale view after push: %+v", d.Summary)
	}
}

func TestPartnerOptions(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	svc.Apply(ctx, core.Sale{ID: "1", PartnerName: "Beta"})
	svc.Apply(ctx, core.Sale{ID: "2", PartnerName: "beta"})
	svc.Apply(ctx, core.Sale{ID: "3", PartnerName: "Alfa"})
	svc.Apply(ctx, core.Sale{ID: "4", PartnerName: "Conecta"})

	// Push order puts "beta" ahead of "Beta" in the snapshot, so the
	// lowercase spelling is the one kept for the duplicate pair.
	got := svc.PartnerOptions()
	if len(got) != 2 || got[0] != "Alfa" || got[1] != "beta" {
		t.Fatalf("got %v", got)
	}
}
