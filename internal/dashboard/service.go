package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"vendas/internal/cache"
	"vendas/internal/core"
	"vendas/internal/log"
	"vendas/internal/store"
)

// Dashboard is one consistent recomputation over the filtered record
// set: the KPI row plus every chart series, all derived from the same
// snapshot.
type Dashboard struct {
	Summary        core.Summary    `json:"summary"`
	ActivePartners int             `json:"activePartners"`
	PartnerTotals  []core.Total    `json:"partnerTotals"`
	ItemTotals     []core.Total    `json:"itemTotals"`
	Brands         []core.Total    `json:"brands"`
	MachineTypes   []core.Total    `json:"machineTypes"`
	Payments       []core.Total    `json:"payments"`
	HourlyCounts   [24]int         `json:"hourlyCounts"`
	DailySeries    []core.DayTotal `json:"dailySeries"`
	StateTotals    []core.Total    `json:"stateTotals"`
	LatestSale     *core.Sale      `json:"latestSale,omitempty"`
}

// Service loads records from the store into the shared state and
// answers dashboard queries against it.
type Service struct {
	state     *State
	source    store.SaleSource
	loadLimit int
	views     *cache.LRU[Dashboard]
	logger    *log.Logger
}

func NewService(source store.SaleSource, loadLimit int, logger *log.Logger) *Service {
	return &Service{
		state:     NewState(),
		source:    source,
		loadLimit: loadLimit,
		views:     cache.NewLRU[Dashboard](64, 30*time.Second),
		logger:    logger.WithComponent(log.ComponentDashboard),
	}
}

// State exposes the shared record set for the feed consumer.
func (s *Service) State() *State {
	return s.state
}

// Reload fetches the record set from the store and replaces the state.
// Returns the number of loaded records.
func (s *Service) Reload(ctx context.Context) (int, error) {
	started := time.Now()
	sales, err := s.source.ListSales(ctx, s.loadLimit)
	if err != nil {
		return 0, fmt.Errorf("list sales: %w", err)
	}
	s.state.LoadSnapshot(sales)

	s.logger.InfoContext(ctx, "Record set reloaded",
		log.FieldOperation, log.OpLoad,
		log.FieldRecordCount, len(sales),
		log.FieldDuration, time.Since(started).Milliseconds())
	return len(sales), nil
}

// Apply folds a feed-delivered record into the state.
func (s *Service) Apply(ctx context.Context, sale core.Sale) {
	s.state.Push(sale)
	s.logger.InfoContext(ctx, "Record pushed into dashboard",
		log.FieldOperation, log.OpConsume,
		log.FieldSaleID, sale.ID,
		log.FieldPartner, sale.PartnerName)
}

// Reset clears the record set, used on logout.
func (s *Service) Reset() {
	s.state.Reset()
}

// FilteredSales applies the filter state against the current snapshot.
func (s *Service) FilteredSales(st core.FilterState, now time.Time) []core.Sale {
	return core.Filter(s.state.Snapshot(), st, now)
}

// Dashboard recomputes every view over the filtered record set. Results
// are memoized per filter until the record set changes; the cache key
// includes the UTC day so relative windows roll over at midnight.
func (s *Service) Dashboard(st core.FilterState, now time.Time) Dashboard {
	key := viewKey(st, now, s.state.Version())
	if d, ok := s.views.Get(key); ok {
		return d
	}

	filtered := s.FilteredSales(st, now)

	d := Dashboard{
		Summary:        core.Summarize(filtered),
		ActivePartners: core.ActivePartners(filtered),
		PartnerTotals:  core.PartnerTotals(filtered),
		ItemTotals:     core.ItemTotals(filtered),
		Brands:         core.BrandBreakdown(filtered),
		MachineTypes:   core.TypeBreakdown(filtered),
		Payments:       core.PaymentBreakdown(filtered),
		HourlyCounts:   core.HourlyCounts(filtered),
		DailySeries:    core.DailySeries(filtered),
		StateTotals:    core.StateTotals(filtered),
	}
	if latest, ok := core.LatestSale(filtered); ok {
		d.LatestSale = &latest
	}

	s.views.Set(key, d)
	return d
}

func viewKey(st core.FilterState, now time.Time, version uint64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "v%d|%s|%s", version, st.Range, core.DayKey(now))
	if st.CustomStart != nil {
		b.WriteByte('|')
		b.WriteString(core.DayKey(*st.CustomStart))
	}
	if st.CustomEnd != nil {
		b.WriteByte('|')
		b.WriteString(core.DayKey(*st.CustomEnd))
	}
	for _, p := range st.Partners {
		b.WriteByte('|')
		b.WriteString(core.NormalizeName(p))
	}
	return b.String()
}

// PartnerOptions lists the selectable partner names over the full
// unfiltered record set.
func (s *Service) PartnerOptions() []string {
	return core.PartnerOptions(s.state.Snapshot())
}
