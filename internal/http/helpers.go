package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vendas/internal/core"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// parseFilterState reads the filter query parameters shared by the
// dashboard, sales and report endpoints. Partners may repeat or be
// comma-separated; custom bounds use the 2006-01-02 layout.
func parseFilterState(q url.Values) (core.FilterState, error) {
	st := core.FilterState{Range: core.RangeAll}

	for _, raw := range q["partners"] {
		for _, p := range strings.Split(raw, ",") {
			if p = strings.TrimSpace(p); p != "" {
				st.Partners = append(st.Partners, p)
			}
		}
	}

	switch mode := q.Get("range"); mode {
	case "", string(core.RangeAll):
		st.Range = core.RangeAll
	case string(core.RangeWeek):
		st.Range = core.RangeWeek
	case string(core.RangeMonth):
		st.Range = core.RangeMonth
	case string(core.RangeCustom):
		st.Range = core.RangeCustom
	default:
		return core.FilterState{}, fmt.Errorf("unknown range %q", mode)
	}

	var err error
	if st.CustomStart, err = parseBound(q.Get("start")); err != nil {
		return core.FilterState{}, fmt.Errorf("invalid start: %w", err)
	}
	if st.CustomEnd, err = parseBound(q.Get("end")); err != nil {
		return core.FilterState{}, fmt.Errorf("invalid end: %w", err)
	}
	return st, nil
}

func parseBound(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
