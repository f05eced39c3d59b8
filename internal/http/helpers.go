package http

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"fintrack/internal/analytics"
)

// windowFromQuery builds the analytics window from request query
// parameters. Custom bounds are plain YYYY-MM-DD dates; a bound that
// is missing or unparseable stays nil and the window fails open.
func windowFromQuery(q url.Values) analytics.Window {
	w := analytics.Window{Range: analytics.ParseRange(q.Get("range"))}
	if w.Range != analytics.RangeCustom {
		return w
	}
	if t, err := time.Parse("2006-01-02", q.Get("startDate")); err == nil {
		w.Start = &t
	}
	if t, err := time.Parse("2006-01-02", q.Get("endDate")); err == nil {
		w.End = &t
	}
	return w
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
