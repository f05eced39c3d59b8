package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	applog "fintrack/internal/log"
	"fintrack/internal/services"
)

// logError reports a handler failure through the request's logger.
func logError(r *http.Request, msg string, err error, operation string) {
	sl := applog.NewStructuredLogger(applog.FromContext(r.Context()))
	sl.LogError(r.Context(), msg, err, applog.ComponentHTTP, operation, applog.NewFields())
}

// handleDashboard serves the windowed dashboard view: totals, budget
// and goal progress, insights, and recent activity.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	view, err := s.analytics.Dashboard(r.Context(), windowFromQuery(r.URL.Query()))
	if err != nil {
		logError(r, "Dashboard failed", err, applog.OpRead)
		respondError(w, http.StatusBadGateway, "dashboard data unavailable")
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// handleReports serves the chartable report series for one window.
func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	view, err := s.analytics.Report(r.Context(), windowFromQuery(r.URL.Query()))
	if err != nil {
		logError(r, "Report failed", err, applog.OpRead)
		respondError(w, http.StatusBadGateway, "report data unavailable")
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// handleExport streams the windowed transactions as a CSV download.
// The kind query parameter picks the layout: "transactions" (default)
// or "report".
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	kind := services.ExportTransactions
	if r.URL.Query().Get("kind") == string(services.ExportReport) {
		kind = services.ExportReport
	}

	window := windowFromQuery(r.URL.Query())
	export, err := s.analytics.Export(r.Context(), kind, window)
	if err != nil {
		logError(r, "Export failed", err, applog.OpExport)
		respondError(w, http.StatusBadGateway, "export data unavailable")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(export.Content))

	// Rows are newline-joined with a leading header, so the newline
	// count is the data row count.
	rows := strings.Count(export.Content, "\n")
	sl := applog.NewStructuredLogger(applog.FromContext(r.Context()))
	sl.LogExportServed(r.Context(), window.Label(), export.Filename, rows)
}

// handleSheetsExport appends the windowed report rows to the
// configured Google Sheet.
func (s *Server) handleSheetsExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.sheets == nil || !s.sheets.Enabled() {
		respondError(w, http.StatusServiceUnavailable, "sheets export is not configured")
		return
	}

	window := windowFromQuery(r.URL.Query())
	ref, rows, err := s.sheets.Export(r.Context(), window)
	if err != nil {
		logError(r, "Sheets export failed", err, applog.OpExport)
		respondError(w, http.StatusBadGateway, "sheets export failed")
		return
	}

	sl := applog.NewStructuredLogger(applog.FromContext(r.Context()))
	sl.LogExportServed(r.Context(), window.Label(), ref, rows)
	respondJSON(w, http.StatusOK, map[string]any{
		"ref":  ref,
		"rows": rows,
	})
}

// handleNotifications lists the undismissed budget alerts for the
// current month.
func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	alerts, err := s.alerts.Active(r.Context())
	if err != nil {
		logError(r, "Listing alerts failed", err, applog.OpList)
		respondError(w, http.StatusBadGateway, "notifications unavailable")
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"alerts": alerts})
}

// handleDismiss hides one alert id until its month rolls over.
func (s *Server) handleDismiss(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		respondError(w, http.StatusBadRequest, "alert id is required")
		return
	}

	if err := s.alerts.Dismiss(r.Context(), req.ID); err != nil {
		logError(r, "Dismissing alert failed", err, applog.OpDismiss)
		respondError(w, http.StatusInternalServerError, "could not dismiss alert")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleDismissAll hides every currently active alert.
func (s *Server) handleDismissAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := s.alerts.DismissAll(r.Context()); err != nil {
		logError(r, "Dismissing all alerts failed", err, applog.OpDismiss)
		respondError(w, http.StatusInternalServerError, "could not dismiss alerts")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
