package web

import (
	"net/http"
	"strconv"
	"time"
)

// dashboard handles GET /api/dashboard.
func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Dashboard(r.Context())
	if err != nil {
		writeCoreError(w, r, err)
		return
	}
	writeJSON(w, stats)
}

// dayClosing handles GET /api/day-closing?date=YYYY-MM-DD. Missing date
// means today.
func (h *Handler) dayClosing(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		writeError(w, r, "invalid date, expected YYYY-MM-DD", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	summary, err := h.svc.DayClosing(r.Context(), date)
	if err != nil {
		writeCoreError(w, r, err)
		return
	}
	writeJSON(w, summary)
}

// reports handles GET /api/reports?days=7.
func (h *Handler) reports(w http.ResponseWriter, r *http.Request) {
	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 90 {
			writeError(w, r, "days must be between 1 and 90", "BAD_REQUEST", http.StatusBadRequest)
			return
		}
		days = n
	}

	result, err := h.svc.Reports(r.Context(), days)
	if err != nil {
		writeCoreError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// insights handles GET /api/insights.
func (h *Handler) insights(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.Insights(r.Context())
	if err != nil {
		writeCoreError(w, r, err)
		return
	}
	writeJSON(w, result)
}
