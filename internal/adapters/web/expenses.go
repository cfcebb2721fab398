package web

import (
	"net/http"

	"vypaar-saathi/internal/app"
	"vypaar-saathi/internal/core"
)

// expensePeriod reads the ?period= query param, defaulting to today.
func expensePeriod(r *http.Request) core.ExpensePeriod {
	switch r.URL.Query().Get("period") {
	case "week":
		return core.PeriodWeek
	case "month":
		return core.PeriodMonth
	default:
		return core.PeriodToday
	}
}

// listExpenses handles GET /api/expenses?period=today|week|month.
func (h *Handler) listExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := h.svc.ListExpenses(r.Context(), expensePeriod(r))
	if err != nil {
		writeCoreError(w, r, err)
		return
	}
	writeJSON(w, expenses)
}

// addExpense handles POST /api/expenses.
func (h *Handler) addExpense(w http.ResponseWriter, r *http.Request) {
	var req app.AddExpenseRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	expense, err := h.svc.AddExpense(r.Context(), req)
	if err != nil {
		writeCoreError(w, r, err)
		return
	}
	writeJSON(w, expense)
}

// expenseBreakdown handles GET /api/expenses/breakdown?period=.
func (h *Handler) expenseBreakdown(w http.ResponseWriter, r *http.Request) {
	shares, err := h.svc.ExpenseBreakdown(r.Context(), expensePeriod(r))
	if err != nil {
		writeCoreError(w, r, err)
		return
	}
	writeJSON(w, shares)
}
