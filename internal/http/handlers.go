package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"costconnect/internal/core"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		slog.ErrorContext(r.Context(), "Readiness check failed", "error", err)
		writeError(w, http.StatusServiceUnavailable, "storage not ready")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleListExpenses serves the month query: required month and year, the
// widened range under the hood, ascending order on the way out.
func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseMonthYear(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	items, err := s.monthExpenses(r, year, month)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// monthExpenses serves month queries through the LRU cache.
func (s *Server) monthExpenses(r *http.Request, year, month int) ([]core.Expense, error) {
	key := monthKey(year, month)
	if items, found := s.monthCache.Get(key); found {
		slog.DebugContext(r.Context(), "Month cache hit", "year", year, "month", month, "count", len(items))
		result := make([]core.Expense, len(items))
		copy(result, items)
		return result, nil
	}

	items, err := s.store.ListMonth(r.Context(), year, month)
	if err != nil {
		return nil, err
	}
	s.monthCache.Set(key, items)
	slog.DebugContext(r.Context(), "Month cached", "year", year, "month", month, "count", len(items))
	return items, nil
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var e core.Expense
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		slog.WarnContext(r.Context(), "Malformed expense body", "error", err)
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	e.ID = "" // server-assigned

	created, err := s.store.CreateExpense(r.Context(), e)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.monthCache.Purge()
	slog.InfoContext(r.Context(), "Expense created",
		"id", created.ID,
		"description", created.Description,
		"amount_cents", created.Amount.Cents,
		"date", created.Date.UTC().Format(time.RFC3339))
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var patch core.ExpensePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		slog.WarnContext(r.Context(), "Malformed patch body", "error", err, "id", id)
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	updated, err := s.store.UpdateExpense(r.Context(), id, patch)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.monthCache.Purge()
	if updated == nil {
		// Unknown ID is an empty success, not an error.
		slog.InfoContext(r.Context(), "Update matched nothing", "id", id)
	} else {
		slog.InfoContext(r.Context(), "Expense updated", "id", id, "amount_cents", updated.Amount.Cents)
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := s.store.DeleteExpense(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}

	s.monthCache.Purge()
	slog.InfoContext(r.Context(), "Expense deleted", "id", id)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Expense deleted"})
}

type (
	summaryDay struct {
		Date     string         `json:"date"`
		Expenses []core.Expense `json:"expenses"`
	}

	summaryResponse struct {
		Year         int          `json:"year"`
		Month        int          `json:"month"`
		Days         []summaryDay `json:"days"`
		Total        core.Money   `json:"total"`
		DailyAverage float64      `json:"dailyAverage"`
		DaysLogged   int          `json:"daysLogged"`
	}
)

// handleMonthSummary renders the per-day calendar view: the widened month
// query re-filtered into local calendar days, plus the derived totals.
func (s *Server) handleMonthSummary(w http.ResponseWriter, r *http.Request) {
	year, month, err := parseMonthYear(r)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	items, err := s.monthExpenses(r, year, month)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	days := core.MonthDays(year, month, s.loc)
	groups := core.GroupByDay(days, items, s.loc)
	summary := core.Summarize(items, len(days), s.loc)

	resp := summaryResponse{
		Year:         year,
		Month:        month,
		Days:         make([]summaryDay, len(groups)),
		Total:        summary.Total,
		DailyAverage: summary.DailyAverage,
		DaysLogged:   summary.DaysLogged,
	}
	for i, g := range groups {
		resp.Days[i] = summaryDay{
			Date:     g.Day.Format("2006-01-02"),
			Expenses: g.Expenses,
		}
	}
	writeJSON(w, http.StatusOK, resp)
}
