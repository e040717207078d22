package handler

import (
	"net/http"
	"time"

	"github.com/therrabiz/therrabiz-api/internal/usecases/insighting"
	"github.com/therrabiz/therrabiz-api/pkg/apiErrors"
)

func GetSummary(service insighting.Insighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.Summary())
	}
}

func GetTopProducts(service insighting.Insighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.TopProducts())
	}
}

func GetAOVSeries(service insighting.Insighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.AOVSeries())
	}
}

// GetHeatmap renders activity buckets for the requested window, the last 30
// days by default.
func GetHeatmap(service insighting.Insighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		window := r.URL.Query().Get("window")
		if window == "" {
			window = insighting.WindowMonth
		}
		if window != insighting.WindowMonth && window != insighting.WindowYear {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "window must be 'month' or 'year'", nil)
			return
		}

		writeJSON(w, http.StatusOK, service.Heatmap(window))
	}
}

func GetExpenseBreakdown(service insighting.Insighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.ExpenseBreakdown())
	}
}

// GetGoalProgress reports progress towards the goal of the month given in
// the query, defaulting to the current month.
func GetGoalProgress(service insighting.Insighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		month := r.URL.Query().Get("month")
		if month == "" {
			month = time.Now().Format(monthFormat)
		}
		if _, err := time.Parse(monthFormat, month); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "month must be formatted as YYYY-MM", nil)
			return
		}

		writeJSON(w, http.StatusOK, service.GoalProgress(month))
	}
}
