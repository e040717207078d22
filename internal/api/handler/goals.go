package handler

import (
	"net/http"
	"time"

	"github.com/therrabiz/therrabiz-api/infrastructure/storage"
	"github.com/therrabiz/therrabiz-api/internal/domain"
	"github.com/therrabiz/therrabiz-api/pkg/apiErrors"
)

const monthFormat = "2006-01"

func ListGoals(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.SalesGoals())
	}
}

// SaveGoal upserts the goal for its month: saving twice for the same month
// replaces the target instead of adding a second goal.
func SaveGoal(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var goal domain.SalesGoal
		if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}

		if goal.Month == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "month is required", nil)
			return
		}
		if _, err := time.Parse(monthFormat, goal.Month); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "month must be formatted as YYYY-MM", nil)
			return
		}
		if goal.TargetAmount <= 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "target amount must be positive", nil)
			return
		}

		writeJSON(w, http.StatusOK, store.SaveSalesGoal(goal))
	}
}
