package handler

import (
	"net/http"

	"github.com/therrabiz/therrabiz-api/infrastructure/storage"
	"github.com/therrabiz/therrabiz-api/internal/domain"
	"github.com/therrabiz/therrabiz-api/pkg/apiErrors"
	"github.com/therrabiz/therrabiz-api/pkg/utils"
)

func ListExpenses(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.Expenses())
	}
}

func CreateExpense(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var record domain.ExpenseRecord
		if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}

		if record.Date == "" || record.Description == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "date and description are required", nil)
			return
		}
		if _, err := utils.ParseDate(record.Date); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "date must be formatted as YYYY-MM-DD", nil)
			return
		}
		if record.Amount < 0 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "amount must not be negative", nil)
			return
		}

		// Unknown categories collapse into the catch-all bucket.
		if !domain.ValidCategory(record.Category) {
			record.Category = domain.CategoryOther
		}

		if record.ID == "" {
			record.ID = storage.NewRecordID()
		}

		store.AddExpense(record)
		writeJSON(w, http.StatusCreated, record)
	}
}
