package handler

import (
	"net/http"

	"github.com/therrabiz/therrabiz-api/infrastructure/storage"
	"github.com/therrabiz/therrabiz-api/internal/domain"
	"github.com/therrabiz/therrabiz-api/pkg/apiErrors"
	"github.com/therrabiz/therrabiz-api/pkg/utils"
)

func ListInventory(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.InventoryRecords())
	}
}

func CreateInventoryRecord(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var record domain.InventoryRecord
		if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}

		if record.Name == "" || record.Date == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "name and date are required", nil)
			return
		}
		if _, err := utils.ParseDate(record.Date); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "date must be formatted as YYYY-MM-DD", nil)
			return
		}

		if record.ID == "" {
			record.ID = storage.NewRecordID()
		}

		store.AddInventoryRecord(record)
		writeJSON(w, http.StatusCreated, record)
	}
}
