package handler

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/therrabiz/therrabiz-api/infrastructure/storage"
	"github.com/therrabiz/therrabiz-api/internal/domain"
	"github.com/therrabiz/therrabiz-api/internal/usecases/reporting"
	"github.com/therrabiz/therrabiz-api/pkg/apiErrors"
	"github.com/therrabiz/therrabiz-api/pkg/utils"
)

func ListSales(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.Sales())
	}
}

func CreateSale(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var record domain.SaleRecord
		if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}

		if msg := validateSale(record); msg != "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, msg, nil)
			return
		}

		if record.ID == "" {
			record.ID = storage.NewRecordID()
		}

		store.AddSale(record)
		writeJSON(w, http.StatusCreated, record)
	}
}

func UpdateSale(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var record domain.SaleRecord
		if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}
		record.ID = id

		if msg := validateSale(record); msg != "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, msg, nil)
			return
		}

		store.UpdateSale(record)
		writeJSON(w, http.StatusOK, record)
	}
}

func DeleteSale(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		store.DeleteSale(id)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ExportSales streams the sales report as a CSV download.
func ExportSales(store *storage.Store, reporter reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := reporter.SalesCSV(store.Sales())
		filename := reporter.Filename(time.Now())

		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
		if _, err := w.Write(report); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "failed to write report", nil)
		}
	}
}

func validateSale(record domain.SaleRecord) string {
	if record.Date == "" {
		return "date is required"
	}
	if _, err := utils.ParseDate(record.Date); err != nil {
		return "date must be formatted as YYYY-MM-DD"
	}
	if record.Revenue < 0 {
		return "revenue must not be negative"
	}
	if record.Transactions < 0 {
		return "transactions must not be negative"
	}
	return ""
}
