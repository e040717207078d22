package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/therrabiz/therrabiz-api/internal/usecases/calculating"
	"github.com/therrabiz/therrabiz-api/pkg/apiErrors"
)

type SellingPriceRequest struct {
	Cost      decimal.Decimal `json:"cost"`
	Overhead  decimal.Decimal `json:"overhead"`
	MarginPct decimal.Decimal `json:"marginPct"`
}

type TurnoverRequest struct {
	COGS           decimal.Decimal `json:"cogs"`
	BeginningStock decimal.Decimal `json:"beginningStock"`
	EndingStock    decimal.Decimal `json:"endingStock"`
}

type TurnoverResponse struct {
	Rate decimal.Decimal `json:"rate"`
}

func CalculateSellingPrice(service calculating.Calculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SellingPriceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}

		if req.Cost.IsNegative() || req.Overhead.IsNegative() || req.MarginPct.IsNegative() {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "amounts must not be negative", nil)
			return
		}

		writeJSON(w, http.StatusOK, service.SellingPrice(req.Cost, req.Overhead, req.MarginPct))
	}
}

func CalculateTurnover(service calculating.Calculator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TurnoverRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}

		rate, err := service.TurnoverRate(req.COGS, req.BeginningStock, req.EndingStock)
		if err != nil {
			if errors.Is(err, calculating.ErrZeroInventory) {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "average inventory is zero", nil)
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "failed to calculate turnover", nil)
			return
		}

		writeJSON(w, http.StatusOK, TurnoverResponse{Rate: rate})
	}
}
