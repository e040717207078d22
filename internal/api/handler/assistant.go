package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/therrabiz/therrabiz-api/internal/domain"
	"github.com/therrabiz/therrabiz-api/internal/usecases/advising"
	"github.com/therrabiz/therrabiz-api/pkg/apiErrors"
	"github.com/therrabiz/therrabiz-api/pkg/utils"
)

type ChatRequest struct {
	History []domain.ChatMessage `json:"history"`
	Message string               `json:"message"`
}

type ChatResponse struct {
	ID    string `json:"id"`
	Reply string `json:"reply"`
}

type WhatIfRequest struct {
	Scenario string `json:"scenario"`
}

type GoalAdviceRequest struct {
	Current  float64 `json:"current"`
	Target   float64 `json:"target"`
	DaysLeft int     `json:"daysLeft"`
}

type CategorizeExpenseRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

type CategorizeExpenseResponse struct {
	Category string `json:"category"`
}

type TurnoverAdviceRequest struct {
	Rate   float64 `json:"rate"`
	Period string  `json:"period"`
}

type PromoEstimateRequest struct {
	PromoType   string `json:"promoType"`
	ProductName string `json:"productName"`
	Depth       string `json:"depth"`
}

type AdviceResponse struct {
	Advice string `json:"advice"`
}

func AssistantChat(service advising.Advisor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}

		if req.Message == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "message is required", nil)
			return
		}

		reply, err := service.Chat(r.Context(), req.History, req.Message)
		if err != nil {
			if errors.Is(err, advising.ErrCooldownActive) {
				apiErrors.WriteError(w, apiErrors.ErrCooldownActive, "please wait before sending another message", nil)
				return
			}
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "assistant chat failed", nil)
			return
		}

		id, err := utils.GenerateID()
		if err != nil {
			logrus.WithError(err).Warn("failed to generate message id")
		}

		writeJSON(w, http.StatusOK, ChatResponse{ID: id, Reply: reply})
	}
}

func AssistantInsights(service advising.Advisor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, AdviceResponse{Advice: service.BusinessInsights(r.Context())})
	}
}

func AssistantWhatIf(service advising.Advisor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req WhatIfRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}

		if req.Scenario == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "scenario is required", nil)
			return
		}

		writeJSON(w, http.StatusOK, AdviceResponse{Advice: service.WhatIf(r.Context(), req.Scenario)})
	}
}

// AssistantSuggestTasks generates a fresh batch of to-dos and returns it.
// The batch is already persisted when the response goes out.
func AssistantSuggestTasks(service advising.Advisor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.SuggestTasks(r.Context()))
	}
}

func AssistantGoalAdvice(service advising.Advisor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req GoalAdviceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}

		advice := service.GoalAdvice(r.Context(), req.Current, req.Target, req.DaysLeft)
		writeJSON(w, http.StatusOK, AdviceResponse{Advice: advice})
	}
}

func AssistantSlowMoving(service advising.Advisor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.SlowMoving(r.Context()))
	}
}

func AssistantCategorizeExpense(service advising.Advisor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CategorizeExpenseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}

		if req.Description == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "description is required", nil)
			return
		}

		category := service.CategorizeExpense(r.Context(), req.Description, req.Amount)
		writeJSON(w, http.StatusOK, CategorizeExpenseResponse{Category: category})
	}
}

func AssistantTurnoverAdvice(service advising.Advisor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TurnoverAdviceRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}

		advice := service.TurnoverAdvice(r.Context(), req.Rate, req.Period)
		writeJSON(w, http.StatusOK, AdviceResponse{Advice: advice})
	}
}

func AssistantPromoEstimate(service advising.Advisor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PromoEstimateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}

		if req.ProductName == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "product name is required", nil)
			return
		}

		estimate := service.PromoEstimate(r.Context(), req.PromoType, req.ProductName, req.Depth)
		writeJSON(w, http.StatusOK, AdviceResponse{Advice: estimate})
	}
}

func AssistantQuota(service advising.Advisor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.Quota())
	}
}
