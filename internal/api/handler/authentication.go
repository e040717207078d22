package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/therrabiz/therrabiz-api/internal/domain"
	"github.com/therrabiz/therrabiz-api/internal/usecases/authenticating"
	"github.com/therrabiz/therrabiz-api/pkg/apiErrors"
	"github.com/therrabiz/therrabiz-api/pkg/middleware"
)

type LoginRequest struct {
	Password  string `json:"password"`
	OwnerName string `json:"ownerName"`
	StoreName string `json:"storeName"`
}

type LoginResponse struct {
	Token   string              `json:"token"`
	Profile domain.StoreProfile `json:"profile"`
}

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}

		profile := domain.StoreProfile{
			OwnerName: req.OwnerName,
			StoreName: req.StoreName,
		}

		token, err := service.Login(req.Password, profile)
		if err != nil {
			handleLoginError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, LoginResponse{
			Token:   token,
			Profile: profile,
		})
	}
}

// GetMe returns the owner identity carried by the session token.
func GetMe() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(middleware.ContextKeyUser).(*domain.Claims)
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "not authenticated", nil)
			return
		}

		writeJSON(w, http.StatusOK, domain.StoreProfile{
			OwnerName: claims.OwnerName,
			StoreName: claims.StoreName,
		})
	}
}

func handleLoginError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authenticating.ErrInvalidCredentials):
		apiErrors.WriteError(w, apiErrors.ErrInvalidCredentials, "invalid credentials", nil)

	case errors.Is(err, authenticating.ErrMissingProfile):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "owner and store name are required", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "internal error during login", nil)
	}
}
