package handler

import (
	"net/http"

	"github.com/therrabiz/therrabiz-api/infrastructure/storage"
	"github.com/therrabiz/therrabiz-api/internal/domain"
	"github.com/therrabiz/therrabiz-api/pkg/apiErrors"
)

func GetProfile(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.StoreProfile())
	}
}

func SaveProfile(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var profile domain.StoreProfile
		if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}

		if profile.OwnerName == "" || profile.StoreName == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "owner and store name are required", nil)
			return
		}

		store.SaveStoreProfile(profile)
		writeJSON(w, http.StatusOK, profile)
	}
}

func GetSettings(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, store.AppSettings())
	}
}

// SaveSettings replaces the settings singleton. Every field must be sent;
// partial updates are a client-side merge.
func SaveSettings(store *storage.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var settings domain.AppSettings
		if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "invalid request body", nil)
			return
		}

		store.SaveAppSettings(settings)
		writeJSON(w, http.StatusOK, settings)
	}
}
