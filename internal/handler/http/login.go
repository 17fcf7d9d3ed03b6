package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/auth-gateway/internal/logger"
	"github.com/MKhiriev/auth-gateway/internal/service"
	"github.com/MKhiriev/auth-gateway/internal/utils"
	"github.com/MKhiriev/auth-gateway/models"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var request models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	token, err := h.services.AuthService.Login(ctx, request)
	if err != nil {
		var authErr *service.AuthError
		switch {
		case errors.As(err, &authErr):
			// the chain's coded failure travels to the caller unchanged
			if _, writeErr := utils.WriteJSON(w, models.LoginError{
				ErrorCode: authErr.Code,
				ErrorMsg:  authErr.Message,
			}, http.StatusUnauthorized); writeErr != nil {
				log.Err(writeErr).Msg("writing login error response failed")
			}
			return
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during login")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	if _, err = utils.WriteJSON(w, models.LoginResponse{Token: token.SignedString}, http.StatusOK); err != nil {
		log.Err(err).Msg("writing login response failed")
	}
}
