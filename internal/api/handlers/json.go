package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"wordreader/internal/domain"
	"wordreader/internal/playback"
	"wordreader/internal/service"
	"wordreader/internal/speech"
)

func jsonResponse(w http.ResponseWriter, data interface{}, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func jsonError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		jsonError(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// statusFor maps a failure to its HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNameRequired),
		errors.Is(err, domain.ErrCredentialsRequired),
		errors.Is(err, domain.ErrCellOutOfRange),
		errors.Is(err, speech.ErrInvalidRate),
		errors.Is(err, speech.ErrUnknownVoice):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrNotLoggedIn):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrTableNotFound),
		errors.Is(err, service.ErrWorkspaceNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUserExists),
		errors.Is(err, playback.ErrAlreadyPlaying):
		return http.StatusConflict
	case errors.Is(err, service.ErrSessionNotDelivered):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// writeError reports err to the client; unexpected failures are logged
// and hidden behind a generic message
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed", zap.Error(err))
		jsonError(w, "internal error", status)
		return
	}
	jsonError(w, err.Error(), status)
}
