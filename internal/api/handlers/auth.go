package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"wordreader/internal/service"
)

type AuthHandler struct {
	auth   *service.AuthService
	logger *zap.Logger
}

func NewAuthHandler(auth *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, logger: logger}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.auth.SignUp(req.Email, req.Password); err != nil {
		writeError(w, h.logger, err)
		return
	}

	jsonResponse(w, map[string]string{"message": "sign-up successful, please log in"}, http.StatusCreated)
}
