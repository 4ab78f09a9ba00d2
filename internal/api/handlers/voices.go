package handlers

import (
	"net/http"

	"wordreader/internal/domain"
	"wordreader/internal/speech"
)

type VoicesHandler struct {
	voices  *speech.VoiceRegistry
	locales domain.Locales
}

func NewVoicesHandler(voices *speech.VoiceRegistry, locales domain.Locales) *VoicesHandler {
	return &VoicesHandler{voices: voices, locales: locales}
}

type voicesResponse struct {
	Source []domain.Voice `json:"source"`
	Target []domain.Voice `json:"target"`
	All    []domain.Voice `json:"all"`
}

func (h *VoicesHandler) List(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, voicesResponse{
		Source: h.voices.ForLanguage(h.locales.Source),
		Target: h.voices.ForLanguage(h.locales.Target),
		All:    h.voices.All(),
	}, http.StatusOK)
}
