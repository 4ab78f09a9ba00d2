package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"wordreader/internal/service"
)

type LibraryHandler struct {
	library *service.LibraryService
	logger  *zap.Logger
}

func NewLibraryHandler(library *service.LibraryService, logger *zap.Logger) *LibraryHandler {
	return &LibraryHandler{library: library, logger: logger}
}

func (h *LibraryHandler) List(w http.ResponseWriter, r *http.Request) {
	names, err := h.library.List()
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	jsonResponse(w, map[string][]string{"tables": names}, http.StatusOK)
}
