package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"wordreader/internal/api/middleware"
	"wordreader/internal/auth"
	"wordreader/internal/domain"
	"wordreader/internal/playback"
	"wordreader/internal/service"
	"wordreader/internal/speech"
)

// WorkspaceHandler serves everything under /api/workspaces
type WorkspaceHandler struct {
	manager *service.WorkspaceManager
	jwt     *auth.JWTService
	logger  *zap.Logger
}

func NewWorkspaceHandler(manager *service.WorkspaceManager, jwt *auth.JWTService, logger *zap.Logger) *WorkspaceHandler {
	return &WorkspaceHandler{manager: manager, jwt: jwt, logger: logger}
}

type tableResponse struct {
	Header     []string   `json:"header"`
	Rows       [][]string `json:"rows"`
	RowNumbers []string   `json:"rowNumbers"`
	Active     string     `json:"active,omitempty"`
	TableName  string     `json:"tableName,omitempty"`
}

type playbackResponse struct {
	playback.Status
	Paused    bool    `json:"paused"`
	Timer     string  `json:"timer"`
	Rate      float64 `json:"rate"`
	RateLabel string  `json:"rateLabel"`
	Error     string  `json:"error,omitempty"`
}

func (h *WorkspaceHandler) workspace(w http.ResponseWriter, r *http.Request) (*service.Workspace, bool) {
	ws, err := h.manager.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return nil, false
	}
	return ws, true
}

func (h *WorkspaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	ws := h.manager.Create()
	jsonResponse(w, map[string]string{"id": ws.ID()}, http.StatusCreated)
}

// Delete closes the workspace, posting its unload snapshot
func (h *WorkspaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.manager.Close(chi.URLParam(r, "id")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *WorkspaceHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	h.writeTable(w, ws, http.StatusOK)
}

func (h *WorkspaceHandler) writeTable(w http.ResponseWriter, ws *service.Workspace, status int) {
	table := ws.Table()
	resp := tableResponse{
		Header:     table.Header,
		Rows:       table.Rows,
		RowNumbers: table.RowNumbers(),
		TableName:  ws.TableName(),
	}
	if active := ws.Active(); !active.IsZero() {
		resp.Active = active.String()
	}
	jsonResponse(w, resp, status)
}

func (h *WorkspaceHandler) AddRow(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	ws.AddRow()
	h.writeTable(w, ws, http.StatusCreated)
}

func (h *WorkspaceHandler) AddColumn(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	var req struct {
		Label string `json:"label"`
	}
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}
	ws.AddColumn(req.Label)
	h.writeTable(w, ws, http.StatusCreated)
}

func (h *WorkspaceHandler) SetCell(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	row, errRow := strconv.Atoi(chi.URLParam(r, "row"))
	col, errCol := strconv.Atoi(chi.URLParam(r, "col"))
	if errRow != nil || errCol != nil {
		jsonError(w, "row and column must be numbers", http.StatusBadRequest)
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := ws.SetCell(domain.Coordinate{Row: row, Col: col}, req.Text); err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.writeTable(w, ws, http.StatusOK)
}

func (h *WorkspaceHandler) Import(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	ws.Import(req.Text)
	h.writeTable(w, ws, http.StatusOK)
}

func (h *WorkspaceHandler) Export(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	jsonResponse(w, map[string]string{"text": ws.Export()}, http.StatusOK)
}

func (h *WorkspaceHandler) SaveTable(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	if err := ws.SaveTable(chi.URLParam(r, "name")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	jsonResponse(w, map[string]string{"message": "table saved"}, http.StatusOK)
}

func (h *WorkspaceHandler) LoadTable(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	if err := ws.LoadTable(chi.URLParam(r, "name")); err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.writeTable(w, ws, http.StatusOK)
}

func (h *WorkspaceHandler) Play(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	var req struct {
		Repeat int `json:"repeat"`
	}
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}
	if err := ws.Play(req.Repeat); err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.writePlayback(w, ws, http.StatusAccepted)
}

func (h *WorkspaceHandler) Pause(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	ws.Pause()
	h.writePlayback(w, ws, http.StatusOK)
}

func (h *WorkspaceHandler) Resume(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	ws.Resume()
	h.writePlayback(w, ws, http.StatusOK)
}

func (h *WorkspaceHandler) Stop(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	ws.Stop()
	h.writePlayback(w, ws, http.StatusOK)
}

func (h *WorkspaceHandler) PlaybackStatus(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	h.writePlayback(w, ws, http.StatusOK)
}

func (h *WorkspaceHandler) writePlayback(w http.ResponseWriter, ws *service.Workspace, status int) {
	rate := ws.Driver().Rate()
	resp := playbackResponse{
		Status:    ws.Status(),
		Paused:    ws.Paused(),
		Timer:     ws.Timer(),
		Rate:      rate,
		RateLabel: speech.FormatRate(rate),
	}
	if err := ws.LastError(); err != nil {
		resp.Error = err.Error()
	}
	jsonResponse(w, resp, status)
}

func (h *WorkspaceHandler) SelectVoice(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	var req struct {
		Language string `json:"language"`
		Voice    string `json:"voice"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Language == "" {
		jsonError(w, "language is required", http.StatusBadRequest)
		return
	}
	if err := ws.Driver().SelectVoice(req.Language, req.Voice); err != nil {
		writeError(w, h.logger, err)
		return
	}
	jsonResponse(w, map[string]string{
		"language": req.Language,
		"voice":    ws.Driver().SelectedVoice(req.Language),
	}, http.StatusOK)
}

func (h *WorkspaceHandler) SetRate(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	var req struct {
		Rate float64 `json:"rate"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := ws.Driver().SetRate(req.Rate); err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.writePlayback(w, ws, http.StatusOK)
}

type loginResponse struct {
	Token   string               `json:"token"`
	Session domain.SessionRecord `json:"session"`
}

func (h *WorkspaceHandler) Login(w http.ResponseWriter, r *http.Request) {
	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}
	var req credentialsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	rec, err := ws.Login(req.Email, req.Password)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	token, err := h.jwt.GenerateToken(rec.User, ws.ID(), rec.ID)
	if err != nil {
		jsonError(w, "failed to generate token", http.StatusInternalServerError)
		return
	}

	jsonResponse(w, loginResponse{Token: token, Session: rec}, http.StatusOK)
}

// Logout requires a token issued for this workspace
func (h *WorkspaceHandler) Logout(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r)
	if claims == nil {
		jsonError(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	if claims.Workspace != chi.URLParam(r, "id") {
		jsonError(w, "token was issued for another workspace", http.StatusForbidden)
		return
	}

	ws, ok := h.workspace(w, r)
	if !ok {
		return
	}

	// on a relay failure the user is still logged out; the 502 reports
	// the lost record
	if err := ws.Logout(r.Context()); err != nil {
		writeError(w, h.logger, err)
		return
	}
	jsonResponse(w, map[string]string{"message": "logout successful"}, http.StatusOK)
}
