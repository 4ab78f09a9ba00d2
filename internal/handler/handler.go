package handler

import (
	"sync"

	"wordreader/internal/domain"
	"wordreader/internal/middleware"
	"wordreader/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Handler manages all bot interactions. Every chat drives its own
// workspace, keyed by the chat id.
type Handler struct {
	bot     *tele.Bot
	manager *service.WorkspaceManager
	logger  *zap.Logger

	// Chat states (in-memory state machine)
	states   map[int64]*domain.StateData
	stateMux sync.RWMutex
}

// NewHandler creates a new handler instance
func NewHandler(bot *tele.Bot, manager *service.WorkspaceManager, logger *zap.Logger) *Handler {
	return &Handler{
		bot:     bot,
		manager: manager,
		logger:  logger,
		states:  make(map[int64]*domain.StateData),
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers() {
	h.bot.Use(middleware.Workspace(h.manager, h.logger))

	// Commands
	h.bot.Handle("/start", h.handleStart)
	h.bot.Handle("/help", h.handleStart)
	h.bot.Handle("/signup", h.handleSignUp)
	h.bot.Handle("/login", h.handleLogin)
	h.bot.Handle("/logout", h.handleLogout, middleware.RequireLogin(h.logger))
	h.bot.Handle("/save", h.handleSave)
	h.bot.Handle("/load", h.handleLoad)
	h.bot.Handle("/tables", h.handleTables)
	h.bot.Handle("/import", h.handleImport)
	h.bot.Handle("/export", h.handleExport)
	h.bot.Handle("/table", h.handleTable)
	h.bot.Handle("/addrow", h.handleAddRow)
	h.bot.Handle("/addcolumn", h.handleAddColumn)
	h.bot.Handle("/play", h.handlePlay)
	h.bot.Handle("/pause", h.handlePause)
	h.bot.Handle("/resume", h.handleResume)
	h.bot.Handle("/stop", h.handleStop)
	h.bot.Handle("/rate", h.handleRate)
	h.bot.Handle("/voices", h.handleVoices)
	h.bot.Handle("/voice", h.handleVoice)
	h.bot.Handle("/cancel", h.handleCancel)

	// Text messages
	h.bot.Handle(tele.OnText, h.handleText)

	// Callback queries (inline buttons)
	h.bot.Handle(&btnPlay, h.handlePlay)
	h.bot.Handle(&btnPause, h.handlePause)
	h.bot.Handle(&btnResume, h.handleResume)
	h.bot.Handle(&btnStop, h.handleStop)
	h.bot.Handle(&btnTable, h.handleTable)
	h.bot.Handle(&btnExport, h.handleExport)
	h.bot.Handle(&btnMainMenu, h.handleStart)

	// Generic callback handler for buttons whose Unique got lost
	h.bot.Handle(tele.OnCallback, h.handleCallback)
}

// GetState returns the chat's current state
func (h *Handler) GetState(chatID int64) *domain.StateData {
	h.stateMux.RLock()
	defer h.stateMux.RUnlock()

	state, exists := h.states[chatID]
	if !exists {
		return &domain.StateData{State: domain.StateIdle}
	}
	return state
}

// SetState sets the chat's state
func (h *Handler) SetState(chatID int64, state *domain.StateData) {
	h.stateMux.Lock()
	defer h.stateMux.Unlock()
	h.states[chatID] = state
}

// ResetState resets the chat to idle state
func (h *Handler) ResetState(chatID int64) {
	h.SetState(chatID, &domain.StateData{State: domain.StateIdle})
}

// workspace returns the chat's workspace, creating it on first use
func (h *Handler) workspace(c tele.Context) *service.Workspace {
	if ws, ok := middleware.FromContext(c); ok {
		return ws
	}
	return h.manager.GetOrCreate(middleware.WorkspaceID(c.Chat().ID))
}

// Inline keyboard buttons
var (
	btnPlay = tele.Btn{
		Unique: "play",
		Text:   "▶️ Play",
	}
	btnPause = tele.Btn{
		Unique: "pause",
		Text:   "⏸ Pause",
	}
	btnResume = tele.Btn{
		Unique: "resume",
		Text:   "⏯ Resume",
	}
	btnStop = tele.Btn{
		Unique: "stop",
		Text:   "⏹ Stop",
	}
	btnTable = tele.Btn{
		Unique: "table",
		Text:   "📋 Table",
	}
	btnExport = tele.Btn{
		Unique: "export",
		Text:   "📤 Export",
	}
	btnMainMenu = tele.Btn{
		Unique: "main_menu",
		Text:   "🏠 Main menu",
	}
)

// mainMenuMarkup returns the main menu keyboard
func mainMenuMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnPlay, btnPause, btnResume),
		menu.Row(btnTable, btnExport),
	)
	return menu
}

// playbackMarkup is attached to playback replies
func playbackMarkup() *tele.ReplyMarkup {
	menu := &tele.ReplyMarkup{}
	menu.Inline(
		menu.Row(btnPause, btnResume, btnStop),
		menu.Row(btnMainMenu),
	)
	return menu
}
