package handler

import (
	"strings"
	"unicode"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanCallbackData removes all non-printable characters from callback data
func cleanCallbackData(data string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(data))
}

// handleEditError handles errors from c.Edit(). An unmodified message only
// needs the callback acknowledged; any other error is returned so the
// caller can send a new message instead.
func (h *Handler) handleEditError(err error, c tele.Context, chatID int64) error {
	if err == nil {
		return nil
	}

	// Pressing the same button twice leaves the message as it was
	if strings.Contains(err.Error(), "message is not modified") {
		h.logger.Debug("Message already up to date, acknowledging",
			zap.Int64("chat_id", chatID),
			zap.String("callback_id", c.Callback().ID),
		)
		_ = c.Respond()
		return nil
	}

	h.logger.Warn("Failed to edit message, sending new",
		zap.Error(err),
		zap.Int64("chat_id", chatID),
		zap.String("callback_id", c.Callback().ID),
	)
	if ackErr := c.Respond(); ackErr != nil {
		h.logger.Warn("Failed to acknowledge callback", zap.Error(ackErr))
	}
	return err
}

// callbackRoute maps button data to its handler name; buttons normally
// arrive with Unique set, but some clients only deliver the data
func (h *Handler) callbackRoute(key string) tele.HandlerFunc {
	switch key {
	case btnPlay.Unique:
		return h.handlePlay
	case btnPause.Unique:
		return h.handlePause
	case btnResume.Unique:
		return h.handleResume
	case btnStop.Unique:
		return h.handleStop
	case btnTable.Unique:
		return h.handleTable
	case btnExport.Unique:
		return h.handleExport
	case btnMainMenu.Unique:
		return h.handleStart
	}
	return nil
}

// handleCallback handles callback queries not matched by a button handler
func (h *Handler) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		h.logger.Warn("handleCallback: callback is nil")
		return nil
	}

	data := cleanCallbackData(callback.Data)
	h.logger.Info("handleCallback: Processing callback",
		zap.String("data", data),
		zap.String("id", callback.ID),
		zap.String("unique", callback.Unique),
		zap.Int64("chat_id", c.Chat().ID),
	)

	key := callback.Unique
	if key == "" {
		key = data
	}
	if next := h.callbackRoute(key); next != nil {
		return next(c)
	}

	h.logger.Warn("Unhandled callback",
		zap.String("data", data),
		zap.String("unique", callback.Unique),
	)
	return c.Respond()
}
