package handler

import (
	"wordreader/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const startText = `👋 Welcome to WordReader!

Send a word, then its translation, and I add the pair to your table.
Press Play and I read the table aloud, row by row.

/table - show the table
/addrow, /addcolumn [label] - grow the table
/import a,b,c,d - append pairs, /export - copy them out
/save name, /load name, /tables - your table library
/play [repeat], /pause, /resume, /stop
/rate 1.5, /voices, /voice lang name
/signup email password, /login email password, /logout`

// handleStart handles /start command and the main menu button
func (h *Handler) handleStart(c tele.Context) error {
	chatID := c.Chat().ID

	h.logger.Info("User started bot",
		zap.Int64("chat_id", chatID),
		zap.String("username", c.Sender().Username),
	)

	h.SetState(chatID, &domain.StateData{State: domain.StateWaitingSource})

	if c.Callback() != nil {
		if err := c.Edit(startText, mainMenuMarkup()); err != nil {
			if handleErr := h.handleEditError(err, c, chatID); handleErr == nil {
				return nil
			}
			return c.Send(startText, mainMenuMarkup())
		}
		return c.Respond()
	}
	return c.Send(startText, mainMenuMarkup())
}
