package handler

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"wordreader/internal/domain"
	"wordreader/internal/service"
	"wordreader/internal/speech"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// logoutTimeout bounds the session record POST made on /logout
const logoutTimeout = 15 * time.Second

// send answers a command or a button press
func (h *Handler) send(c tele.Context, text string, opts ...interface{}) error {
	if c.Callback() != nil {
		if err := c.Respond(); err != nil {
			h.logger.Warn("Failed to acknowledge callback", zap.Error(err))
		}
	}
	return c.Send(text, opts...)
}

// fail turns err into a reply. Known errors are shown as they are,
// anything else is logged and replaced by a generic message.
func (h *Handler) fail(c tele.Context, err error) error {
	msg, known := noticeFor(err)
	if !known {
		h.logger.Error("Command failed",
			zap.Int64("chat_id", c.Chat().ID),
			zap.String("text", c.Text()),
			zap.Error(err),
		)
	}
	return h.send(c, msg)
}

// handleSignUp handles /signup email password
func (h *Handler) handleSignUp(c tele.Context) error {
	args := c.Args()
	if len(args) != 2 {
		return c.Send("Usage: /signup email password")
	}
	h.deleteSecret(c)

	if err := h.workspace(c).SignUp(args[0], args[1]); err != nil {
		return h.fail(c, err)
	}
	return c.Send("✅ Sign up successful! Now /login email password")
}

// handleLogin handles /login email password
func (h *Handler) handleLogin(c tele.Context) error {
	args := c.Args()
	if len(args) != 2 {
		return c.Send("Usage: /login email password")
	}
	h.deleteSecret(c)

	rec, err := h.workspace(c).Login(args[0], args[1])
	if err != nil {
		return h.fail(c, err)
	}
	return c.Send(fmt.Sprintf("✅ Logged in as %s", rec.User))
}

// deleteSecret removes a message carrying a password from the chat
func (h *Handler) deleteSecret(c tele.Context) {
	if err := c.Delete(); err != nil {
		h.logger.Debug("Failed to delete credentials message", zap.Error(err))
	}
}

// handleLogout posts the session record and logs the user out
func (h *Handler) handleLogout(c tele.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), logoutTimeout)
	defer cancel()

	ws := h.workspace(c)
	email := ws.CurrentUser()
	if err := ws.Logout(ctx); err != nil {
		if errors.Is(err, service.ErrSessionNotDelivered) {
			h.logger.Warn("Session record not delivered", zap.Error(err))
			return c.Send(fmt.Sprintf("👋 %s logged out, but the session record could not be sent.", email))
		}
		return h.fail(c, err)
	}
	return c.Send(fmt.Sprintf("👋 %s logged out. Session record sent.", email))
}

// handleSave handles /save name
func (h *Handler) handleSave(c tele.Context) error {
	name := c.Message().Payload
	if err := h.workspace(c).SaveTable(name); err != nil {
		return h.fail(c, err)
	}
	return c.Send(fmt.Sprintf("💾 Table saved as «%s»", strings.TrimSpace(name)))
}

// handleLoad handles /load name
func (h *Handler) handleLoad(c tele.Context) error {
	ws := h.workspace(c)
	if err := ws.LoadTable(c.Message().Payload); err != nil {
		return h.fail(c, err)
	}
	return c.Send(renderTable(ws.Table(), ws.TableName(), ws.Active()), mainMenuMarkup())
}

// handleTables lists the saved tables
func (h *Handler) handleTables(c tele.Context) error {
	names, err := h.workspace(c).Tables()
	if err != nil {
		return h.fail(c, err)
	}
	if len(names) == 0 {
		return c.Send("No saved tables yet. Use /save name.")
	}
	return c.Send("💾 Saved tables:\n\n" + strings.Join(names, "\n"))
}

// handleImport handles /import text. Without text the next message is
// taken as the import.
func (h *Handler) handleImport(c tele.Context) error {
	text := strings.TrimSpace(c.Message().Payload)
	if text == "" {
		h.SetState(c.Chat().ID, &domain.StateData{State: domain.StateWaitingImport})
		return c.Send("Send the comma-separated list to import (word,translation,word,translation,...) or /cancel:")
	}
	return h.importText(c, text)
}

func (h *Handler) importText(c tele.Context, text string) error {
	ws := h.workspace(c)
	n := ws.Import(text)

	h.logger.Info("Table imported",
		zap.Int64("chat_id", c.Chat().ID),
		zap.Int("rows", n),
	)

	return c.Send(fmt.Sprintf("📥 Imported %d rows.\n\n%s", n, renderTable(ws.Table(), ws.TableName(), ws.Active())))
}

// handleExport sends the table in the comma-separated format
func (h *Handler) handleExport(c tele.Context) error {
	text := h.workspace(c).Export()
	if text == "" {
		return h.send(c, "Nothing to export, the table is empty.")
	}
	return h.send(c, text)
}

// handleTable shows the table with the cell being spoken marked
func (h *Handler) handleTable(c tele.Context) error {
	ws := h.workspace(c)
	text := renderTable(ws.Table(), ws.TableName(), ws.Active())

	if c.Callback() != nil {
		chatID := c.Chat().ID
		if err := c.Edit(text, mainMenuMarkup()); err != nil {
			if handleErr := h.handleEditError(err, c, chatID); handleErr == nil {
				return nil
			}
			return c.Send(text, mainMenuMarkup())
		}
		return c.Respond()
	}
	return c.Send(text, mainMenuMarkup())
}

// handleAddRow appends an empty row
func (h *Handler) handleAddRow(c tele.Context) error {
	row := h.workspace(c).AddRow()
	return c.Send(fmt.Sprintf("➕ Row %d added.", row))
}

// handleAddColumn handles /addcolumn [label]
func (h *Handler) handleAddColumn(c tele.Context) error {
	ws := h.workspace(c)
	ws.AddColumn(c.Message().Payload)
	header := ws.Table().Header
	return c.Send(fmt.Sprintf("➕ Column «%s» added.", header[len(header)-1]))
}

// handlePlay handles /play [repeat] and the play button
func (h *Handler) handlePlay(c tele.Context) error {
	ws := h.workspace(c)

	repeat := 0
	if c.Callback() == nil {
		var err error
		if repeat, err = parseRepeat(c.Args()); err != nil {
			return c.Send(capitalize(err.Error()))
		}
	}

	if ws.Table().RowCount() == 0 {
		return h.send(c, "Your table is empty. Send a word to add a row.")
	}

	if err := ws.Play(repeat); err != nil {
		return h.fail(c, err)
	}

	if repeat < 1 {
		repeat = ws.Repeat()
	}
	msg := fmt.Sprintf("▶️ Playing, each row %d×. %s", repeat, ws.Timer())
	return h.send(c, msg, playbackMarkup())
}

// parseRepeat reads the optional repeat argument; 0 means the default
func parseRepeat(args []string) (int, error) {
	if len(args) == 0 {
		return 0, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("repeat must be a whole number of at least 1, e.g. /play 2")
	}
	return n, nil
}

// handlePause holds playback before the next word
func (h *Handler) handlePause(c tele.Context) error {
	h.workspace(c).Pause()
	return h.send(c, "⏸ Paused.", playbackMarkup())
}

// handleResume releases a paused playback
func (h *Handler) handleResume(c tele.Context) error {
	h.workspace(c).Resume()
	return h.send(c, "⏯ Resumed.", playbackMarkup())
}

// handleStop ends the running pass
func (h *Handler) handleStop(c tele.Context) error {
	ws := h.workspace(c)
	ws.Stop()
	return h.send(c, "⏹ Stopped. "+ws.Timer(), mainMenuMarkup())
}

// handleRate handles /rate [x]; without an argument it shows the speed
func (h *Handler) handleRate(c tele.Context) error {
	driver := h.workspace(c).Driver()

	args := c.Args()
	if len(args) == 0 {
		return c.Send("Speed: " + speech.FormatRate(driver.Rate()))
	}

	rate, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return c.Send("Usage: /rate 1.5")
	}
	if err := driver.SetRate(rate); err != nil {
		return h.fail(c, err)
	}
	return c.Send("Speed: " + speech.FormatRate(driver.Rate()))
}

// handleVoices lists the voices per language with the selected one marked
func (h *Handler) handleVoices(c tele.Context) error {
	ws := h.workspace(c)
	return c.Send(renderVoices(ws.Driver(), ws.Locales()))
}

// handleVoice handles /voice lang [name]; without a name the language
// goes back to its default voice
func (h *Handler) handleVoice(c tele.Context) error {
	ws := h.workspace(c)

	args := c.Args()
	if len(args) == 0 {
		return c.Send("Usage: /voice source|target|<lang> [voice name]")
	}

	tag := resolveLanguage(args[0], ws.Locales())
	name := strings.Join(args[1:], " ")
	if err := ws.Driver().SelectVoice(tag, name); err != nil {
		return h.fail(c, err)
	}
	return c.Send(renderVoices(ws.Driver(), ws.Locales()))
}

// resolveLanguage accepts "source", "target" or a language tag
func resolveLanguage(arg string, locales domain.Locales) string {
	switch strings.ToLower(arg) {
	case "source":
		return locales.Source
	case "target":
		return locales.Target
	}
	return arg
}
