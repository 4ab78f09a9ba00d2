package middleware

import (
	"strconv"

	"wordreader/internal/service"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// WorkspaceKey is the context key holding the chat's *service.Workspace
const WorkspaceKey = "workspace"

// WorkspaceID maps a chat to its workspace id
func WorkspaceID(chatID int64) string {
	return strconv.FormatInt(chatID, 10)
}

// ChatID is the inverse of WorkspaceID
func ChatID(workspaceID string) (int64, error) {
	return strconv.ParseInt(workspaceID, 10, 64)
}

// Workspace attaches the chat's workspace to the context, creating it on
// the chat's first update
func Workspace(manager *service.WorkspaceManager, logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			chat := c.Chat()
			if chat == nil {
				return next(c)
			}

			ws := manager.GetOrCreate(WorkspaceID(chat.ID))
			c.Set(WorkspaceKey, ws)

			logger.Debug("Update received",
				zap.Int64("chat_id", chat.ID),
				zap.String("text", c.Text()),
			)
			return next(c)
		}
	}
}

// FromContext returns the workspace attached by Workspace
func FromContext(c tele.Context) (*service.Workspace, bool) {
	ws, ok := c.Get(WorkspaceKey).(*service.Workspace)
	return ws, ok
}
