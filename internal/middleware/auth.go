package middleware

import (
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// RequireLogin lets the update through only when the chat's workspace
// has a logged-in user. It must run after Workspace.
func RequireLogin(logger *zap.Logger) tele.MiddlewareFunc {
	return func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			ws, ok := FromContext(c)
			if !ok {
				logger.Error("RequireLogin used without the workspace middleware")
				return c.Send("Something went wrong. Please try again later.")
			}

			if ws.CurrentUser() == "" {
				return c.Send("⚠️ No user logged in. Use /login email password")
			}

			return next(c)
		}
	}
}
