package handlers

import (
	"encoding/gob"
	"log/slog"
	"net/http"

	"github.com/SscSPs/personal_finance_tracker/internal/middleware"
	"github.com/SscSPs/personal_finance_tracker/internal/platform/config"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const flashSessionName = "pft_flash"

// Flash categories understood by the templates.
const (
	flashSuccess = "success"
	flashError   = "error"
	flashInfo    = "info"
)

// flashMessage is a one-shot notice shown on the next rendered page.
type flashMessage struct {
	Category string
	Message  string
}

func init() {
	gob.Register(flashMessage{})
}

// useFlashSessions installs the signed cookie session that carries flash messages
// between a redirect and the page it lands on.
func useFlashSessions(r *gin.Engine, cfg *config.Config) {
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   cfg.IsProduction,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(flashSessionName, store))
}

// addFlash queues a message for the next page render. It must run before the
// response is written.
func addFlash(c *gin.Context, category, message string) {
	session := sessions.Default(c)
	session.AddFlash(flashMessage{Category: category, Message: message})
	if err := session.Save(); err != nil {
		middleware.GetLoggerFromContext(c).Warn("Failed to store flash message", slog.String("error", err.Error()))
	}
}

// popFlashes returns the pending messages and clears them.
func popFlashes(c *gin.Context) []flashMessage {
	session := sessions.Default(c)
	pending := session.Flashes()
	if len(pending) == 0 {
		return nil
	}
	if err := session.Save(); err != nil {
		middleware.GetLoggerFromContext(c).Warn("Failed to clear flash messages", slog.String("error", err.Error()))
	}

	messages := make([]flashMessage, 0, len(pending))
	for _, v := range pending {
		if m, ok := v.(flashMessage); ok {
			messages = append(messages, m)
		}
	}
	return messages
}
