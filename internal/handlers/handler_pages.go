package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/personal_finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/personal_finance_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// pageHandler renders the HTML dashboard.
type pageHandler struct {
	userService     portssvc.UserReaderSvc
	accountsEnabled bool
}

func registerPageRoutes(rg *gin.RouterGroup, us portssvc.UserReaderSvc, accountsEnabled bool) {
	h := &pageHandler{userService: us, accountsEnabled: accountsEnabled}
	rg.GET("/", h.dashboard)
}

func (h *pageHandler) dashboard(c *gin.Context) {
	data := gin.H{
		"Flashes":         popFlashes(c),
		"AccountsEnabled": h.accountsEnabled,
	}

	if h.accountsEnabled && h.userService != nil {
		if userID, ok := middleware.GetUserIDFromContext(c); ok {
			user, err := h.userService.GetUserByID(c.Request.Context(), userID)
			if err != nil {
				middleware.GetLoggerFromContext(c).Warn("Failed to load user for dashboard", slog.String("error", err.Error()))
			} else {
				data["Username"] = user.Username
			}
		}
	}

	c.HTML(http.StatusOK, "index.html", data)
}
