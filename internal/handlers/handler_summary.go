package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/personal_finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/personal_finance_tracker/internal/dto"
	"github.com/SscSPs/personal_finance_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

type summaryHandler struct {
	summaryService portssvc.SummarySvc
	isProduction   bool
}

func registerSummaryRoutes(rg *gin.RouterGroup, ss portssvc.SummarySvc, isProduction bool) {
	h := &summaryHandler{summaryService: ss, isProduction: isProduction}
	rg.GET("/summary", h.getSummary)
}

// getSummary godoc
// @Summary Summarize transactions
// @Description Totals and per-category breakdowns of the caller's transactions, optionally limited to a date range
// @Tags summary
// @Produce json
// @Param start_date query string false "Inclusive lower date bound (YYYY-MM-DD)"
// @Param end_date query string false "Inclusive upper date bound (YYYY-MM-DD)"
// @Success 200 {object} dto.SummaryResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to compute summary"
// @Security BearerAuth
// @Router /summary [get]
func (h *summaryHandler) getSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var params dto.SummaryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters for GetSummary", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	summary, err := h.summaryService.GetSummary(c.Request.Context(), userID, params)
	if err != nil {
		logServiceError(logger, "Failed to compute summary", err)
		c.JSON(errorStatus(err), ErrorResponse{Error: errorMessage(err, h.isProduction)})
		return
	}

	c.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}
