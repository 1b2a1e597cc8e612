package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/SscSPs/personal_finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/personal_finance_tracker/internal/dto"
	"github.com/SscSPs/personal_finance_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
)

// transactionHandler handles HTTP requests related to transactions.
type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	isProduction       bool
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade, isProduction bool) *transactionHandler {
	return &transactionHandler{
		transactionService: ts,
		isProduction:       isProduction,
	}
}

// registerTransactionRoutes registers routes related to transactions.
func registerTransactionRoutes(rg *gin.RouterGroup, ts portssvc.TransactionSvcFacade, isProduction bool) {
	h := newTransactionHandler(ts, isProduction)

	transactions := rg.Group("/transactions")
	{
		transactions.GET("", h.listTransactions)
		transactions.POST("", h.createTransaction)
		transactions.PUT("/:id", h.updateTransaction)
		transactions.DELETE("/:id", h.deleteTransaction)
	}
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists the caller's transactions in insertion order, optionally filtered by date range, category and type
// @Tags transactions
// @Produce json
// @Param start_date query string false "Inclusive lower date bound (YYYY-MM-DD)"
// @Param end_date query string false "Inclusive upper date bound (YYYY-MM-DD)"
// @Param category query string false "Category name, or 'all'"
// @Param type query string false "income, expense or all"
// @Success 200 {array} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse "Invalid query parameters"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} ErrorResponse "Failed to list transactions"
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query parameters for ListTransactions", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: bindingErrorMessage(err)})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	transactions, err := h.transactionService.ListTransactions(c.Request.Context(), userID, params)
	if err != nil {
		logServiceError(logger, "Failed to list transactions", err)
		c.JSON(errorStatus(err), ErrorResponse{Error: errorMessage(err, h.isProduction)})
		return
	}

	logger.Debug("Listed transactions", slog.Int("count", len(transactions)))
	c.JSON(http.StatusOK, dto.ToTransactionResponses(transactions))
}

// createTransaction godoc
// @Summary Create a transaction
// @Description Records an income or expense. Type is inferred from the amount's sign when omitted; the stored sign always agrees with the type.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 200 {object} dto.TransactionEnvelope
// @Failure 400 {object} dto.TransactionEnvelope "Missing or invalid fields"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.TransactionEnvelope "Amount could not be converted, or storage failure"
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.NewFailureEnvelope(bindingErrorMessage(err)))
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), userID, req)
	if err != nil {
		logServiceError(logger, "Failed to create transaction", err)
		c.JSON(errorStatus(err), dto.NewFailureEnvelope(errorMessage(err, h.isProduction)))
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionEnvelope(txn))
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Applies a partial update. Changing the amount or type re-applies the sign rule.
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Param transaction body dto.UpdateTransactionRequest true "Fields to change"
// @Success 200 {object} dto.TransactionEnvelope
// @Failure 400 {object} dto.TransactionEnvelope "No data provided or invalid fields"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.TransactionEnvelope "Transaction not found"
// @Failure 500 {object} dto.TransactionEnvelope "Amount could not be converted, or storage failure"
// @Security BearerAuth
// @Router /transactions/{id} [put]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	transactionID, ok := parseTransactionID(c)
	if !ok {
		return
	}
	logger = logger.With(slog.Int64("transaction_id", transactionID))

	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTransaction", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.NewFailureEnvelope(bindingErrorMessage(err)))
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), userID, transactionID, req)
	if err != nil {
		logServiceError(logger, "Failed to update transaction", err)
		c.JSON(errorStatus(err), dto.NewFailureEnvelope(h.envelopeMessage(err)))
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionEnvelope(txn))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Description Removes a transaction and returns the removed record
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Success 200 {object} dto.TransactionEnvelope
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} dto.TransactionEnvelope "Transaction not found"
// @Failure 500 {object} dto.TransactionEnvelope "Storage failure"
// @Security BearerAuth
// @Router /transactions/{id} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	transactionID, ok := parseTransactionID(c)
	if !ok {
		return
	}
	logger = logger.With(slog.Int64("transaction_id", transactionID))

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	txn, err := h.transactionService.DeleteTransaction(c.Request.Context(), userID, transactionID)
	if err != nil {
		logServiceError(logger, "Failed to delete transaction", err)
		c.JSON(errorStatus(err), dto.NewFailureEnvelope(h.envelopeMessage(err)))
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionEnvelope(txn))
}

func (h *transactionHandler) envelopeMessage(err error) string {
	if errorStatus(err) == http.StatusNotFound {
		return "Transaction not found"
	}
	return errorMessage(err, h.isProduction)
}

// parseTransactionID reads the :id path parameter. Ids that are not integers cannot
// name a transaction, so they answer 404 like an unknown id.
func parseTransactionID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		middleware.GetLoggerFromContext(c).Warn("Unparseable transaction id", slog.String("id", c.Param("id")))
		c.JSON(http.StatusNotFound, dto.NewFailureEnvelope("Transaction not found"))
		return 0, false
	}
	return id, true
}
