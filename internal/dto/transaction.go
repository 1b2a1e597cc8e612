package dto

import (
	"time"

	"github.com/SscSPs/personal_finance_tracker/internal/core/domain"
)

// CreateTransactionRequest defines the body accepted when creating a transaction.
// Pointers distinguish omitted fields from empty ones. Amount is left loosely typed so
// that non-numeric input surfaces as a conversion error rather than a binding error.
type CreateTransactionRequest struct {
	Title    *string `json:"title" binding:"omitempty,max=100"`
	Amount   any     `json:"amount" swaggertype:"number"`
	Type     *string `json:"type" binding:"omitempty,oneof=income expense"`
	Category *string `json:"category" binding:"omitempty,max=50"`
	Date     *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

// ToParams converts the request into domain construction parameters for userID.
func (r CreateTransactionRequest) ToParams(userID int64) domain.NewTransactionParams {
	return domain.NewTransactionParams{
		UserID:   userID,
		Title:    r.Title,
		Amount:   r.Amount,
		Type:     r.Type,
		Category: r.Category,
		Date:     r.Date,
	}
}

// UpdateTransactionRequest defines the data allowed for updating a transaction.
// Only the supplied fields change.
type UpdateTransactionRequest struct {
	Title    *string `json:"title" binding:"omitempty,max=100"`
	Amount   any     `json:"amount" swaggertype:"number"`
	Type     *string `json:"type" binding:"omitempty,oneof=income expense"`
	Category *string `json:"category" binding:"omitempty,max=50"`
	Date     *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

// ToPatch converts the request into a domain patch.
func (r UpdateTransactionRequest) ToPatch() domain.TransactionPatch {
	return domain.TransactionPatch{
		Title:    r.Title,
		Amount:   r.Amount,
		Type:     r.Type,
		Category: r.Category,
		Date:     r.Date,
	}
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	StartDate string `form:"start_date" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"end_date" binding:"omitempty,datetime=2006-01-02"`
	Category  string `form:"category"`
	Type      string `form:"type" binding:"omitempty,oneof=income expense all"`
}

// ToFilter converts the query parameters into a domain filter.
func (p ListTransactionsParams) ToFilter() domain.TransactionFilter {
	return domain.TransactionFilter{
		StartDate: p.StartDate,
		EndDate:   p.EndDate,
		Category:  p.Category,
		Type:      p.Type,
	}
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	ID        int64           `json:"id"`
	Title     string          `json:"title"`
	Amount    Amount          `json:"amount" swaggertype:"number"`
	Type      string          `json:"type"`
	Category  string          `json:"category"`
	Date      string          `json:"date"`
	CreatedAt *time.Time      `json:"created_at,omitempty"`
	UserID    *int64          `json:"user_id,omitempty"`
}

// TransactionEnvelope wraps a transaction (or a failure message) for mutating endpoints.
type TransactionEnvelope struct {
	Success     bool                 `json:"success"`
	Transaction *TransactionResponse `json:"transaction,omitempty"`
	Message     string               `json:"message,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
// Store-less fields (creation time, owner) are omitted when unset.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:       txn.ID,
		Title:    txn.Title,
		Amount:   NewAmount(txn.Amount),
		Type:     string(txn.Type),
		Category: txn.Category,
		Date:     txn.Date,
	}
	if !txn.CreatedAt.IsZero() {
		createdAt := txn.CreatedAt
		resp.CreatedAt = &createdAt
	}
	if txn.UserID != domain.LegacyOwnerID {
		userID := txn.UserID
		resp.UserID = &userID
	}
	return resp
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
// The result is never nil so that it serializes as an empty JSON array.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}

// NewTransactionEnvelope wraps a successful result.
func NewTransactionEnvelope(txn *domain.Transaction) TransactionEnvelope {
	resp := ToTransactionResponse(txn)
	return TransactionEnvelope{Success: true, Transaction: &resp}
}

// NewFailureEnvelope wraps a failure message.
func NewFailureEnvelope(message string) TransactionEnvelope {
	return TransactionEnvelope{Success: false, Message: message}
}
