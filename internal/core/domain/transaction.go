package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SscSPs/personal_finance_tracker/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction is money coming in or going out.
type TransactionType string

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

// FilterAll is the sentinel value that disables the category and type filters.
const FilterAll = "all"

// Default categories applied when a transaction is created without one.
const (
	DefaultIncomeCategory  = "Other Income"
	DefaultExpenseCategory = "Other Expense"
)

// Column limits shared by every store.
const (
	MaxTitleLength    = 100
	MaxCategoryLength = 50
)

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

// Transaction is a single income or expense record owned by a user.
type Transaction struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"userID"`
	Title     string          `json:"title"`
	Amount    decimal.Decimal `json:"amount"` // Signed: negative for expenses
	Type      TransactionType `json:"type"`
	Category  string          `json:"category"`
	Date      string          `json:"date"` // YYYY-MM-DD, compared as text
	CreatedAt time.Time       `json:"createdAt"`
}

// NewTransactionParams carries the client supplied fields for a new transaction.
// Nil pointers mean the field was omitted.
type NewTransactionParams struct {
	UserID   int64
	Title    *string
	Amount   any
	Type     *string
	Category *string
	Date     *string
}

// TransactionPatch holds the fields of a partial update. Nil means "leave unchanged".
type TransactionPatch struct {
	Title    *string
	Amount   any
	Type     *string
	Category *string
	Date     *string
}

// IsEmpty reports whether the patch carries no field at all.
func (p TransactionPatch) IsEmpty() bool {
	return p.Title == nil && p.Amount == nil && p.Type == nil && p.Category == nil && p.Date == nil
}

// NewTransaction builds a validated transaction from client input, applying the type,
// category and sign defaulting rules. It is the only place these rules live.
func NewTransaction(p NewTransactionParams) (Transaction, error) {
	if p.Title == nil || p.Amount == nil || p.Date == nil {
		return Transaction{}, fmt.Errorf("%w: missing required fields", apperrors.ErrValidation)
	}
	title := strings.TrimSpace(*p.Title)
	if err := validateTitle(title); err != nil {
		return Transaction{}, err
	}
	date := strings.TrimSpace(*p.Date)
	if date == "" {
		return Transaction{}, fmt.Errorf("%w: date cannot be empty", apperrors.ErrValidation)
	}

	amount, err := ParseAmount(p.Amount)
	if err != nil {
		return Transaction{}, err
	}

	txnType := TypeFromAmount(amount)
	if p.Type != nil {
		txnType = TransactionType(*p.Type)
		if !txnType.IsValid() {
			return Transaction{}, fmt.Errorf("%w: type must be 'income' or 'expense'", apperrors.ErrValidation)
		}
	}

	category := DefaultCategory(txnType)
	if p.Category != nil && strings.TrimSpace(*p.Category) != "" {
		category = *p.Category
	}
	if err := validateCategory(category); err != nil {
		return Transaction{}, err
	}

	return Transaction{
		UserID:   p.UserID,
		Title:    title,
		Amount:   ReconcileSign(amount, txnType),
		Type:     txnType,
		Category: category,
		Date:     date,
	}, nil
}

// ApplyPatch returns a copy of t with the patch applied. Identity fields (ID, UserID,
// CreatedAt) never change. If the patch touches amount or type, the amount's sign is
// reconciled with the resulting type.
func (t Transaction) ApplyPatch(p TransactionPatch) (Transaction, error) {
	if p.IsEmpty() {
		return Transaction{}, fmt.Errorf("%w: no data provided", apperrors.ErrValidation)
	}
	updated := t

	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if err := validateTitle(title); err != nil {
			return Transaction{}, err
		}
		updated.Title = title
	}
	if p.Date != nil {
		if strings.TrimSpace(*p.Date) == "" {
			return Transaction{}, fmt.Errorf("%w: date cannot be empty", apperrors.ErrValidation)
		}
		updated.Date = strings.TrimSpace(*p.Date)
	}
	if p.Category != nil {
		if err := validateCategory(*p.Category); err != nil {
			return Transaction{}, err
		}
		updated.Category = *p.Category
	}
	if p.Type != nil {
		txnType := TransactionType(*p.Type)
		if !txnType.IsValid() {
			return Transaction{}, fmt.Errorf("%w: type must be 'income' or 'expense'", apperrors.ErrValidation)
		}
		updated.Type = txnType
	}
	if p.Amount != nil {
		amount, err := ParseAmount(p.Amount)
		if err != nil {
			return Transaction{}, err
		}
		updated.Amount = amount
	}
	if p.Amount != nil || p.Type != nil {
		updated.Amount = ReconcileSign(updated.Amount, updated.Type)
	}

	return updated, nil
}

func validateTitle(title string) error {
	if title == "" {
		return fmt.Errorf("%w: title cannot be empty", apperrors.ErrValidation)
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return fmt.Errorf("%w: title must be at most %d characters", apperrors.ErrValidation, MaxTitleLength)
	}
	return nil
}

func validateCategory(category string) error {
	if utf8.RuneCountInString(category) > MaxCategoryLength {
		return fmt.Errorf("%w: category must be at most %d characters", apperrors.ErrValidation, MaxCategoryLength)
	}
	return nil
}

// ParseAmount converts a loosely typed amount (JSON number, numeric string, decimal) into
// a decimal. Anything else yields an error wrapping apperrors.ErrConversion.
func ParseAmount(raw any) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case decimal.Decimal:
		return v, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case json.Number:
		return parseAmountString(v.String())
	case string:
		return parseAmountString(v)
	case nil:
		return decimal.Zero, fmt.Errorf("%w: amount is required", apperrors.ErrConversion)
	default:
		return decimal.Zero, fmt.Errorf("%w: could not convert %v to a number", apperrors.ErrConversion, raw)
	}
}

func parseAmountString(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: could not convert string to number: '%s'", apperrors.ErrConversion, s)
	}
	return d, nil
}

// TypeFromAmount infers the type of a transaction from the sign of its amount.
func TypeFromAmount(amount decimal.Decimal) TransactionType {
	if amount.IsNegative() {
		return Expense
	}
	return Income
}

// DefaultCategory returns the fallback category for a transaction type.
func DefaultCategory(t TransactionType) string {
	if t == Expense {
		return DefaultExpenseCategory
	}
	return DefaultIncomeCategory
}

// ReconcileSign forces the sign of amount to agree with t:
// expenses are negative, income is positive.
func ReconcileSign(amount decimal.Decimal, t TransactionType) decimal.Decimal {
	if t == Expense {
		return amount.Abs().Neg()
	}
	return amount.Abs()
}

// TransactionFilter narrows a transaction listing. Empty fields are ignored.
type TransactionFilter struct {
	StartDate string
	EndDate   string
	Category  string
	Type      string
}

// CategorySelected reports whether the category filter is active.
func (f TransactionFilter) CategorySelected() bool {
	return f.Category != "" && f.Category != FilterAll
}

// TypeSelected reports whether the type filter is active.
func (f TransactionFilter) TypeSelected() bool {
	return f.Type != "" && f.Type != FilterAll
}

// Matches reports whether t satisfies every active condition of the filter.
// Date bounds are inclusive and compared as text.
func (f TransactionFilter) Matches(t Transaction) bool {
	if f.StartDate != "" && t.Date < f.StartDate {
		return false
	}
	if f.EndDate != "" && t.Date > f.EndDate {
		return false
	}
	if f.CategorySelected() && t.Category != f.Category {
		return false
	}
	if f.TypeSelected() && string(t.Type) != f.Type {
		return false
	}
	return true
}
