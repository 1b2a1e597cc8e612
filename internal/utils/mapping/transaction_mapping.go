package mapping

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/SscSPs/personal_finance_tracker/internal/core/domain"
	"github.com/SscSPs/personal_finance_tracker/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		ID:        d.ID,
		UserID:    d.UserID,
		Title:     d.Title,
		Amount:    d.Amount,
		Type:      string(d.Type),
		Category:  d.Category,
		Date:      d.Date,
		CreatedAt: d.CreatedAt,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		ID:        m.ID,
		UserID:    m.UserID,
		Title:     m.Title,
		Amount:    m.Amount,
		Type:      domain.TransactionType(m.Type),
		Category:  m.Category,
		Date:      m.Date,
		CreatedAt: m.CreatedAt,
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}

// ToFileTransaction converts a domain Transaction to its flat file form.
// The owner and creation time are not part of the file format.
func ToFileTransaction(d domain.Transaction) models.FileTransaction {
	return models.FileTransaction{
		ID:       json.Number(strconv.FormatInt(d.ID, 10)),
		Title:    d.Title,
		Amount:   json.Number(d.Amount.String()),
		Type:     string(d.Type),
		Category: d.Category,
		Date:     d.Date,
	}
}

// FromFileTransaction converts a flat file record to a domain Transaction owned by the
// legacy owner. Fractional ids written by older versions (seconds since the epoch) are
// normalized to microseconds.
func FromFileTransaction(m models.FileTransaction) (domain.Transaction, error) {
	id, err := NormalizeFileID(m.ID)
	if err != nil {
		return domain.Transaction{}, err
	}
	amount, err := domain.ParseAmount(m.Amount)
	if err != nil {
		return domain.Transaction{}, err
	}
	return domain.Transaction{
		ID:       id,
		UserID:   domain.LegacyOwnerID,
		Title:    m.Title,
		Amount:   amount,
		Type:     domain.TransactionType(m.Type),
		Category: m.Category,
		Date:     m.Date,
	}, nil
}

// NormalizeFileID turns a file id into an integer. Integral ids are kept as they are;
// fractional ids are taken as seconds and converted to microseconds.
func NormalizeFileID(raw json.Number) (int64, error) {
	if id, err := raw.Int64(); err == nil {
		return id, nil
	}
	d, err := decimal.NewFromString(raw.String())
	if err != nil {
		return 0, fmt.Errorf("invalid transaction id %q: %w", raw.String(), err)
	}
	return d.Shift(6).IntPart(), nil
}
