package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the row layout of the transactions table.
type Transaction struct {
	ID        int64           `db:"id"`
	UserID    int64           `db:"user_id"`
	Title     string          `db:"title"`
	Amount    decimal.Decimal `db:"amount"`
	Type      string          `db:"type"`
	Category  string          `db:"category"`
	Date      string          `db:"date"`
	CreatedAt time.Time       `db:"created_at"`
}

// FileTransaction is one element of the flat transactions file. The id is kept as
// json.Number so that legacy fractional ids survive decoding. Amount holds whatever
// the file carries (number or numeric string) and is converted on read.
type FileTransaction struct {
	ID       json.Number `json:"id"`
	Title    string      `json:"title"`
	Amount   any         `json:"amount"`
	Type     string      `json:"type"`
	Category string      `json:"category"`
	Date     string      `json:"date"`
}
