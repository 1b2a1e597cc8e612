package dto

import "github.com/shopspring/decimal"

// Amount is a money value that always encodes as a bare JSON number, whatever
// decimal.MarshalJSONWithoutQuotes is set to.
type Amount decimal.Decimal

// NewAmount wraps d for a response body.
func NewAmount(d decimal.Decimal) Amount {
	return Amount(d)
}

// Decimal returns the underlying value.
func (a Amount) Decimal() decimal.Decimal {
	return decimal.Decimal(a)
}

func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(a.Decimal().String()), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*a = Amount(d)
	return nil
}
