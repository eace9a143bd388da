package domain

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nekorytaylor666/infobuh-sub000/internal/apperrors"
)

// Currency represents a supported currency. Amounts in this currency are
// stored as integer smallest units, 10^Decimals per major unit.
type Currency struct {
	CurrencyID     string `json:"currencyID"`
	Code           string `json:"code"` // ISO 4217, e.g. "KZT"
	Name           string `json:"name"`
	Decimals       int32  `json:"decimals"`
	IsBaseCurrency bool   `json:"isBaseCurrency"`
	IsActive       bool   `json:"isActive"`
	AuditFields
}

// ToMinorUnits converts a major-unit amount into smallest units. Amounts with
// more fractional digits than the currency allows are rejected.
func (c Currency) ToMinorUnits(amount decimal.Decimal) (int64, error) {
	scaled := amount.Shift(c.Decimals)
	if !scaled.Equal(scaled.Truncate(0)) {
		return 0, fmt.Errorf("%w: amount %s has more than %d decimal places for %s", apperrors.ErrValidation, amount.String(), c.Decimals, c.Code)
	}
	if !scaled.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: amount %s is out of range for %s", apperrors.ErrValidation, amount.String(), c.Code)
	}
	return scaled.IntPart(), nil
}

// ParseMinorUnits parses a major-unit amount such as "1500.25" and converts it
// with ToMinorUnits.
func (c Currency) ParseMinorUnits(amount string) (int64, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid amount %q", apperrors.ErrValidation, amount)
	}
	return c.ToMinorUnits(d)
}

// FromMinorUnits converts smallest units into a major-unit decimal.
func (c Currency) FromMinorUnits(units int64) decimal.Decimal {
	return decimal.New(units, -c.Decimals)
}
