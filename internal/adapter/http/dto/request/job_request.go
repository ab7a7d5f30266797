package request

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidPrice = errors.New("invalid price")
)

var centsPerUnit = decimal.NewFromInt(100)

// JobCreateRequest is the dashboard payload for creating a job. Price is a
// decimal string in major units ("100.00") and is converted to minor units
// at this boundary so the rest of the system only sees exact cents.
type JobCreateRequest struct {
	Name       string `json:"name" binding:"required"`
	ClientName string `json:"client_name"`
	Price      string `json:"price" binding:"required"`
}

type JobPriceUpdateRequest struct {
	Price string `json:"price" binding:"required"`
}

func (r JobCreateRequest) ResolvePriceCents() (int64, error) {
	return parsePriceCents(r.Price)
}

func (r JobPriceUpdateRequest) ResolvePriceCents() (int64, error) {
	return parsePriceCents(r.Price)
}

func parsePriceCents(price string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return 0, ErrInvalidPrice
	}
	if !d.IsPositive() {
		return 0, ErrInvalidPrice
	}

	cents := d.Mul(centsPerUnit)
	if !cents.IsInteger() {
		// Sub-cent prices cannot be charged.
		return 0, ErrInvalidPrice
	}
	return cents.IntPart(), nil
}
