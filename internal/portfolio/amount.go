package portfolio

import (
	"strings"

	"github.com/newthinker/cryptofolio/internal/core"
	"github.com/shopspring/decimal"
)

// ParseAmount parses user input as a finite positive amount.
func ParseAmount(text string) (decimal.Decimal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return decimal.Zero, core.ErrFormIncomplete
	}

	amount, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, core.WrapError(core.ErrInvalidAmount, err)
	}
	if !amount.IsPositive() {
		return decimal.Zero, core.ErrInvalidAmount
	}
	return amount, nil
}
