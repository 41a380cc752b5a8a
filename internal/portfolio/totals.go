package portfolio

import (
	"github.com/newthinker/cryptofolio/internal/core"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComputeTotals derives the aggregate figures of holdings.
//
// The percent change is taken against the prior-day base
// (value - change), not averaged across holdings. It is zero for an
// empty portfolio or a zero base.
func ComputeTotals(holdings []core.Holding) core.Totals {
	value := decimal.Zero
	change := decimal.Zero
	for _, h := range holdings {
		value = value.Add(h.Value)
		change = change.Add(h.ChangeValue())
	}

	percent := decimal.Zero
	base := value.Sub(change)
	if value.IsPositive() && !base.IsZero() {
		percent = change.Div(base).Mul(hundred)
	}

	return core.Totals{
		Value:          value,
		ChangeCurrency: change,
		ChangePercent:  percent,
		Count:          len(holdings),
	}
}
