package core

import "github.com/shopspring/decimal"

// MarketAsset is static reference data for a tradable asset.
type MarketAsset struct {
	ID        string
	Name      string
	Symbol    string
	Price     decimal.Decimal
	Change24h decimal.Decimal // percent, e.g. 2.34 for +2.34%
}

// Holding is an asset held in the portfolio.
// Value is Amount * Price at the time of the last mutation; it is never repriced.
type Holding struct {
	ID        string
	Name      string
	Symbol    string
	Amount    decimal.Decimal
	Price     decimal.Decimal
	Change24h decimal.Decimal
	Value     decimal.Decimal
}

// NewHolding creates a holding of amount units of asset.
func NewHolding(asset MarketAsset, amount decimal.Decimal) Holding {
	return Holding{
		ID:        asset.ID,
		Name:      asset.Name,
		Symbol:    asset.Symbol,
		Amount:    amount,
		Price:     asset.Price,
		Change24h: asset.Change24h,
		Value:     amount.Mul(asset.Price),
	}
}

// WithAdded returns a copy of h with amount added and the value recomputed at price.
func (h Holding) WithAdded(amount, price decimal.Decimal) Holding {
	h.Amount = h.Amount.Add(amount)
	h.Price = price
	h.Value = h.Amount.Mul(price)
	return h
}

// ChangeValue returns the 24h change of the holding in currency.
func (h Holding) ChangeValue() decimal.Decimal {
	return h.Value.Mul(h.Change24h).Div(hundred)
}

// Totals are the aggregate figures derived from a holdings list.
type Totals struct {
	Value          decimal.Decimal
	ChangeCurrency decimal.Decimal
	ChangePercent  decimal.Decimal
	Count          int
}

// Trend is the direction of a change.
type Trend string

const (
	TrendUp   Trend = "up"
	TrendDown Trend = "down"
)

// TrendOf reports TrendUp only for strictly positive changes.
func TrendOf(change decimal.Decimal) Trend {
	if change.IsPositive() {
		return TrendUp
	}
	return TrendDown
}

var hundred = decimal.NewFromInt(100)
