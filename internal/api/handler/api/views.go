package api

import (
	"github.com/newthinker/cryptofolio/internal/core"
	"github.com/newthinker/cryptofolio/internal/portfolio"
)

// HoldingView is the JSON form of a holding.
type HoldingView struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Symbol    string  `json:"symbol"`
	Amount    float64 `json:"amount"`
	Price     float64 `json:"price"`
	Change24h float64 `json:"change_24h"`
	Value     float64 `json:"value"`
}

// TotalsView is the JSON form of the portfolio totals.
type TotalsView struct {
	Value          float64 `json:"value"`
	ChangeCurrency float64 `json:"change_24h"`
	ChangePercent  float64 `json:"change_24h_percent"`
	Count          int     `json:"count"`
}

// PortfolioView is the JSON form of a portfolio snapshot.
type PortfolioView struct {
	Holdings []HoldingView `json:"holdings"`
	Totals   TotalsView    `json:"totals"`
}

// MarketAssetView is the JSON form of a market asset.
type MarketAssetView struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	Change24h float64 `json:"change_24h"`
}

func portfolioView(snap portfolio.Snapshot) PortfolioView {
	holdings := make([]HoldingView, 0, len(snap.Holdings))
	for _, h := range snap.Holdings {
		holdings = append(holdings, HoldingView{
			ID:        h.ID,
			Name:      h.Name,
			Symbol:    h.Symbol,
			Amount:    h.Amount.InexactFloat64(),
			Price:     h.Price.InexactFloat64(),
			Change24h: h.Change24h.InexactFloat64(),
			Value:     h.Value.InexactFloat64(),
		})
	}
	return PortfolioView{
		Holdings: holdings,
		Totals: TotalsView{
			Value:          snap.Totals.Value.InexactFloat64(),
			ChangeCurrency: snap.Totals.ChangeCurrency.InexactFloat64(),
			ChangePercent:  snap.Totals.ChangePercent.InexactFloat64(),
			Count:          snap.Totals.Count,
		},
	}
}

func marketAssetView(a core.MarketAsset) MarketAssetView {
	return MarketAssetView{
		ID:        a.ID,
		Name:      a.Name,
		Symbol:    a.Symbol,
		Price:     a.Price.InexactFloat64(),
		Change24h: a.Change24h.InexactFloat64(),
	}
}
