// internal/api/handler/web/portfolio.go
package web

import (
	"errors"
	"net/http"

	"github.com/newthinker/cryptofolio/internal/core"
	"github.com/newthinker/cryptofolio/internal/format"
	"github.com/newthinker/cryptofolio/internal/portfolio"
	"go.uber.org/zap"
)

// Tabs of the portfolio page
const (
	TabAssets = "assets"
	TabMarket = "market"
)

// SummaryView holds the three summary cards.
type SummaryView struct {
	TotalValue    string
	PercentAbs    string
	PercentTrend  core.Trend
	Count         int
	ChangeAbs     string
	ChangeTrend   core.Trend
	SignedPercent string
}

// HoldingRow is a holding for display
type HoldingRow struct {
	ID     string
	Name   string
	Symbol string
	Icon   string
	Value  string
	Amount string
	Change string
	Trend  core.Trend
}

// MarketRow is a market asset for display
type MarketRow struct {
	ID     string
	Name   string
	Symbol string
	Icon   string
	Price  string
	Change string
	Trend  core.Trend
}

// AssetOption is an entry of the asset selector
type AssetOption struct {
	ID       string
	Label    string
	Selected bool
}

// PortfolioData holds data for the portfolio template
type PortfolioData struct {
	Title      string
	Tab        string
	DialogOpen bool
	Summary    SummaryView
	Holdings   []HoldingRow
	Market     []MarketRow
	Options    []AssetOption
	Pending    portfolio.PendingForm
	Ready      bool
}

// Portfolio renders the portfolio page
func (h *Handler) Portfolio(w http.ResponseWriter, r *http.Request) {
	tab := r.URL.Query().Get("tab")
	if tab != TabMarket {
		tab = TabAssets
	}

	snap := h.portfolio.Snapshot()
	pending := h.portfolio.Pending()

	data := PortfolioData{
		Title:      "Meu Portfólio de Criptomoedas",
		Tab:        tab,
		DialogOpen: r.URL.Query().Get("dialog") == "add",
		Summary:    h.summary(snap.Totals),
		Holdings:   make([]HoldingRow, 0, len(snap.Holdings)),
		Pending:    pending,
		Ready:      h.portfolio.Ready(pending),
	}

	for _, hd := range snap.Holdings {
		data.Holdings = append(data.Holdings, HoldingRow{
			ID:     hd.ID,
			Name:   hd.Name,
			Symbol: hd.Symbol,
			Icon:   h.icons.Icon(hd.ID),
			Value:  h.formatter.Money(hd.Value),
			Amount: h.formatter.Amount(hd.Amount, hd.Price),
			Change: format.Percent(hd.Change24h),
			Trend:  core.TrendOf(hd.Change24h),
		})
	}

	for _, a := range h.portfolio.Catalog().List() {
		data.Market = append(data.Market, MarketRow{
			ID:     a.ID,
			Name:   a.Name,
			Symbol: a.Symbol,
			Icon:   h.icons.Icon(a.ID),
			Price:  h.formatter.Money(a.Price),
			Change: format.Percent(a.Change24h),
			Trend:  core.TrendOf(a.Change24h),
		})
		data.Options = append(data.Options, AssetOption{
			ID:       a.ID,
			Label:    a.Name + " (" + a.Symbol + ")",
			Selected: a.ID == pending.SelectedAssetID,
		})
	}

	h.render(w, "portfolio.html", data)
}

// AddAsset handles the add-asset dialog submission. Invalid input is
// ignored: the dialog is shown again with the entered values.
func (h *Handler) AddAsset(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	if err := h.portfolio.Submit(r.PostForm.Get("asset"), r.PostForm.Get("amount")); err != nil {
		h.logger.Debug("add asset ignored", zap.Error(err))
		if h.onReject != nil {
			var ce *core.Error
			if errors.As(err, &ce) {
				h.onReject(ce.Code)
			}
		}
		http.Redirect(w, r, "/?dialog=add", http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// RemoveAsset removes a holding and returns to the assets tab.
func (h *Handler) RemoveAsset(w http.ResponseWriter, r *http.Request) {
	h.portfolio.RemoveAsset(r.PathValue("id"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) summary(t core.Totals) SummaryView {
	return SummaryView{
		TotalValue:    h.formatter.Money(t.Value),
		PercentAbs:    format.Percent(t.ChangePercent),
		PercentTrend:  core.TrendOf(t.ChangePercent),
		Count:         t.Count,
		ChangeAbs:     h.formatter.MoneyAbs(t.ChangeCurrency),
		ChangeTrend:   core.TrendOf(t.ChangeCurrency),
		SignedPercent: format.SignedPercent(t.ChangePercent),
	}
}
