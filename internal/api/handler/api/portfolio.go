// internal/api/handler/api/portfolio.go
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/newthinker/cryptofolio/internal/api/response"
	"github.com/newthinker/cryptofolio/internal/core"
	"github.com/newthinker/cryptofolio/internal/portfolio"
	"go.uber.org/zap"
)

// PortfolioHandler handles portfolio API requests.
type PortfolioHandler struct {
	portfolio *portfolio.Portfolio
	logger    *zap.Logger
	onReject  func(code string)
}

// NewPortfolioHandler creates a new portfolio handler.
func NewPortfolioHandler(p *portfolio.Portfolio, logger *zap.Logger) *PortfolioHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PortfolioHandler{portfolio: p, logger: logger}
}

// OnReject registers a callback for add requests ignored because of invalid input.
func (h *PortfolioHandler) OnReject(fn func(code string)) {
	h.onReject = fn
}

// AddRequest is the request body for adding an asset.
type AddRequest struct {
	AssetID string `json:"asset_id"`
	Amount  string `json:"amount"`
}

// Get returns the holdings and totals.
func (h *PortfolioHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, portfolioView(h.portfolio.Snapshot()))
}

// Add adds an asset to the portfolio, merging with an existing holding.
func (h *PortfolioHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrBadRequest, err))
		return
	}

	if err := h.portfolio.AddAsset(req.AssetID, req.Amount); err != nil {
		h.logger.Debug("add asset rejected",
			zap.String("asset_id", req.AssetID),
			zap.String("amount", req.Amount),
			zap.Error(err))
		if h.onReject != nil {
			h.onReject(errorCode(err))
		}
		response.FromError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, portfolioView(h.portfolio.Snapshot()))
}

// Remove removes a holding by id.
func (h *PortfolioHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !h.portfolio.RemoveAsset(id) {
		response.Error(w, http.StatusNotFound, core.ErrHoldingNotFound)
		return
	}

	response.JSON(w, http.StatusOK, portfolioView(h.portfolio.Snapshot()))
}

// Market returns the market catalog.
func (h *PortfolioHandler) Market(w http.ResponseWriter, r *http.Request) {
	assets := h.portfolio.Catalog().List()
	views := make([]MarketAssetView, 0, len(assets))
	for _, a := range assets {
		views = append(views, marketAssetView(a))
	}
	response.JSON(w, http.StatusOK, map[string]any{
		"assets": views,
		"count":  len(views),
	})
}

func errorCode(err error) string {
	var ce *core.Error
	if errors.As(err, &ce) {
		return ce.Code
	}
	return "UNKNOWN"
}
