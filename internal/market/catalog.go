// Package market holds the static market reference data shown in the
// asset selector and the market tab.
package market

import (
	"github.com/newthinker/cryptofolio/internal/core"
	"github.com/shopspring/decimal"
)

// Catalog is a read-only list of market assets.
type Catalog struct {
	assets []core.MarketAsset
	byID   map[string]int
}

// NewCatalog creates a catalog from assets, preserving their order.
// Later duplicates of an id are ignored.
func NewCatalog(assets []core.MarketAsset) *Catalog {
	c := &Catalog{
		assets: make([]core.MarketAsset, 0, len(assets)),
		byID:   make(map[string]int, len(assets)),
	}
	for _, a := range assets {
		if _, exists := c.byID[a.ID]; exists {
			continue
		}
		c.byID[a.ID] = len(c.assets)
		c.assets = append(c.assets, a)
	}
	return c
}

// Default returns the built-in five asset catalog.
func Default() *Catalog {
	return NewCatalog([]core.MarketAsset{
		asset("bitcoin", "Bitcoin", "BTC", "63245.82", "2.34"),
		asset("ethereum", "Ethereum", "ETH", "3421.56", "-1.23"),
		asset("cardano", "Cardano", "ADA", "0.45", "5.67"),
		asset("solana", "Solana", "SOL", "142.78", "8.91"),
		asset("polkadot", "Polkadot", "DOT", "6.32", "-3.45"),
	})
}

// List returns a copy of the catalog in display order.
func (c *Catalog) List() []core.MarketAsset {
	out := make([]core.MarketAsset, len(c.assets))
	copy(out, c.assets)
	return out
}

// Lookup returns the asset with the given id.
func (c *Catalog) Lookup(id string) (core.MarketAsset, bool) {
	i, ok := c.byID[id]
	if !ok {
		return core.MarketAsset{}, false
	}
	return c.assets[i], true
}

// Len returns the number of assets in the catalog.
func (c *Catalog) Len() int {
	return len(c.assets)
}

func asset(id, name, symbol, price, change string) core.MarketAsset {
	return core.MarketAsset{
		ID:        id,
		Name:      name,
		Symbol:    symbol,
		Price:     decimal.RequireFromString(price),
		Change24h: decimal.RequireFromString(change),
	}
}
