// Package portfolio implements the portfolio view-model: the ordered list
// of holdings, the pending add-asset form and the totals derived from them.
package portfolio

import (
	"fmt"
	"strings"
	"sync"

	"github.com/newthinker/cryptofolio/internal/core"
	"github.com/newthinker/cryptofolio/internal/market"
	"github.com/shopspring/decimal"
)

// EventKind describes a change to the holdings list.
type EventKind string

const (
	EventAdded   EventKind = "added"
	EventMerged  EventKind = "merged"
	EventRemoved EventKind = "removed"
)

// Event is a single applied change.
type Event struct {
	Kind    EventKind
	AssetID string
	Amount  decimal.Decimal // amount added, zero for removals
}

// Snapshot is the state handed to subscribers after a change.
type Snapshot struct {
	Event    Event
	Holdings []core.Holding
	Totals   core.Totals
}

// Subscriber receives a snapshot after every applied change.
type Subscriber func(Snapshot)

// Seed is an initial holding.
type Seed struct {
	AssetID string
	Amount  decimal.Decimal
}

// DefaultSeed returns the holdings a new session starts with.
func DefaultSeed() []Seed {
	return []Seed{
		{AssetID: "bitcoin", Amount: decimal.RequireFromString("0.5")},
		{AssetID: "ethereum", Amount: decimal.RequireFromString("4.2")},
		{AssetID: "solana", Amount: decimal.NewFromInt(12)},
	}
}

type subscription struct {
	id int
	fn Subscriber
}

// Portfolio is the observable portfolio state container.
type Portfolio struct {
	catalog *market.Catalog

	mu       sync.RWMutex
	holdings []core.Holding
	pending  PendingForm

	subMu  sync.Mutex
	subs   []subscription
	nextID int
}

// New creates a portfolio priced from catalog and seeded with seed.
func New(catalog *market.Catalog, seed []Seed) (*Portfolio, error) {
	p := &Portfolio{
		catalog:  catalog,
		holdings: []core.Holding{},
	}

	for _, s := range seed {
		asset, ok := catalog.Lookup(s.AssetID)
		if !ok {
			return nil, fmt.Errorf("seeding %q: %w", s.AssetID, core.ErrAssetNotFound)
		}
		if !s.Amount.IsPositive() {
			return nil, fmt.Errorf("seeding %q: %w", s.AssetID, core.ErrInvalidAmount)
		}
		p.holdings, _ = merge(p.holdings, asset, s.Amount)
	}

	return p, nil
}

// Catalog returns the market catalog the portfolio is priced from.
func (p *Portfolio) Catalog() *market.Catalog {
	return p.catalog
}

// AddAsset adds amountText units of the asset selectedID. An asset that is
// already held has its amount increased and its value recomputed; otherwise
// a new holding is appended. On success the pending form is cleared.
//
// Invalid input leaves the portfolio untouched and is reported as a
// *core.Error (ErrFormIncomplete, ErrInvalidAmount or ErrAssetNotFound).
func (p *Portfolio) AddAsset(selectedID, amountText string) error {
	asset, amount, err := p.resolve(selectedID, amountText)
	if err != nil {
		return err
	}

	p.mu.Lock()
	snap := p.applyLocked(asset, amount)
	p.mu.Unlock()

	p.notify(snap)
	return nil
}

// resolve validates form input against the catalog.
func (p *Portfolio) resolve(selectedID, amountText string) (core.MarketAsset, decimal.Decimal, error) {
	selectedID = strings.TrimSpace(selectedID)
	if selectedID == "" || strings.TrimSpace(amountText) == "" {
		return core.MarketAsset{}, decimal.Zero, core.ErrFormIncomplete
	}

	amount, err := ParseAmount(amountText)
	if err != nil {
		return core.MarketAsset{}, decimal.Zero, err
	}

	asset, ok := p.catalog.Lookup(selectedID)
	if !ok {
		return core.MarketAsset{}, decimal.Zero, core.WrapError(core.ErrAssetNotFound, fmt.Errorf("id %q", selectedID))
	}
	return asset, amount, nil
}

// applyLocked merges amount of asset and clears the pending form.
// p.mu must be held for writing.
func (p *Portfolio) applyLocked(asset core.MarketAsset, amount decimal.Decimal) Snapshot {
	holdings, kind := merge(p.holdings, asset, amount)
	p.holdings = holdings
	p.pending = PendingForm{}
	return p.snapshotLocked(Event{Kind: kind, AssetID: asset.ID, Amount: amount})
}

// RemoveAsset removes the holding with id. It reports whether a holding was removed.
func (p *Portfolio) RemoveAsset(id string) bool {
	p.mu.Lock()
	idx := indexOf(p.holdings, id)
	if idx < 0 {
		p.mu.Unlock()
		return false
	}

	holdings := make([]core.Holding, 0, len(p.holdings)-1)
	holdings = append(holdings, p.holdings[:idx]...)
	holdings = append(holdings, p.holdings[idx+1:]...)
	p.holdings = holdings
	snap := p.snapshotLocked(Event{Kind: EventRemoved, AssetID: id})
	p.mu.Unlock()

	p.notify(snap)
	return true
}

// Holdings returns a copy of the holdings in display order.
func (p *Portfolio) Holdings() []core.Holding {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return cloneHoldings(p.holdings)
}

// Holding returns the holding with id.
func (p *Portfolio) Holding(id string) (core.Holding, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	idx := indexOf(p.holdings, id)
	if idx < 0 {
		return core.Holding{}, false
	}
	return p.holdings[idx], true
}

// Len returns the number of holdings.
func (p *Portfolio) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.holdings)
}

// Totals returns the aggregate figures of the current holdings.
func (p *Portfolio) Totals() core.Totals {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return ComputeTotals(p.holdings)
}

// TotalValue returns the sum of all holding values.
func (p *Portfolio) TotalValue() decimal.Decimal {
	return p.Totals().Value
}

// TotalChangeCurrency returns the 24h change of the portfolio in currency.
func (p *Portfolio) TotalChangeCurrency() decimal.Decimal {
	return p.Totals().ChangeCurrency
}

// TotalChangePercent returns the 24h change of the portfolio in percent.
func (p *Portfolio) TotalChangePercent() decimal.Decimal {
	return p.Totals().ChangePercent
}

// Snapshot returns the current holdings and totals.
func (p *Portfolio) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshotLocked(Event{})
}

// Subscribe registers fn to be called after every applied change.
// The returned function removes the subscription.
func (p *Portfolio) Subscribe(fn Subscriber) (unsubscribe func()) {
	p.subMu.Lock()
	defer p.subMu.Unlock()

	p.nextID++
	id := p.nextID
	p.subs = append(p.subs, subscription{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			p.subMu.Lock()
			defer p.subMu.Unlock()
			for i, s := range p.subs {
				if s.id == id {
					p.subs = append(p.subs[:i:i], p.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (p *Portfolio) notify(snap Snapshot) {
	p.subMu.Lock()
	subs := make([]subscription, len(p.subs))
	copy(subs, p.subs)
	p.subMu.Unlock()

	for _, s := range subs {
		s.fn(snap)
	}
}

func (p *Portfolio) snapshotLocked(ev Event) Snapshot {
	return Snapshot{
		Event:    ev,
		Holdings: cloneHoldings(p.holdings),
		Totals:   ComputeTotals(p.holdings),
	}
}

// merge returns a new list with amount of asset merged in.
func merge(holdings []core.Holding, asset core.MarketAsset, amount decimal.Decimal) ([]core.Holding, EventKind) {
	out := cloneHoldings(holdings)
	if idx := indexOf(out, asset.ID); idx >= 0 {
		out[idx] = out[idx].WithAdded(amount, asset.Price)
		return out, EventMerged
	}
	return append(out, core.NewHolding(asset, amount)), EventAdded
}

func indexOf(holdings []core.Holding, id string) int {
	for i := range holdings {
		if holdings[i].ID == id {
			return i
		}
	}
	return -1
}

func cloneHoldings(holdings []core.Holding) []core.Holding {
	out := make([]core.Holding, len(holdings))
	copy(out, holdings)
	return out
}
