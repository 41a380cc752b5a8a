package portfolio

import "strings"

// PendingForm holds the values of the add-asset dialog between edits.
type PendingForm struct {
	SelectedAssetID string
	AmountText      string
}

// Ready reports whether the form can be submitted against the portfolio's catalog.
func (p *Portfolio) Ready(f PendingForm) bool {
	if _, ok := p.catalog.Lookup(strings.TrimSpace(f.SelectedAssetID)); !ok {
		return false
	}
	_, err := ParseAmount(f.AmountText)
	return err == nil
}

// Pending returns the current form values.
func (p *Portfolio) Pending() PendingForm {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.pending
}

// SetPending records the form values as the user edits them.
func (p *Portfolio) SetPending(selectedID, amountText string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = PendingForm{SelectedAssetID: selectedID, AmountText: amountText}
}

// Submit records the form values and adds the asset they describe in one
// step, so concurrent submissions never apply each other's values.
// On failure the values stay pending and the holdings are unchanged.
func (p *Portfolio) Submit(selectedID, amountText string) error {
	return p.submit(&PendingForm{SelectedAssetID: selectedID, AmountText: amountText})
}

// SubmitPending adds the asset described by the pending form.
// A failed submit keeps both the holdings and the form as they were.
func (p *Portfolio) SubmitPending() error {
	return p.submit(nil)
}

// submit applies the pending form, first replacing it with form when non-nil.
func (p *Portfolio) submit(form *PendingForm) error {
	p.mu.Lock()
	if form != nil {
		p.pending = *form
	}
	asset, amount, err := p.resolve(p.pending.SelectedAssetID, p.pending.AmountText)
	if err != nil {
		p.mu.Unlock()
		return err
	}
	snap := p.applyLocked(asset, amount)
	p.mu.Unlock()

	p.notify(snap)
	return nil
}
