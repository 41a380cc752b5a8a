package main

import (
	"fmt"

	"github.com/newthinker/cryptofolio/internal/config"
	"github.com/newthinker/cryptofolio/internal/format"
	"github.com/newthinker/cryptofolio/internal/market"
	"github.com/newthinker/cryptofolio/internal/portfolio"
	"go.uber.org/zap"
)

// loadConfig reads --config when given, otherwise falls back to defaults.
func loadConfig(log *zap.Logger) (*config.Config, error) {
	var cfg *config.Config
	if cfgFile != "" {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
		log.Debug("no config file specified, using defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// newPortfolio builds the seeded portfolio described by cfg.
func newPortfolio(cfg *config.Config) (*portfolio.Portfolio, error) {
	catalog := market.Default()
	seed, err := cfg.SeedHoldings(catalog)
	if err != nil {
		return nil, err
	}
	p, err := portfolio.New(catalog, seed)
	if err != nil {
		return nil, fmt.Errorf("creating portfolio: %w", err)
	}
	return p, nil
}

func formatterFor(cfg *config.Config) format.Formatter {
	return format.Formatter{
		Grapheme: cfg.Display.Currency,
		Decimal:  cfg.Display.Decimal,
		Thousand: cfg.Display.Thousand,
	}
}

// logChanges writes one entry per applied portfolio change.
func logChanges(p *portfolio.Portfolio, log *zap.Logger) (stop func()) {
	return p.Subscribe(func(snap portfolio.Snapshot) {
		log.Info("portfolio changed",
			zap.String("kind", string(snap.Event.Kind)),
			zap.String("asset_id", snap.Event.AssetID),
			zap.String("amount", snap.Event.Amount.String()),
			zap.Int("holdings", snap.Totals.Count),
			zap.String("total_value", snap.Totals.Value.StringFixed(2)),
		)
	})
}
