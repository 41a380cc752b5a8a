package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/newthinker/cryptofolio/internal/core"
	"github.com/newthinker/cryptofolio/internal/market"
	"github.com/newthinker/cryptofolio/internal/portfolio"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Portfolio PortfolioConfig `mapstructure:"portfolio"`
	Display   DisplayConfig   `mapstructure:"display"`
	Metrics   MetricsConfig   `mapstructure:"metrics"`
}

type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	APIKey       string `mapstructure:"api_key"`
	TemplatesDir string `mapstructure:"templates_dir"` // empty uses embedded templates
}

// PortfolioConfig holds the holdings a session starts with.
type PortfolioConfig struct {
	Seed []SeedHolding `mapstructure:"seed"`
}

// SeedHolding is an initial holding. Amount is kept as text so that it is
// parsed with the same rules as the add-asset form.
type SeedHolding struct {
	AssetID string `mapstructure:"asset_id"`
	Amount  string `mapstructure:"amount"`
}

// DisplayConfig controls money formatting.
type DisplayConfig struct {
	Currency string `mapstructure:"currency"`
	Decimal  string `mapstructure:"decimal"`
	Thousand string `mapstructure:"thousand"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from file. Keys missing from the file keep
// their default values.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("display.currency", d.Display.Currency)
	v.SetDefault("display.decimal", d.Display.Decimal)
	v.SetDefault("display.thousand", d.Display.Thousand)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.path", d.Metrics.Path)

	seed := make([]map[string]any, 0, len(d.Portfolio.Seed))
	for _, s := range d.Portfolio.Seed {
		seed = append(seed, map[string]any{"asset_id": s.AssetID, "amount": s.Amount})
	}
	v.SetDefault("portfolio.seed", seed)
}

// Defaults returns a config with sensible defaults
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Portfolio: PortfolioConfig{
			Seed: []SeedHolding{
				{AssetID: "bitcoin", Amount: "0.5"},
				{AssetID: "ethereum", Amount: "4.2"},
				{AssetID: "solana", Amount: "12"},
			},
		},
		Display: DisplayConfig{
			Currency: "$",
			Decimal:  ",",
			Thousand: ".",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("port must be between 1 and 65535, got %d", c.Server.Port))
	}

	// Seed validation
	if _, err := c.SeedHoldings(market.Default()); err != nil {
		return err
	}

	if c.Display.Decimal == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("display.decimal separator required"))
	}
	if c.Display.Decimal == c.Display.Thousand {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("display decimal and thousand separators must differ, both %q", c.Display.Decimal))
	}

	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("metrics path must start with /, got %q", c.Metrics.Path))
	}

	return nil
}

// SeedHoldings converts the configured seed into portfolio seeds, checking
// every entry against catalog.
func (c *Config) SeedHoldings(catalog *market.Catalog) ([]portfolio.Seed, error) {
	seeds := make([]portfolio.Seed, 0, len(c.Portfolio.Seed))
	for i, s := range c.Portfolio.Seed {
		if _, ok := catalog.Lookup(s.AssetID); !ok {
			return nil, core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("portfolio.seed[%d]: unknown asset %q", i, s.AssetID))
		}
		amount, err := portfolio.ParseAmount(s.Amount)
		if err != nil {
			return nil, core.WrapError(core.ErrConfigInvalid,
				fmt.Errorf("portfolio.seed[%d]: %w", i, err))
		}
		seeds = append(seeds, portfolio.Seed{AssetID: s.AssetID, Amount: amount})
	}
	return seeds, nil
}
