package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/newthinker/cryptofolio/internal/format"
	"github.com/newthinker/cryptofolio/internal/logger"
	"github.com/newthinker/cryptofolio/internal/market"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "List the market catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.Must(debug)
		defer log.Sync()

		cfg, err := loadConfig(log)
		if err != nil {
			return err
		}
		printMarket(os.Stdout, market.Default(), formatterFor(cfg))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(marketCmd)
}

func printMarket(out io.Writer, catalog *market.Catalog, f format.Formatter) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSYMBOL\tPRICE\t24H\t")
	fmt.Fprintln(w, "--\t----\t------\t-----\t---\t")
	for _, a := range catalog.List() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s%%\t\n",
			a.ID, a.Name, a.Symbol, f.Money(a.Price), format.SignedPercent(a.Change24h))
	}
	w.Flush()
}

func signedMoney(f format.Formatter, d decimal.Decimal) string {
	if d.IsPositive() {
		return "+" + f.Money(d)
	}
	return f.Money(d)
}
