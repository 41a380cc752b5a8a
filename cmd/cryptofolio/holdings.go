package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/newthinker/cryptofolio/internal/format"
	"github.com/newthinker/cryptofolio/internal/logger"
	"github.com/newthinker/cryptofolio/internal/portfolio"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	holdingsAdd    []string
	holdingsRemove []string
)

var holdingsCmd = &cobra.Command{
	Use:   "holdings",
	Short: "Show the portfolio holdings and totals",
	Long: `Show the seeded portfolio. Removals and additions given as flags are
applied in that order before printing, e.g.

  cryptofolio holdings --remove solana --add cardano=250 --add bitcoin=0.1`,
	RunE: runHoldings,
}

func init() {
	holdingsCmd.Flags().StringArrayVar(&holdingsAdd, "add", nil, "add an asset as id=amount (repeatable)")
	holdingsCmd.Flags().StringArrayVar(&holdingsRemove, "remove", nil, "remove a holding by id (repeatable)")
	rootCmd.AddCommand(holdingsCmd)
}

func runHoldings(cmd *cobra.Command, args []string) error {
	log := logger.Must(debug)
	defer log.Sync()

	cfg, err := loadConfig(log)
	if err != nil {
		return err
	}

	p, err := newPortfolio(cfg)
	if err != nil {
		return err
	}

	defer logChanges(p, log)()

	if err := applyChanges(p, holdingsRemove, holdingsAdd, log); err != nil {
		return err
	}

	printHoldings(os.Stdout, p, formatterFor(cfg))
	return nil
}

// applyChanges removes then adds holdings. An addition with invalid input
// is an error here, unlike in the web form.
func applyChanges(p *portfolio.Portfolio, removals, additions []string, log *zap.Logger) error {
	for _, id := range removals {
		if !p.RemoveAsset(id) {
			log.Warn("holding not found", zap.String("asset_id", id))
		}
	}

	for _, arg := range additions {
		id, amount, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("invalid --add %q: expected id=amount", arg)
		}
		if err := p.AddAsset(id, amount); err != nil {
			return fmt.Errorf("adding %s: %w", id, err)
		}
		log.Debug("asset added", zap.String("asset_id", id), zap.String("amount", amount))
	}
	return nil
}

func printHoldings(out io.Writer, p *portfolio.Portfolio, f format.Formatter) {
	snap := p.Snapshot()
	if len(snap.Holdings) == 0 {
		fmt.Fprintln(out, "No holdings.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ASSET\tSYMBOL\tAMOUNT\tVALUE\t24H\t")
	fmt.Fprintln(w, "-----\t------\t------\t-----\t---\t")

	for _, h := range snap.Holdings {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s%%\t\n",
			h.Name, h.Symbol, f.Amount(h.Amount, h.Price), f.Money(h.Value), format.SignedPercent(h.Change24h))
	}
	w.Flush()

	t := snap.Totals
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Total value:  %s\n", f.Money(t.Value))
	fmt.Fprintf(out, "Change (24h): %s (%s%%)\n", signedMoney(f, t.ChangeCurrency), format.SignedPercent(t.ChangePercent))
	fmt.Fprintf(out, "Assets:       %d\n", t.Count)
}
