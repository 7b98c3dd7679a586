package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var instrumentsCmd = &cobra.Command{
	Use:   "instruments [ticker]",
	Short: "Show the tradable instrument catalog",
	Long: `Fetch the full instrument catalog through the daily disk cache, or look
up a single instrument by ticker.

The catalog endpoint is limited to one request per 50 seconds, so results
are cached under <data-dir>/<date>/instruments/ and reused for the rest of
the day. Use --no-cache to force a fresh fetch (the cache is still
repopulated afterwards).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInstruments,
}

var instrumentsNoCache bool

func init() {
	rootCmd.AddCommand(instrumentsCmd)
	instrumentsCmd.Flags().BoolVar(&instrumentsNoCache, "no-cache", false, "bypass the daily catalog cache")
}

func runInstruments(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	catalog := newCache(cfg, client)
	ctx := context.Background()

	if len(args) == 1 {
		inst, err := catalog.Find(ctx, args[0])
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		if inst == nil {
			return fmt.Errorf("instrument %q not found", args[0])
		}
		banner("INSTRUMENT", 60)
		printLine("Ticker", inst.Ticker)
		printLine("Name", inst.Name)
		printLine("Short Name", inst.ShortName)
		printLine("ISIN", inst.ISIN)
		printLine("Type", inst.Type)
		printLine("Currency", inst.CurrencyCode)
		printLine("Exchange", inst.Exchange)
		fmt.Println()
		return nil
	}

	instruments, err := catalog.Instruments(ctx, !instrumentsNoCache)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	fmt.Printf("Loaded %d instruments (cached daily)\n", len(instruments))
	return nil
}
