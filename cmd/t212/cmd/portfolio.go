package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/architg25/t212-to-yahoo/config"
	"github.com/architg25/t212-to-yahoo/t212"
)

var portfolioCmd = &cobra.Command{
	Use:   "portfolio [ticker]",
	Short: "Show open positions",
	Long: `Fetch all open positions (or a single one by ticker), enrich them with
instrument metadata from the daily catalog cache, print them, and save the
raw payload under <data-dir>/<date>/portfolio/.

With --search the ticker is looked up through the POST search endpoint
instead of the direct position endpoint.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPortfolio,
}

var portfolioSearch bool

func init() {
	rootCmd.AddCommand(portfolioCmd)
	portfolioCmd.Flags().BoolVar(&portfolioSearch, "search", false, "look up the ticker via the search endpoint")
}

func runPortfolio(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	ctx := context.Background()

	if len(args) == 1 {
		var pos t212.Position
		if portfolioSearch {
			pos, err = client.SearchPosition(ctx, args[0])
		} else {
			pos, err = client.Position(ctx, args[0])
		}
		if err != nil {
			return fmt.Errorf("fetch position %s: %w", args[0], err)
		}
		printPositions([]t212.Position{pos}, loadInstrumentIndex(ctx, cfg, client))
		return nil
	}

	positions, raw, err := client.Positions(ctx)
	if err != nil {
		return fmt.Errorf("fetch portfolio: %w", err)
	}
	printPositions(positions, loadInstrumentIndex(ctx, cfg, client))

	path, err := newStore(cfg).Save("portfolio", "positions", raw)
	if err != nil {
		return fmt.Errorf("save portfolio: %w", err)
	}
	fmt.Printf("Portfolio saved to: %s\n", path)
	return nil
}

// loadInstrumentIndex returns the catalog keyed by ticker. Metadata is a
// display nicety here: when the catalog cannot be loaded the positions are
// shown with bare tickers instead of failing the command.
func loadInstrumentIndex(ctx context.Context, cfg *config.Config, client *t212.Client) map[string]t212.Instrument {
	instruments, err := newCache(cfg, client).Instruments(ctx, true)
	if err != nil {
		logger.Warn("could not load instrument metadata", zap.Error(err))
		fmt.Println("Displaying basic ticker information only")
		return nil
	}
	return t212.IndexInstruments(instruments)
}
