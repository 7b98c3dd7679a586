package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch everything: balance, info, portfolio, Yahoo CSV",
	Long: `Run the full pipeline in one go:

  1. Fetch and print the account balance, snapshot it
  2. Fetch and print the account info, snapshot it
  3. Fetch and print the portfolio with instrument metadata, snapshot it
  4. Export the portfolio to Yahoo Finance CSV and journal the run

An empty portfolio skips the CSV export.`,
	Args: cobra.NoArgs,
	RunE: runAll,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runAll(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	snapshots := newStore(cfg)
	ctx := context.Background()

	banner(fmt.Sprintf("Trading 212 - %s Environment", strings.ToUpper(cfg.Environment)), 60)
	if cfg.Account != "" {
		fmt.Printf("Account: %s\n", cfg.Account)
	}
	fmt.Println()

	fmt.Println("Fetching account balance...")
	balance, rawBalance, err := client.Cash(ctx)
	if err != nil {
		return fmt.Errorf("fetch balance: %w", err)
	}
	printBalance(balance)
	if path, err := snapshots.Save("account", "balance", rawBalance); err == nil {
		fmt.Printf("Balance saved to: %s\n", path)
	}

	fmt.Println("\nFetching account info...")
	info, rawInfo, err := client.Info(ctx)
	if err != nil {
		return fmt.Errorf("fetch account info: %w", err)
	}
	printInfo(info)
	if path, err := snapshots.Save("account", "info", rawInfo); err == nil {
		fmt.Printf("Info saved to: %s\n", path)
	}

	fmt.Println("\nFetching portfolio positions...")
	positions, rawPositions, err := client.Positions(ctx)
	if err != nil {
		return fmt.Errorf("fetch portfolio: %w", err)
	}
	instruments := loadInstrumentIndex(ctx, cfg, client)
	printPositions(positions, instruments)
	if path, err := snapshots.Save("portfolio", "positions", rawPositions); err == nil {
		fmt.Printf("Portfolio saved to: %s\n", path)
	}

	if len(positions) == 0 {
		return nil
	}

	path, stats, err := newExporter(cfg).Export(positions, instruments)
	if err != nil {
		logger.Warn("yahoo export failed", zap.Error(err))
		return fmt.Errorf("export: %w", err)
	}
	fmt.Printf("Exported %d positions to %s (%d with exchange suffix, %d using shortName)\n",
		stats.Rows, path, stats.ExchangeMapped, stats.ShortNameUsed)
	recordExport(cfg.JournalPath, path, stats.Rows, stats.ExchangeMapped, stats.ShortNameUsed)
	return nil
}
