package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/architg25/t212-to-yahoo/journal"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the portfolio to Yahoo Finance CSV",
	Long: `Fetch all open positions and write them as a Yahoo Finance
portfolio-import CSV under <data-dir>/<date>/yahoo/.

Symbols are resolved through the instrument catalog: tickers carrying a
lowercase exchange letter get the matching Yahoo suffix (VUSAl_EQ becomes
VUSA.L), the rest fall back to the instrument's short name. Each run is
recorded in the export journal unless --no-journal is given.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var exportNoJournal bool

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().BoolVar(&exportNoJournal, "no-journal", false, "skip recording the run in the export journal")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}
	ctx := context.Background()

	positions, _, err := client.Positions(ctx)
	if err != nil {
		return fmt.Errorf("fetch portfolio: %w", err)
	}

	instruments := loadInstrumentIndex(ctx, cfg, client)

	path, stats, err := newExporter(cfg).Export(positions, instruments)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	fmt.Printf("Exported %d positions to %s (%d with exchange suffix, %d using shortName)\n",
		stats.Rows, path, stats.ExchangeMapped, stats.ShortNameUsed)

	if !exportNoJournal {
		recordExport(cfg.JournalPath, path, stats.Rows, stats.ExchangeMapped, stats.ShortNameUsed)
	}
	return nil
}

// recordExport is best effort: a broken journal must not invalidate a CSV
// that was already written.
func recordExport(dbPath, csvPath string, rows, exchangeMapped, shortNameUsed int) {
	j, err := journal.NewSQLite(dbPath)
	if err != nil {
		logger.Warn("open export journal", zap.Error(err))
		return
	}
	defer j.Close()

	rec := journal.NewRecord(csvPath, time.Now().UTC(), rows, exchangeMapped, shortNameUsed)
	if err := j.RecordExport(rec); err != nil {
		logger.Warn("record export run", zap.Error(err))
	}
}
