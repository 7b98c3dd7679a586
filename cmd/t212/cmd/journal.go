package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/architg25/t212-to-yahoo/journal"
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "List past Yahoo CSV export runs",
	Long: `Query the export journal and list recent runs, newest first.

The journal lives next to the data tree (override with --db or T212_JOURNAL).`,
	Args: cobra.NoArgs,
	RunE: runJournal,
}

var (
	journalDBPath string
	journalLimit  int
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.Flags().StringVar(&journalDBPath, "db", "", "path to the journal database (default <data-dir>/journal.db)")
	journalCmd.Flags().IntVarP(&journalLimit, "limit", "n", 20, "maximum number of runs to list (0 for all)")
}

func runJournal(cmd *cobra.Command, args []string) error {
	dbPath := journalDBPath
	if dbPath == "" {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		dbPath = cfg.JournalPath
	}

	j, err := journal.NewSQLite(dbPath)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	recs, err := j.ListExports(journalLimit)
	if err != nil {
		return fmt.Errorf("query journal: %w", err)
	}
	if len(recs) == 0 {
		fmt.Println("No export runs recorded")
		return nil
	}

	for _, rec := range recs {
		fmt.Printf("%s  %s  %3d positions (%d suffix, %d shortName)  %s\n",
			rec.ExportID,
			rec.CreatedAt.Local().Format(time.DateTime),
			rec.Positions,
			rec.ExchangeMapped,
			rec.ShortNameUsed,
			rec.Path,
		)
	}
	return nil
}
