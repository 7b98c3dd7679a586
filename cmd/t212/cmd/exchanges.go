package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var exchangesCmd = &cobra.Command{
	Use:   "exchanges",
	Short: "List trading venues",
	Args:  cobra.NoArgs,
	RunE:  runExchanges,
}

func init() {
	rootCmd.AddCommand(exchangesCmd)
}

func runExchanges(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newClient(cfg)
	if err != nil {
		return err
	}

	exchanges, err := newCache(cfg, client).Exchanges(context.Background())
	if err != nil {
		return fmt.Errorf("fetch exchanges: %w", err)
	}

	banner(fmt.Sprintf("EXCHANGES - %d", len(exchanges)), 60)
	for _, ex := range exchanges {
		fmt.Printf("  %6d  %s\n", ex.ID, ex.Name)
	}
	fmt.Println()
	return nil
}
