package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Show account balance and info",
	Long: `Fetch the account cash balance and account metadata, print them, and
save the raw payloads under <data-dir>/<date>/account/.`,
	Args: cobra.NoArgs,
	RunE: runAccount,
}

func init() {
	rootCmd.AddCommand(accountCmd)
}

func runAccount(cmd *cobra.Command, args []string) error {
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

	balance, rawBalance, err := client.Cash(ctx)
	if err != nil {
		return fmt.Errorf("fetch balance: %w", err)
	}
	printBalance(balance)

	if path, err := snapshots.Save("account", "balance", rawBalance); err == nil {
		fmt.Printf("Balance saved to: %s\n", path)
	} else {
		return fmt.Errorf("save balance: %w", err)
	}

	info, rawInfo, err := client.Info(ctx)
	if err != nil {
		return fmt.Errorf("fetch account info: %w", err)
	}
	printInfo(info)

	path, err := snapshots.Save("account", "info", rawInfo)
	if err != nil {
		return fmt.Errorf("save account info: %w", err)
	}
	fmt.Printf("Info saved to: %s\n", path)
	return nil
}
