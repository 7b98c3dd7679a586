package cmd

import (
	"fmt"
	"strings"

	"github.com/architg25/t212-to-yahoo/t212"
)

// The renderers below reproduce a fixed-width ruled layout: a banner, dotted
// label leaders, and signed PnL figures.

func banner(title string, width int) {
	rule := strings.Repeat("=", width)
	fmt.Println()
	fmt.Println(rule)
	fmt.Println(title)
	fmt.Println(rule)
}

func printLine(label string, value string) {
	fmt.Printf("%s %25s\n", pad(label, 30), value)
}

func pad(label string, width int) string {
	if len(label) >= width {
		return label
	}
	return label + strings.Repeat(".", width-len(label))
}

func signed(v float64) string {
	if v >= 0 {
		return "+" + fmt.Sprintf("%.2f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

func printBalance(b t212.CashBalance) {
	banner("ACCOUNT BALANCE", 60)
	printLine("Free Cash", fmt.Sprintf("%.2f", b.Free))
	printLine("Total Value", fmt.Sprintf("%.2f", b.Total))
	printLine("Unrealised PnL", signed(b.PPL))
	printLine("Realised PnL", signed(b.Result))
	printLine("Cash Balance", fmt.Sprintf("%.2f", b.Cash))
	printLine("Invested", fmt.Sprintf("%.2f", b.Invested))
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()
}

func printInfo(info t212.AccountInfo) {
	banner("ACCOUNT INFO", 60)
	printLine("ID", fmt.Sprintf("%d", info.ID))
	printLine("CURRENCY", info.CurrencyCode)
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println()
}

func printPositions(positions []t212.Position, instruments map[string]t212.Instrument) {
	if len(positions) == 0 {
		banner("PORTFOLIO", 80)
		fmt.Println("No open positions")
		fmt.Println(strings.Repeat("=", 80))
		fmt.Println()
		return
	}

	banner(fmt.Sprintf("PORTFOLIO - %d Position(s)", len(positions)), 80)
	fmt.Println()

	var totalPPL, totalValue float64
	for _, pos := range positions {
		totalPPL += pos.PPL
		totalValue += pos.Value()

		name, shortName, isin := pos.Ticker, pos.Ticker, "N/A"
		instType := "STOCK"
		if inst, ok := instruments[pos.Ticker]; ok {
			name, shortName, isin, instType = inst.Name, inst.ShortName, inst.ISIN, inst.Type
		}

		display := fmt.Sprintf("%s (%s)", name, shortName)
		if instType != "STOCK" {
			display = fmt.Sprintf("%s (%s %s)", name, shortName, instType)
		}

		cost := pos.Quantity * pos.AveragePrice
		pplPct := 0.0
		if cost != 0 {
			pplPct = pos.PPL / cost * 100
		}

		fmt.Printf("  %s\n", display)
		fmt.Printf("  ISIN: %s\n", isin)
		fmt.Printf("    %s %20.2f\n", pad("Quantity", 24), pos.Quantity)
		fmt.Printf("    %s %20.2f\n", pad("Avg Price", 24), pos.AveragePrice)
		fmt.Printf("    %s %20.2f\n", pad("Current Price", 24), pos.CurrentPrice)
		fmt.Printf("    %s %20.2f\n", pad("Position Value", 24), pos.Value())
		fmt.Printf("    %s %20s (%s%%)\n", pad("Unrealised PnL", 24), signed(pos.PPL), signed(pplPct))
		fmt.Println()
	}

	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("  %s %20.2f\n", pad("Total Portfolio Value", 24), totalValue)
	fmt.Printf("  %s %20s\n", pad("Total Unrealised PnL", 24), signed(totalPPL))
	fmt.Println(strings.Repeat("=", 80))
	fmt.Println()
}
