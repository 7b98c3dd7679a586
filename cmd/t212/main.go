package main

import (
	"os"

	"github.com/architg25/t212-to-yahoo/cmd/t212/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
