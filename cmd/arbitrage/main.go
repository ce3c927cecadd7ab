package main

import (
	"os"

	"github.com/rustyeddy/arbitrage/cmd/arbitrage/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
