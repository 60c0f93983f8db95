package main

import (
	"os"

	"github.com/tradelab/smctrader/cmd/smctrader/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
