package main

import (
	"os"

	"github.com/fleetyard/fleetagent/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
