package main

import (
	"os"

	"github.com/lumina-tools/planner/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
