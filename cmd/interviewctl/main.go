package main

import (
	"os"

	"github.com/dhanushgc/HireMind/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
