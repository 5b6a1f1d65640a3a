package main

import (
	"os"

	"github.com/darrenkjr/filmharvest/internal/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
