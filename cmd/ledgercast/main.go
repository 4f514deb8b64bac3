package main

import (
	"os"

	"github.com/ledgercast-dev/ledgercast/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
