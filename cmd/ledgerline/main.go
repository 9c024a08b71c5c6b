package main

import (
	"os"

	"github.com/ledgerline-dev/ledgerline/internal/commands"
)

func main() {
	root := commands.NewRootCommand()
	root.SetOut(os.Stdout)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
