package main

import (
	"os"

	"github.com/macrolens/backend/cmd/macrolens/commands"
)

// main is the entry point for the MacroLens CLI.
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
