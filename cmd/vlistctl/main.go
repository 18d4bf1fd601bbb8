package main

import (
	"os"

	"github.com/go-theft-auto/vlist/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
