package main

import (
	"os"

	"github.com/kudastat/kudastat/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
