package main

import (
	"os"

	"github.com/avencourt/uastack/cmd/uastackd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
