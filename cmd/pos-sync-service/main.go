package main

import (
	"os"

	"github.com/glad47/pos-sync-service/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
