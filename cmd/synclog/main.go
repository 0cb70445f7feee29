package main

import (
	"os"

	"github.com/faros-ai/synclog/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
