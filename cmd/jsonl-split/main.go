package main

import (
	"os"

	"github.com/lacquerai/jsonl-split/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
