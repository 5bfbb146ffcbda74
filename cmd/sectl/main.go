package main

import (
	"os"

	"github.com/knowhub/sectiond/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
