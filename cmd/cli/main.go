package main

import (
	"os"

	"github.com/jobdeck-dev/jobdeck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
