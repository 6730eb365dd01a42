package main

import (
	"os"

	"github.com/reoring/conform/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
