package main

import (
	"os"

	"github.com/prunekit/prunekit-host-sdk/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
