package main

import (
	"os"

	"hetznerctl/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
