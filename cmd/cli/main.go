// Package main is the entry point for the accessdiff CLI binary.
package main

import (
	"os"

	cli "access-diff/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
