package main

import (
	"fmt"
	"os"

	colorize "github.com/fatih/color"

	"github.com/arcanaland/cardconv/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, colorize.RedString("❗ %v", err))
		os.Exit(1)
	}
}
