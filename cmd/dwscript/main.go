// Command dwscript is the go-dws CLI: lexing, parsing, semantic
// analysis, and closure conversion exposed as cobra subcommands.
package main

import (
	"fmt"
	"os"

	"github.com/cwbudde/go-dws/cmd/dwscript/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
