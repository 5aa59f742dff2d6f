package main

import (
	"fmt"
	"os"

	"github.com/roach88/dicecommit/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		// A clean skip is a terminal state, not an error; everything
		// else gets surfaced before the non-zero exit.
		if !cli.IsNoCommit(err) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(cli.GetExitCode(err))
	}
}
