// Package cli wires the dicecommit commands. Every command returns an
// *ExitError so the binary can hand the orchestrator one of three exit
// codes without the orchestrator parsing any output.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "json" | "text"
	Config  string // path to YAML config, empty for defaults + env
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the dicecommit CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "dicecommit",
		Short: "Probability-gated commit automation",
		Long: `dicecommit decides, once per scheduled tick, whether to produce a commit.

The decision combines a fixed hour rule (multiples of 3 always commit)
with a probability draw for the remaining even and odd hours. Commit
runs append to the decision log and write the commit message file the
orchestrator feeds to git.

Exit codes:
  0  commit produced - run the git commit/push steps
  2  no commit needed - clean skip
  1  invalid input or I/O failure`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.Config, "config", "", "path to YAML configuration file")

	// Add subcommands
	cmd.AddCommand(NewRollCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewSimulateCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
