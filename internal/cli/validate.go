package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/dicecommit/internal/config"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                     `json:"valid"`
	Errors []config.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration without rolling",
		Long: `Resolve and validate the configuration (defaults, YAML file,
environment overrides) against the schema, without performing a
decision or touching the log. Intended as a pre-deploy check.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	_, err := config.Load(opts.Config)
	if err == nil {
		formatter.VerboseLog("Resolved configuration from %q plus environment", opts.Config)
		if formatter.Format == "json" {
			if outErr := formatter.Success(ValidationResult{Valid: true}); outErr != nil {
				return WrapExitError(ExitFailure, "write output", outErr)
			}
			return nil
		}
		fmt.Fprintln(formatter.Writer, "Configuration valid.")
		return nil
	}

	var invalid *config.InvalidConfigError
	if errors.As(err, &invalid) {
		if formatter.Format == "json" {
			_ = formatter.Success(ValidationResult{Valid: false, Errors: invalid.Errors})
		} else {
			fmt.Fprintf(formatter.Writer, "Configuration invalid (%d error(s)):\n", len(invalid.Errors))
			for _, ve := range invalid.Errors {
				fmt.Fprintf(formatter.Writer, "  %s: %s\n", ve.Field, ve.Message)
			}
		}
		return WrapExitError(ExitFailure, "configuration invalid", err)
	}

	// File unreadable, YAML malformed, bad env value.
	_ = formatter.Error(ErrCodeInvalidInput, err.Error(), nil)
	return WrapExitError(ExitFailure, "load configuration", err)
}
