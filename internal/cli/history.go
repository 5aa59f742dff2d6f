package cli

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/dicecommit/internal/config"
	"github.com/roach88/dicecommit/internal/history"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit         int
	CommittedOnly bool
	Verify        bool
}

// HistoryRow is one history record as reported to the user, including
// the tamper check when --verify is set.
type HistoryRow struct {
	history.Record
	HashOK *bool `json:"hash_ok,omitempty"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent decisions from the history database",
		Long: `List recent decision records, newest first. Unlike the text log,
the history database also records skips, so a quiet stretch can be
told apart from a scheduler outage.

Example:
  dicecommit history --limit 50 --committed-only
  dicecommit history --verify --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "maximum records to show")
	cmd.Flags().BoolVar(&opts.CommittedOnly, "committed-only", false, "only commit-producing runs")
	cmd.Flags().BoolVar(&opts.Verify, "verify", false, "recompute and check each record hash")

	return cmd
}

func runHistory(opts *HistoryOptions, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	cfg, err := config.Load(opts.Config)
	if err != nil {
		_ = formatter.Error(ErrCodeInvalidInput, err.Error(), nil)
		return WrapExitError(ExitFailure, "load configuration", err)
	}
	if cfg.HistoryPath == "" {
		_ = formatter.Error(ErrCodeInvalidInput, "history recording is disabled (empty history_path)", nil)
		return NewExitError(ExitFailure, "history disabled")
	}

	st, err := history.Open(cfg.HistoryPath)
	if err != nil {
		_ = formatter.Error(ErrCodeIO, err.Error(), nil)
		return WrapExitError(ExitFailure, "open history", err)
	}
	defer st.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	records, err := st.Recent(ctx, opts.Limit, opts.CommittedOnly)
	if err != nil {
		_ = formatter.Error(ErrCodeIO, err.Error(), nil)
		return WrapExitError(ExitFailure, "read history", err)
	}

	rows := make([]HistoryRow, len(records))
	for i, rec := range records {
		rows[i] = HistoryRow{Record: rec}
		if opts.Verify {
			ok, verr := rec.Verify()
			if verr != nil {
				_ = formatter.Error(ErrCodeIO, verr.Error(), nil)
				return WrapExitError(ExitFailure, "verify record", verr)
			}
			rows[i].HashOK = &ok
		}
	}

	if formatter.Format == "json" {
		if outErr := formatter.Success(rows); outErr != nil {
			return WrapExitError(ExitFailure, "write output", outErr)
		}
		return nil
	}
	return outputHistoryTable(formatter, rows, opts.Verify)
}

func outputHistoryTable(f *OutputFormatter, rows []HistoryRow, verify bool) error {
	if len(rows) == 0 {
		fmt.Fprintln(f.Writer, "No decisions recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(f.Writer, 0, 4, 2, ' ', 0)
	header := "DECIDED AT\tHOUR\tCATEGORY\tDRAW\tTHRESHOLD\tOUTCOME"
	if verify {
		header += "\tHASH"
	}
	fmt.Fprintln(tw, header)

	for _, row := range rows {
		outcome := "skip"
		if row.Committed {
			outcome = "commit"
		}
		line := fmt.Sprintf("%s\t%02d\t%s\t%.4f\t%.4f\t%s",
			row.DecidedAt.Format(time.RFC3339), row.Hour, row.Category, row.Draw, row.Threshold, outcome)
		if verify {
			mark := "BAD"
			if row.HashOK != nil && *row.HashOK {
				mark = "ok"
			}
			line += "\t" + mark
		}
		fmt.Fprintln(tw, line)
	}
	return tw.Flush()
}
