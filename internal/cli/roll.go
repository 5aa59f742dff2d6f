package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/dicecommit/internal/artifact"
	"github.com/roach88/dicecommit/internal/config"
	"github.com/roach88/dicecommit/internal/engine"
	"github.com/roach88/dicecommit/internal/history"
)

// RollOptions holds flags for the roll command.
type RollOptions struct {
	*RootOptions
	At        string
	Draw      float64
	Guarantee bool

	// Roller allows overriding the random source (for testing).
	// If nil, defaults to the crypto-seeded production roller.
	Roller engine.Roller
}

// RollResult is the payload reported after a roll, in both formats.
type RollResult struct {
	RunID     string          `json:"run_id"`
	Committed bool            `json:"committed"`
	Category  engine.Category `json:"category"`
	Draw      float64         `json:"draw"`
	Threshold float64         `json:"threshold"`
	Reason    string          `json:"reason"`
	LogPath   string          `json:"log_path,omitempty"`
	MsgPath   string          `json:"message_path,omitempty"`
}

// NewRollCommand creates the roll command.
func NewRollCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RollOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "roll",
		Short: "Decide whether this tick produces a commit",
		Long: `Run one commit decision and emit its artifacts.

This is the command the scheduler invokes once per tick. On a commit
decision it appends one line to the decision log and rewrites the
commit message file; on a skip it touches nothing and exits 2.

Example:
  dicecommit roll --config dicecommit.yaml
  dicecommit roll --at 2026-08-28T14:00:00Z --draw 0.1 --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoll(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.At, "at", "", "decision instant, RFC3339 (default: now, UTC)")
	cmd.Flags().Float64Var(&opts.Draw, "draw", -1, "fixed draw in [0,1) instead of a random one")
	cmd.Flags().BoolVar(&opts.Guarantee, "guarantee", false, "force a commit, overriding all randomization")

	return cmd
}

func runRoll(opts *RollOptions, cmd *cobra.Command) error {
	configureLogging(opts.Verbose)

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
	if opts.Guarantee {
		cfg.GuaranteeCommit = true
	}

	now := time.Now().UTC()
	if opts.At != "" {
		now, err = time.Parse(time.RFC3339, opts.At)
		if err != nil {
			_ = formatter.Error(ErrCodeInvalidInput, fmt.Sprintf("invalid --at value %q", opts.At), err.Error())
			return WrapExitError(ExitFailure, "parse --at", err)
		}
		now = now.UTC()
	}

	draw := opts.Draw
	if !cmd.Flags().Changed("draw") {
		roller := opts.Roller
		if roller == nil {
			roller, err = engine.NewRoller()
			if err != nil {
				_ = formatter.Error(ErrCodeIO, err.Error(), nil)
				return WrapExitError(ExitFailure, "initialize random source", err)
			}
		}
		draw = roller.Roll()
	}

	slog.Info("evaluating commit decision", "at", now.Format(time.RFC3339), "draw", draw)

	decision, err := engine.DecideAt(now, draw, cfg)
	if err != nil {
		_ = formatter.Error(ErrCodeInvalidInput, err.Error(), nil)
		return WrapExitError(ExitFailure, "decide", err)
	}
	decision.RunID = engine.NewRunID()

	slog.Info("decision made",
		"run_id", decision.RunID,
		"category", decision.Category,
		"commit", decision.Commit,
		"reason", decision.Reason,
	)

	if cfg.HistoryPath != "" {
		if err := recordHistory(cmd.Context(), cfg.HistoryPath, decision, now); err != nil {
			_ = formatter.Error(ErrCodeIO, err.Error(), nil)
			return WrapExitError(ExitFailure, "record history", err)
		}
	}

	result, err := artifact.NewWriter(cfg).Write(decision, now)
	if err != nil {
		_ = formatter.Error(ErrCodeIO, err.Error(), nil)
		return WrapExitError(ExitFailure, "write artifacts", err)
	}

	payload := RollResult{
		RunID:     decision.RunID,
		Committed: decision.Commit,
		Category:  decision.Category,
		Draw:      decision.Draw,
		Threshold: decision.Threshold,
		Reason:    decision.Reason,
		LogPath:   result.LogPath,
		MsgPath:   result.MessagePath,
	}

	if err := outputRoll(formatter, payload); err != nil {
		return WrapExitError(ExitFailure, "write output", err)
	}

	if !decision.Commit {
		return NewExitError(ExitNoCommit, "no commit needed")
	}
	return nil
}

func outputRoll(f *OutputFormatter, r RollResult) error {
	if f.Format == "json" {
		return f.Success(r)
	}

	if r.Committed {
		fmt.Fprintf(f.Writer, "Commit recommended. Reason: %s\n", r.Reason)
		fmt.Fprintf(f.Writer, "Log entry appended to %s\n", r.LogPath)
		fmt.Fprintf(f.Writer, "Commit message written to %s\n", r.MsgPath)
	} else {
		fmt.Fprintf(f.Writer, "No commit this run. Reason: %s\n", r.Reason)
	}
	return nil
}

func recordHistory(ctx context.Context, path string, d engine.Decision, at time.Time) error {
	if ctx == nil {
		ctx = context.Background()
	}

	st, err := history.Open(path)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing history database", "error", closeErr)
		}
	}()

	rec, err := history.FromDecision(d, at)
	if err != nil {
		return fmt.Errorf("build history record: %w", err)
	}
	return st.Write(ctx, rec)
}

// configureLogging routes slog to stderr, debug level under --verbose.
func configureLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
