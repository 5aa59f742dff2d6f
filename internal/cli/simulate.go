package cli

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/dicecommit/internal/config"
	"github.com/roach88/dicecommit/internal/engine"
)

// SimulateOptions holds flags for the simulate command.
type SimulateOptions struct {
	*RootOptions
	Draws int
	Date  string
	Seed  uint64
}

// HourRate is the simulated commit rate for one hour of the chosen day.
type HourRate struct {
	Hour     int             `json:"hour"`
	Category engine.Category `json:"category"`
	Commits  int             `json:"commits"`
	Draws    int             `json:"draws"`
	Rate     float64         `json:"rate"`
}

// SimulationResult is the simulate command payload.
type SimulationResult struct {
	Date        string     `json:"date"`
	DrawsPerRun int        `json:"draws_per_hour"`
	Hours       []HourRate `json:"hours"`
	OverallRate float64    `json:"overall_rate"`
}

// NewSimulateCommand creates the simulate command.
func NewSimulateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SimulateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Monte Carlo the probability model for one day",
		Long: `Run many simulated decisions for every hour of a chosen date and
report the per-hour commit rates. Useful for tuning the probability
table and the weekday/seasonal modifiers before deploying them.

Minutes are drawn uniformly within each hour, so the half-hour dip is
reflected in the rates. Special hours (multiples of 3) always report
rate 1.

Example:
  dicecommit simulate --draws 5000 --date 2026-07-04 --seed 42`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(opts, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Draws, "draws", 1000, "simulated draws per hour")
	cmd.Flags().StringVar(&opts.Date, "date", "", "date to simulate, YYYY-MM-DD (default: today, UTC)")
	cmd.Flags().Uint64Var(&opts.Seed, "seed", 0, "random seed for a reproducible run (0: fresh entropy)")

	return cmd
}

func runSimulate(opts *SimulateOptions, cmd *cobra.Command) error {
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

	day := time.Now().UTC()
	if opts.Date != "" {
		day, err = time.Parse("2006-01-02", opts.Date)
		if err != nil {
			_ = formatter.Error(ErrCodeInvalidInput, fmt.Sprintf("invalid --date value %q", opts.Date), err.Error())
			return WrapExitError(ExitFailure, "parse --date", err)
		}
	}
	if opts.Draws <= 0 {
		_ = formatter.Error(ErrCodeInvalidInput, "--draws must be positive", nil)
		return NewExitError(ExitFailure, "invalid --draws")
	}

	var roller engine.Roller
	if opts.Seed != 0 {
		roller = engine.NewSeededRoller(opts.Seed, opts.Seed)
	} else {
		roller, err = engine.NewRoller()
		if err != nil {
			_ = formatter.Error(ErrCodeIO, err.Error(), nil)
			return WrapExitError(ExitFailure, "initialize random source", err)
		}
	}

	result, err := simulateDay(day, opts.Draws, cfg, roller)
	if err != nil {
		_ = formatter.Error(ErrCodeInvalidInput, err.Error(), nil)
		return WrapExitError(ExitFailure, "simulate", err)
	}

	if formatter.Format == "json" {
		if outErr := formatter.Success(result); outErr != nil {
			return WrapExitError(ExitFailure, "write output", outErr)
		}
		return nil
	}
	return outputSimulationTable(formatter, result)
}

// simulateDay runs draws decisions for every hour of the day. Minutes
// are sampled from the roller too, so quarter-of-hour effects show up.
func simulateDay(day time.Time, draws int, cfg config.Config, roller engine.Roller) (SimulationResult, error) {
	day = day.UTC()
	result := SimulationResult{
		Date:        day.Format("2006-01-02"),
		DrawsPerRun: draws,
		Hours:       make([]HourRate, 0, 24),
	}

	totalCommits := 0
	for hour := 0; hour < 24; hour++ {
		rate := HourRate{Hour: hour, Draws: draws}
		for i := 0; i < draws; i++ {
			minute := int(roller.Roll() * 60)
			at := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.UTC)
			d, err := engine.DecideAt(at, roller.Roll(), cfg)
			if err != nil {
				return SimulationResult{}, err
			}
			rate.Category = d.Category
			if d.Commit {
				rate.Commits++
			}
		}
		rate.Rate = float64(rate.Commits) / float64(draws)
		totalCommits += rate.Commits
		result.Hours = append(result.Hours, rate)
	}

	result.OverallRate = float64(totalCommits) / float64(draws*24)
	return result, nil
}

func outputSimulationTable(f *OutputFormatter, r SimulationResult) error {
	fmt.Fprintf(f.Writer, "Simulated %d draws per hour for %s\n\n", r.DrawsPerRun, r.Date)

	tw := tabwriter.NewWriter(f.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "HOUR\tCATEGORY\tCOMMITS\tRATE")
	for _, h := range r.Hours {
		fmt.Fprintf(tw, "%02d\t%s\t%d/%d\t%.4f\n", h.Hour, h.Category, h.Commits, h.Draws, h.Rate)
	}
	if err := tw.Flush(); err != nil {
		return WrapExitError(ExitFailure, "write output", err)
	}

	fmt.Fprintf(f.Writer, "\nOverall commit rate: %.4f\n", r.OverallRate)
	return nil
}
