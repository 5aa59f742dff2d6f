package engine

import (
	"fmt"
	"time"

	"github.com/roach88/dicecommit/internal/config"
)

// Decide applies the bare hour rule: guarantee flag, then multiple-of-3,
// then the even/odd probability table. It knows nothing about minutes,
// weekdays, or months; DecideAt layers those on top.
//
// Returns *InputError for an hour outside 0..23, a draw outside [0,1),
// or a probability table missing the required category. No side effects.
func Decide(hour int, draw float64, cfg config.Config) (Decision, error) {
	return decide(hour, draw, cfg, neutralModifiers(hour))
}

// DecideAt is the full layered model used by production runs. The
// override rules are unchanged; the probabilistic branch scales the
// category probability by the quarter-of-hour dip, the weekday/weekend
// modifier, and the seasonal modifier for t's month, clamping the final
// threshold into [0,1].
//
// t is truncated to UTC before any field is read.
func DecideAt(t time.Time, draw float64, cfg config.Config) (Decision, error) {
	t = t.UTC()
	return decide(t.Hour(), draw, cfg, modifiersAt(t, cfg))
}

// modifiers captures the multiplicative layers applied to the category
// probability for one invocation.
type modifiers struct {
	hour      int
	quarter   int // 1..4, 0 when the minute is unknown
	isWeekend bool
	quarterM  float64
	weekdayM  float64
	seasonalM float64
}

func neutralModifiers(hour int) modifiers {
	return modifiers{hour: hour, quarterM: 1, weekdayM: 1, seasonalM: 1}
}

func modifiersAt(t time.Time, cfg config.Config) modifiers {
	m := modifiers{
		hour:      t.Hour(),
		quarter:   t.Minute()/15 + 1,
		isWeekend: t.Weekday() == time.Saturday || t.Weekday() == time.Sunday,
		quarterM:  1,
		weekdayM:  cfg.WeekdayModifier,
		seasonalM: 1,
	}
	if m.quarter == 3 {
		m.quarterM = cfg.HalfHourDip
	}
	if m.isWeekend {
		m.weekdayM = cfg.WeekendModifier
	}
	if mod, ok := cfg.SeasonalModifiers[int(t.Month())]; ok {
		m.seasonalM = mod
	} else {
		m.seasonalM = 1
	}
	return m
}

func decide(hour int, draw float64, cfg config.Config, mods modifiers) (Decision, error) {
	if hour < 0 || hour > 23 {
		return Decision{}, newHourError(hour)
	}
	if draw < 0 || draw >= 1 {
		return Decision{}, newDrawError(draw)
	}

	if cfg.GuaranteeCommit {
		return Decision{
			Category:  CategorySpecial,
			Threshold: 1,
			Draw:      draw,
			Commit:    true,
			Reason:    "guaranteed commit override",
			Details:   specialDetails(hour),
		}, nil
	}

	if hour%3 == 0 {
		return Decision{
			Category:  CategorySpecial,
			Threshold: 1,
			Draw:      draw,
			Commit:    true,
			Reason:    fmt.Sprintf("hour %d is a multiple of 3", hour),
			Details:   specialDetails(hour),
		}, nil
	}

	category := CategoryOdd
	key := config.KeyOddHour
	if hour%2 == 0 {
		category = CategoryEven
		key = config.KeyEvenHour
	}
	base, ok := cfg.Probabilities[key]
	if !ok {
		return Decision{}, newProbabilityError(key)
	}

	threshold := clamp01(base * mods.quarterM * mods.weekdayM * mods.seasonalM)
	commit := draw < threshold // strict: draw == threshold skips

	verb, outcome := ">= threshold", OutcomeSkip
	if commit {
		verb, outcome = "< threshold", OutcomeCommit
	}

	return Decision{
		Category:  category,
		Threshold: threshold,
		Draw:      draw,
		Commit:    commit,
		Reason:    fmt.Sprintf("%s hour %d: roll %.4f %s %.4f", category, hour, draw, verb, threshold),
		Details: Details{
			Hour:             hour,
			Quarter:          mods.quarter,
			IsWeekend:        mods.isWeekend,
			Base:             base,
			QuarterModifier:  mods.quarterM,
			WeekdayModifier:  mods.weekdayM,
			SeasonalModifier: mods.seasonalM,
			Outcome:          outcome,
		},
	}, nil
}

// specialDetails fills the detail block for override decisions. The
// modifiers never applied, so they read as 1.
func specialDetails(hour int) Details {
	return Details{
		Hour:             hour,
		Base:             1,
		QuarterModifier:  1,
		WeekdayModifier:  1,
		SeasonalModifier: 1,
		Outcome:          OutcomeCommit,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
