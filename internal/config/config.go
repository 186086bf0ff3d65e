// Package config resolves the scheduling policy the core consumes.
// The core never reads the environment itself; it is handed a resolved
// Policy value.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/samber/lo"
)

// OrderPolicy selects how the session queue is ordered.
type OrderPolicy string

const (
	// OrderDueFirst puts due reviews ahead of new words.
	OrderDueFirst OrderPolicy = "due_first"
	// OrderNewFirst puts new words ahead of due reviews.
	OrderNewFirst OrderPolicy = "new_first"
	// OrderInterleaved alternates due reviews and new words.
	OrderInterleaved OrderPolicy = "interleaved"
)

// NormalizeOrderPolicy maps a raw policy string to a valid OrderPolicy,
// falling back to due_first.
func NormalizeOrderPolicy(raw string) OrderPolicy {
	switch OrderPolicy(strings.TrimSpace(raw)) {
	case OrderNewFirst:
		return OrderNewFirst
	case OrderInterleaved:
		return OrderInterleaved
	default:
		return OrderDueFirst
	}
}

// Policy holds the resolved scheduling configuration.
type Policy struct {
	// LearningStepMinutes are the short intra-day learning steps.
	// The first step is the minimum scheduling distance.
	LearningStepMinutes []int
	DailyNewWords       int
	DailyReviewWords    int
	DailyTotalTasks     int
	MaxIntervalDays     int
	DesiredRetention    float64
	Order               OrderPolicy
}

// Default returns the stock policy.
func Default() Policy {
	return Policy{
		LearningStepMinutes: []int{5, 120},
		DailyNewWords:       10,
		DailyReviewWords:    20,
		DailyTotalTasks:     20,
		MaxIntervalDays:     365,
		DesiredRetention:    0.9,
		Order:               OrderDueFirst,
	}
}

// MinStepMinutes returns the shortest learning step.
func (p Policy) MinStepMinutes() int {
	if len(p.LearningStepMinutes) == 0 {
		return 5
	}
	return p.LearningStepMinutes[0]
}

// Load reads policy overrides from the environment, after loading a
// .env file if one is present. Unset or unparseable values keep their
// defaults.
func Load() Policy {
	_ = godotenv.Load()

	p := Default()
	p.LearningStepMinutes = NormalizeStepMinutes(envInts("LEXIZ_LEARNING_STEP_MINUTES"))
	p.DailyNewWords = envInt("LEXIZ_DAILY_NEW_WORDS", p.DailyNewWords)
	p.DailyReviewWords = envInt("LEXIZ_DAILY_REVIEW_WORDS", p.DailyReviewWords)
	p.DailyTotalTasks = envInt("LEXIZ_DAILY_TOTAL_TASKS", p.DailyTotalTasks)
	p.MaxIntervalDays = envInt("LEXIZ_MAX_INTERVAL_DAYS", p.MaxIntervalDays)
	p.Order = NormalizeOrderPolicy(os.Getenv("LEXIZ_ORDER_POLICY"))
	return p
}

// NormalizeStepMinutes filters a raw step list down to positive
// values, falling back to the default steps when nothing survives.
func NormalizeStepMinutes(steps []int) []int {
	valid := lo.Filter(steps, func(m int, _ int) bool { return m > 0 })
	if len(valid) == 0 {
		return Default().LearningStepMinutes
	}
	return valid
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

// envInts parses a comma-separated integer list; entries that do not
// parse are dropped.
func envInts(key string) []int {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var out []int
	for _, part := range strings.Split(raw, ",") {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}
