// Command stresstest exercises a running gymprogress instance with many
// concurrent browser-like sessions logging workouts and reading the trainer
// pages. It reports the scenario success rate and fails below a threshold.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/avirtanen/gymprogress/internal/e2etest"
	"github.com/avirtanen/gymprogress/internal/testhelpers"
	"golang.org/x/sync/errgroup"
)

const (
	scenarioTimeout         = 30 * time.Second
	maxConcurrentOperations = 20
	defaultScenarioCount    = 100
	successRateThreshold    = 95.0
	percentageMultiplier    = 100
	expectedMinArgs         = 2
	baseWeightKg            = 40.0
	weightStepKg            = 2.5
	weightVariants          = 8
	baseReps                = 6
	repsVariants            = 6
)

// exerciseRotation spreads the load over several seed catalog exercises so
// the journal and progress pages have realistic variety.
var exerciseRotation = []string{ //nolint:gochecknoglobals // static test data.
	"Bench Press",
	"Squat",
	"Barbell Row",
	"Overhead Press",
	"Romanian Deadlift",
}

// runScenario plays one browser session: read the journal, log an entry,
// check the trainer plan, and open the progress page for the entry.
func runScenario(ctx context.Context, serverURL string, iteration int, logger *slog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, scenarioTimeout)
	defer cancel()

	// Each scenario gets its own cookie jar like a separate browser.
	client, err := e2etest.NewClient(serverURL)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	doc, err := client.GetDoc(ctx, "/")
	if err != nil {
		return fmt.Errorf("get journal: %w", err)
	}

	exercise := exerciseRotation[iteration%len(exerciseRotation)]
	weight := baseWeightKg + float64(iteration%weightVariants)*weightStepKg
	reps := baseReps + iteration%repsVariants
	date := time.Now().AddDate(0, 0, -(iteration % 28)).Format("2006-01-02") //nolint:mnd // four weeks back.

	if doc, err = client.SubmitForm(ctx, doc, "/entries", map[string]string{
		"Date":     date,
		"Exercise": exercise,
		"Weight":   strconv.FormatFloat(weight, 'f', -1, 64),
		"Reps":     fmt.Sprintf("%d,%d,%d", reps+2, reps+1, reps),
	}); err != nil {
		return fmt.Errorf("submit entry: %w", err)
	}
	if doc.Find("td a:contains('" + exercise + "')").Length() == 0 {
		return fmt.Errorf("entry for %s missing from journal", exercise)
	}

	if doc, err = client.GetDoc(ctx, "/trainer"); err != nil {
		return fmt.Errorf("get trainer: %w", err)
	}
	if doc.Find("form[action='/trainer/finish']").Length() != 1 {
		return fmt.Errorf("trainer page has no finish form")
	}

	if _, err = client.GetDoc(ctx, "/progress/"+url.PathEscape(exercise)); err != nil {
		return fmt.Errorf("get progress for %s: %w", exercise, err)
	}

	logger.LogAttrs(ctx, slog.LevelDebug, "scenario completed",
		slog.Int("iteration", iteration),
		slog.String("exercise", exercise))
	return nil
}

func run(ctx context.Context, serverURL string, scenarioCount int, logger *slog.Logger) error {
	var (
		succeeded atomic.Int64
		failed    atomic.Int64
	)

	start := time.Now()
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentOperations)

	for i := range scenarioCount {
		group.Go(func() error {
			if err := runScenario(groupCtx, serverURL, i, logger); err != nil {
				failed.Add(1)
				logger.LogAttrs(groupCtx, slog.LevelWarn, "scenario failed",
					slog.Int("iteration", i),
					slog.Any("error", err))
				// Failures count against the success rate instead of
				// aborting the whole run.
				return nil
			}
			succeeded.Add(1)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return fmt.Errorf("scenario group: %w", err)
	}

	total := succeeded.Load() + failed.Load()
	successRate := float64(succeeded.Load()) / float64(total) * percentageMultiplier
	logger.LogAttrs(ctx, slog.LevelInfo, "stress test finished",
		slog.Int64("succeeded", succeeded.Load()),
		slog.Int64("failed", failed.Load()),
		slog.Float64("success_rate", successRate),
		slog.Duration("duration", time.Since(start)))

	if successRate < successRateThreshold {
		return fmt.Errorf("success rate %.1f%% below threshold %.1f%%", successRate, successRateThreshold)
	}
	return nil
}

func main() {
	logger := testhelpers.NewLogger(os.Stdout)
	ctx := context.Background()

	if len(os.Args) < expectedMinArgs {
		logger.LogAttrs(ctx, slog.LevelError, "usage: stresstest <url> [scenario-count]")
		os.Exit(1)
	}
	serverURL := strings.TrimSuffix(os.Args[1], "/")

	scenarioCount := defaultScenarioCount
	if len(os.Args) > expectedMinArgs {
		count, err := strconv.Atoi(os.Args[2])
		if err != nil || count <= 0 {
			logger.LogAttrs(ctx, slog.LevelError, "invalid scenario count", slog.String("arg", os.Args[2]))
			os.Exit(1)
		}
		scenarioCount = count
	}

	if err := run(ctx, serverURL, scenarioCount, logger); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "stress test failed", slog.Any("error", err))
		os.Exit(1)
	}
}
