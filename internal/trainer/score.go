package trainer

import (
	"math"
	"sort"
	"strings"
)

// normalizationWindow is how many recent history entries anchor the volume
// and intensity normalization.
const normalizationWindow = 20

// SessionScore is the quality breakdown of a single logged session. All
// components are in [0, 1] except the bonus and penalty terms.
type SessionScore struct {
	Score          float64
	VolumeScore    float64
	IntensityScore float64
	RepQuality     float64
	SetsBonus      float64
	FatiguePenalty float64
}

// ProgressStatus classifies a session against the recent trend.
type ProgressStatus string

const (
	StatusFirst  ProgressStatus = "FIRST"
	StatusBetter ProgressStatus = "BETTER"
	StatusWorse  ProgressStatus = "WORSE"
	StatusSame   ProgressStatus = "SAME"
)

// ComparisonDetails carries the raw values behind a comparison so that the
// display layer can render a full breakdown without recomputing anything.
type ComparisonDetails struct {
	CurrentWeight    float64
	CurrentVolume    float64
	CurrentTotalReps int
	CurrentSetCount  int
	CurrentReps      []int
	CurrentScore     SessionScore

	PreviousWeight    float64
	PreviousVolume    float64
	PreviousTotalReps int
	PreviousSetCount  int
	PreviousReps      []int
	PreviousScore     SessionScore

	GoalName         string
	ExerciseTypeName string
	TargetRange      string
}

// ComparisonResult is the outcome of comparing the current session against
// the previous one and the recent trend.
type ComparisonResult struct {
	Status       ProgressStatus
	DeltaPercent float64
	Reason       string
	Details      ComparisonDetails
}

// scoreWeights is the (volume, intensity, repQuality) weighting for one
// goal and exercise type combination.
type scoreWeights struct {
	volume     float64
	intensity  float64
	repQuality float64
}

func weightsFor(goal Goal, exerciseType ExerciseType) scoreWeights {
	isCompound := exerciseType == ExerciseTypeCompound
	switch goal {
	case GoalStrength:
		if isCompound {
			return scoreWeights{volume: 0.25, intensity: 0.45, repQuality: 0.30}
		}
		return scoreWeights{volume: 0.20, intensity: 0.40, repQuality: 0.40}
	case GoalEndurance:
		return scoreWeights{volume: 0.50, intensity: 0.10, repQuality: 0.40}
	default:
		if isCompound {
			return scoreWeights{volume: 0.45, intensity: 0.25, repQuality: 0.30}
		}
		return scoreWeights{volume: 0.35, intensity: 0.15, repQuality: 0.50}
	}
}

// CalcSessionScore computes the quality score of one entry against its
// recent history. The history slice may be in any order and may or may not
// contain the entry itself.
func CalcSessionScore(entry Entry, history []Entry, goal Goal, exerciseType ExerciseType) SessionScore {
	reps := parseReps(entry.Reps)
	if len(reps) == 0 {
		return SessionScore{}
	}

	weights := weightsFor(goal, exerciseType)

	volume := entryVolume(entry)
	maxVolume := volume
	maxWeight := entry.Weight
	for _, recent := range recentWindow(history, entry, normalizationWindow) {
		if v := entryVolume(recent); v > maxVolume {
			maxVolume = v
		}
		if recent.Weight > maxWeight {
			maxWeight = recent.Weight
		}
	}

	volumeScore := safeRatio(volume, maxVolume)
	intensityScore := safeRatio(entry.Weight, maxWeight)
	repQuality := repQualityScore(reps, goal)
	setsBonus := setsBonusFor(len(reps))
	fatiguePenalty := fatiguePenaltyFor(reps)

	score := weights.volume*volumeScore +
		weights.intensity*intensityScore +
		weights.repQuality*repQuality +
		setsBonus - fatiguePenalty

	return SessionScore{
		Score:          clamp01(score),
		VolumeScore:    volumeScore,
		IntensityScore: intensityScore,
		RepQuality:     repQuality,
		SetsBonus:      setsBonus,
		FatiguePenalty: fatiguePenalty,
	}
}

// Compare relates the current entry to the previous one and the recent
// trend. A nil previous entry marks the first session of an exercise.
func Compare(current Entry, previous *Entry, history []Entry, goal Goal, exerciseType ExerciseType) ComparisonResult {
	currentScore := CalcSessionScore(current, history, goal, exerciseType)

	details := ComparisonDetails{
		CurrentWeight:    current.Weight,
		CurrentVolume:    entryVolume(current),
		CurrentTotalReps: sumReps(parseReps(current.Reps)),
		CurrentSetCount:  len(parseReps(current.Reps)),
		CurrentReps:      parseReps(current.Reps),
		CurrentScore:     currentScore,
		GoalName:         goal.DisplayName(),
		ExerciseTypeName: string(exerciseType),
		TargetRange:      goal.TargetRange().String(),
	}

	if previous == nil {
		return ComparisonResult{
			Status:       StatusFirst,
			DeltaPercent: 0,
			Reason:       "first session",
			Details:      details,
		}
	}

	previousScore := CalcSessionScore(*previous, history, goal, exerciseType)
	previousReps := parseReps(previous.Reps)
	details.PreviousWeight = previous.Weight
	details.PreviousVolume = entryVolume(*previous)
	details.PreviousTotalReps = sumReps(previousReps)
	details.PreviousSetCount = len(previousReps)
	details.PreviousReps = previousReps
	details.PreviousScore = previousScore

	trend := trendScore(current, previousScore.Score, history, goal, exerciseType)
	delta := currentScore.Score - trend

	status := StatusSame
	switch {
	case delta >= 0.03:
		status = StatusBetter
	case delta <= -0.03:
		status = StatusWorse
	}

	deltaPercent := 0.0
	if trend != 0 {
		deltaPercent = 100 * delta / trend
	}

	return ComparisonResult{
		Status:       status,
		DeltaPercent: deltaPercent,
		Reason:       buildReason(currentScore, previousScore),
		Details:      details,
	}
}

// trendScore averages the scores of up to 3 history entries immediately
// preceding the current one. With no preceding entries the previous
// session's own score stands in for the trend.
func trendScore(current Entry, fallback float64, history []Entry, goal Goal, exerciseType ExerciseType) float64 {
	sorted := sortedByDateDesc(history)

	var preceding []Entry
	for _, entry := range sorted {
		if entry.ID == current.ID {
			continue
		}
		if entry.Date > current.Date {
			continue
		}
		if entry.Date == current.Date && entry.ID > current.ID {
			continue
		}
		preceding = append(preceding, entry)
		if len(preceding) == 3 {
			break
		}
	}
	if len(preceding) == 0 {
		return fallback
	}

	sum := 0.0
	for _, entry := range preceding {
		sum += CalcSessionScore(entry, history, goal, exerciseType).Score
	}
	return sum / float64(len(preceding))
}

// buildReason explains the comparison against the previous session. The
// dominant component delta comes first; rep-range, set-count, and fatigue
// annotations follow when they apply.
func buildReason(current, previous SessionScore) string {
	var reasons []string

	type component struct {
		delta float64
		up    string
		down  string
	}
	// Order fixes tie resolution: volume beats intensity beats rep quality.
	components := []component{
		{current.VolumeScore - previous.VolumeScore, "volume ↑", "volume ↓"},
		{current.IntensityScore - previous.IntensityScore, "intensity ↑", "intensity ↓"},
		{current.RepQuality - previous.RepQuality, "rep quality ↑", "rep quality ↓"},
	}
	dominant := components[0]
	for _, c := range components[1:] {
		if math.Abs(c.delta) > math.Abs(dominant.delta) {
			dominant = c
		}
	}
	if math.Abs(dominant.delta) > 0.01 {
		if dominant.delta > 0 {
			reasons = append(reasons, dominant.up)
		} else {
			reasons = append(reasons, dominant.down)
		}
	}

	if current.RepQuality < 0.6 {
		reasons = append(reasons, "reps outside target range")
	}
	if current.SetsBonus > previous.SetsBonus {
		reasons = append(reasons, "more sets ↑")
	}
	if current.FatiguePenalty-previous.FatiguePenalty > 0.02 {
		reasons = append(reasons, "fatigue ↑")
	}

	if len(reasons) == 0 {
		return "no significant change"
	}
	return strings.Join(reasons, ", ")
}

// recentWindow returns up to limit history entries most recent first,
// excluding the current entry itself.
func recentWindow(history []Entry, current Entry, limit int) []Entry {
	sorted := sortedByDateDesc(history)
	window := make([]Entry, 0, limit)
	for _, entry := range sorted {
		if entry.ID == current.ID {
			continue
		}
		window = append(window, entry)
		if len(window) == limit {
			break
		}
	}
	return window
}

func sortedByDateDesc(history []Entry) []Entry {
	sorted := make([]Entry, len(history))
	copy(sorted, history)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Date != sorted[j].Date {
			return sorted[i].Date > sorted[j].Date
		}
		return sorted[i].ID > sorted[j].ID
	})
	return sorted
}

func entryVolume(entry Entry) float64 {
	return entry.Weight * float64(sumReps(parseReps(entry.Reps)))
}

func sumReps(reps []int) int {
	total := 0
	for _, n := range reps {
		total += n
	}
	return total
}

// repQualityScore grades each set against the goal's target and near rep
// ranges and averages the grades.
func repQualityScore(reps []int, goal Goal) float64 {
	target := goal.TargetRange()
	near := goal.NearRange()

	sum := 0.0
	for _, n := range reps {
		switch {
		case target.Contains(n):
			sum += 1.0
		case near.Contains(n):
			sum += 0.6
		default:
			sum += 0.3
		}
	}
	return sum / float64(len(reps))
}

func setsBonusFor(setCount int) float64 {
	switch {
	case setCount >= 4:
		return 0.04
	case setCount == 3:
		return 0.02
	default:
		return 0
	}
}

// fatiguePenaltyFor buckets intra-session rep variability. It averages the
// coefficient of variation across sets with the first-to-last drop-off
// ratio. Single-set sessions carry no penalty.
func fatiguePenaltyFor(reps []int) float64 {
	if len(reps) < 2 {
		return 0
	}

	mean := float64(sumReps(reps)) / float64(len(reps))
	cv := 0.0
	if mean > 0 {
		variance := 0.0
		for _, n := range reps {
			d := float64(n) - mean
			variance += d * d
		}
		variance /= float64(len(reps))
		cv = math.Sqrt(variance) / mean
	}

	drop := 0.0
	if first := reps[0]; first > 0 {
		drop = float64(first-reps[len(reps)-1]) / float64(first)
		if drop < 0 {
			drop = 0
		}
	}

	fatigue := (cv + drop) / 2
	switch {
	case fatigue <= 0.10:
		return 0
	case fatigue <= 0.20:
		return 0.03
	case fatigue <= 0.30:
		return 0.07
	case fatigue <= 0.40:
		return 0.12
	default:
		return 0.15
	}
}

func safeRatio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
