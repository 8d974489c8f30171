// Package trainer implements the training recommendation engine and the
// session score calculator. Both are pure functions over in-memory catalog,
// history, and settings values; persistence and transport live elsewhere.
package trainer

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Weight progression constants.
const (
	compoundWeightStepKg  = 2.5
	isolationWeightStepKg = 1.25
	deloadWeightFactor    = 0.6
	workingSetCount       = 3
)

// Warm-up generation constants. Warm-ups are only worth prescribing for
// compound lifts heavy enough to need a ramp.
const (
	warmupMinWorkingWeightKg = 20.0
	warmupMinSetWeightKg     = 10.0
	warmupRoundStepKg        = 2.5
)

// dateLayout is the storage format of entry dates.
const dateLayout = "2006-01-02"

// planner generates a workout recommendation from one snapshot of inputs.
type planner struct {
	settings Settings
	goal     Goal
	catalog  []Exercise
	history  []Entry
	// byName indexes the catalog for exercise-name lookups.
	byName map[string]Exercise
}

// GenerateRecommendation produces the plan for the next training day.
//
// The engine never fails: missing data is represented structurally through
// empty exercise lists, nil weights, and the MissingGroups field.
func GenerateRecommendation(settings Settings, goal Goal, exercises []Exercise, history []Entry) Recommendation {
	p := &planner{
		settings: settings,
		goal:     goal,
		catalog:  exercises,
		history:  history,
		byName:   indexByName(exercises),
	}
	return p.generate()
}

// Alternatives returns catalog exercises interchangeable with the given one:
// same muscle group and same exercise type, excluding the exercise itself.
// The stored catalog order is preserved.
func Alternatives(exercise Exercise, all []Exercise) []Exercise {
	var alternatives []Exercise
	for _, candidate := range all {
		if candidate.ID == exercise.ID {
			continue
		}
		if candidate.MuscleGroup == exercise.MuscleGroup && candidate.Type == exercise.Type {
			alternatives = append(alternatives, candidate)
		}
	}
	return alternatives
}

func indexByName(exercises []Exercise) map[string]Exercise {
	byName := make(map[string]Exercise, len(exercises))
	for _, ex := range exercises {
		byName[ex.Name] = ex
	}
	return byName
}

func (p *planner) generate() Recommendation {
	totalDays := p.cycleLength()
	preferredDay := p.determineNextDay(totalDays)
	isDeload := p.shouldDeload()

	// Starting at the preferred day, walk the cycle until a day yields a
	// non-empty plan. If every day comes up empty the preferred day is
	// returned as-is with its missing groups populated.
	dayIndex := preferredDay
	recs, missing := p.buildExerciseList(p.muscleGroupsForDay(preferredDay), isDeload)
	for offset := 1; offset < totalDays && len(recs) == 0; offset++ {
		candidate := (preferredDay + offset) % totalDays
		candidateRecs, candidateMissing := p.buildExerciseList(p.muscleGroupsForDay(candidate), isDeload)
		if len(candidateRecs) > 0 {
			dayIndex = candidate
			recs, missing = candidateRecs, candidateMissing
		}
	}

	return Recommendation{
		DayLabel:      p.dayLabel(dayIndex),
		DayIndex:      dayIndex,
		MuscleGroups:  p.muscleGroupsForDay(dayIndex),
		Exercises:     recs,
		IsDeloadWeek:  isDeload,
		MissingGroups: missing,
	}
}

// cycleLength returns the number of days in the configured split cycle.
func (p *planner) cycleLength() int {
	switch p.settings.Split {
	case SplitFullBody:
		return 1
	case SplitUpperLower:
		return 2
	case SplitPushPullLegs:
		return 3
	case SplitCustom:
		if len(p.settings.CustomSplitDays) > 1 {
			return len(p.settings.CustomSplitDays)
		}
		return 1
	default:
		return 1
	}
}

// determineNextDay guesses which cycle day the last logged session belonged
// to and advances one step. With no history training starts at day zero.
func (p *planner) determineNextDay(totalDays int) int {
	if len(p.history) == 0 || totalDays == 1 {
		return 0
	}

	lastDate := p.mostRecentDate(p.history)
	lastDateStr := lastDate.Format(dateLayout)

	lastGroups := make(map[MuscleGroup]struct{})
	for _, entry := range p.history {
		if entry.Date != lastDateStr {
			continue
		}
		if ex, ok := p.byName[entry.ExerciseName]; ok {
			lastGroups[ex.MuscleGroup] = struct{}{}
		}
	}

	bestDay := 0
	bestOverlap := 0
	for day := range totalDays {
		overlap := 0
		for _, group := range p.muscleGroupsForDay(day) {
			if _, ok := lastGroups[group]; ok {
				overlap++
			}
		}
		// Strict comparison keeps the lowest index on ties.
		if overlap > bestOverlap {
			bestOverlap = overlap
			bestDay = day
		}
	}

	return (bestDay + 1) % totalDays
}

// mostRecentDate returns the latest calendar date found in the entries.
func (p *planner) mostRecentDate(entries []Entry) time.Time {
	var latest time.Time
	for _, entry := range entries {
		date := parseEntryDate(entry.Date)
		if date.After(latest) {
			latest = date
		}
	}
	return latest
}

// muscleGroupsForDay returns the groups assigned to a cycle day.
func (p *planner) muscleGroupsForDay(dayIndex int) []MuscleGroup {
	switch p.settings.Split {
	case SplitFullBody:
		return AllMuscleGroups()
	case SplitUpperLower:
		if dayIndex%2 == 0 {
			return []MuscleGroup{
				MuscleGroupChest, MuscleGroupBack,
				MuscleGroupShoulders, MuscleGroupBiceps, MuscleGroupTriceps,
			}
		}
		return []MuscleGroup{MuscleGroupLegs, MuscleGroupAbs}
	case SplitPushPullLegs:
		switch dayIndex % 3 {
		case 0:
			return []MuscleGroup{MuscleGroupChest, MuscleGroupShoulders, MuscleGroupTriceps}
		case 1:
			return []MuscleGroup{MuscleGroupBack, MuscleGroupBiceps}
		default:
			return []MuscleGroup{MuscleGroupLegs, MuscleGroupAbs}
		}
	case SplitCustom:
		if groups, ok := p.settings.CustomSplitDays[dayIndex]; ok {
			return groups
		}
		return AllMuscleGroups()
	default:
		return AllMuscleGroups()
	}
}

// dayLabel returns the display label for a cycle day.
func (p *planner) dayLabel(dayIndex int) string {
	switch p.settings.Split {
	case SplitFullBody:
		return "Full Body"
	case SplitUpperLower:
		if dayIndex%2 == 0 {
			return "Upper"
		}
		return "Lower"
	case SplitPushPullLegs:
		switch dayIndex % 3 {
		case 0:
			return "Push"
		case 1:
			return "Pull"
		default:
			return "Legs"
		}
	default:
		return fmt.Sprintf("Day %d", dayIndex+1)
	}
}

// shouldDeload decides whether the whole plan runs at reduced intensity.
// Deload triggers on every whole multiple of the configured interval counted
// in weeks from the first logged date.
func (p *planner) shouldDeload() bool {
	if !p.settings.AutoDeload || len(p.history) == 0 {
		return false
	}

	seen := make(map[string]struct{})
	var first, last time.Time
	distinct := 0
	for _, entry := range p.history {
		if _, ok := seen[entry.Date]; ok {
			continue
		}
		seen[entry.Date] = struct{}{}
		distinct++
		date := parseEntryDate(entry.Date)
		if first.IsZero() || date.Before(first) {
			first = date
		}
		if date.After(last) {
			last = date
		}
	}
	if distinct < 2 {
		return false
	}

	interval := p.settings.DeloadIntervalWeeks
	if interval <= 0 {
		return false
	}

	weeksSinceStart := int(last.Sub(first).Hours() / (24 * 7))
	return weeksSinceStart > 0 && weeksSinceStart%interval == 0
}

// buildExerciseList selects and prescribes exercises for the given muscle
// groups. Groups without a single catalog exercise are reported as missing.
func (p *planner) buildExerciseList(groups []MuscleGroup, isDeload bool) ([]ExerciseRec, []MuscleGroup) {
	var (
		recs    []ExerciseRec
		missing []MuscleGroup
	)

	for _, group := range groups {
		groupExercises := p.exercisesForGroup(group)
		if len(groupExercises) == 0 {
			missing = append(missing, group)
			continue
		}

		for _, ex := range p.selectGroupExercises(group, groupExercises) {
			recs = append(recs, p.buildExerciseRec(ex, isDeload))
		}
	}

	// Compound movements come first; the sort is stable so the catalog order
	// is preserved within each class.
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Exercise.Type == ExerciseTypeCompound && recs[j].Exercise.Type != ExerciseTypeCompound
	})

	return recs, missing
}

func (p *planner) exercisesForGroup(group MuscleGroup) []Exercise {
	var filtered []Exercise
	for _, ex := range p.catalog {
		if ex.MuscleGroup == group {
			filtered = append(filtered, ex)
		}
	}
	return filtered
}

// selectGroupExercises biases the plan toward repeating whatever was done the
// last time this group was trained. Without such a session the whole group
// catalog is prescribed.
func (p *planner) selectGroupExercises(group MuscleGroup, groupExercises []Exercise) []Exercise {
	var lastDate time.Time
	for _, entry := range p.history {
		ex, ok := p.byName[entry.ExerciseName]
		if !ok || ex.MuscleGroup != group {
			continue
		}
		date := parseEntryDate(entry.Date)
		if date.After(lastDate) {
			lastDate = date
		}
	}
	if lastDate.IsZero() {
		return groupExercises
	}

	lastDateStr := lastDate.Format(dateLayout)
	lastNames := make(map[string]struct{})
	for _, entry := range p.history {
		if entry.Date != lastDateStr {
			continue
		}
		if ex, ok := p.byName[entry.ExerciseName]; ok && ex.MuscleGroup == group {
			lastNames[entry.ExerciseName] = struct{}{}
		}
	}

	var selected []Exercise
	for _, ex := range groupExercises {
		if _, ok := lastNames[ex.Name]; ok {
			selected = append(selected, ex)
		}
	}
	if len(selected) == 0 {
		return groupExercises
	}
	return selected
}

// buildExerciseRec prescribes warm-up and working sets for one exercise
// based on its recent history and the active progression rule.
func (p *planner) buildExerciseRec(exercise Exercise, isDeload bool) ExerciseRec {
	recent := p.recentEntries(exercise.Name, 3)

	isCompound := exercise.Type == ExerciseTypeCompound
	weightStep := isolationWeightStepKg
	if isCompound {
		weightStep = compoundWeightStepKg
	}
	targetRange := p.goal.TargetRange()
	restSeconds := p.restSeconds(isCompound)

	if len(recent) == 0 {
		return ExerciseRec{
			Exercise: exercise,
			Sets:     workingSets(nil, targetRange, restSeconds),
			Note:     "first time, determine working weight",
		}
	}

	lastEntry := recent[0]
	lastReps := parseReps(lastEntry.Reps)

	suggestedWeight, note := calculateProgression(
		lastEntry.Weight, lastReps, targetRange, weightStep, p.settings.Progression, isDeload)

	var sets []SetRec
	if p.settings.IncludeWarmup && isCompound && suggestedWeight >= warmupMinWorkingWeightKg {
		sets = warmupSets(suggestedWeight)
	}
	sets = append(sets, workingSets(&suggestedWeight, targetRange, restSeconds)...)

	return ExerciseRec{
		Exercise: exercise,
		Sets:     sets,
		Note:     note,
	}
}

// recentEntries returns up to limit history entries for an exercise,
// most recent first.
func (p *planner) recentEntries(exerciseName string, limit int) []Entry {
	var matching []Entry
	for _, entry := range p.history {
		if entry.ExerciseName == exerciseName {
			matching = append(matching, entry)
		}
	}
	// ISO dates sort lexicographically, same as the journal orders them.
	sort.SliceStable(matching, func(i, j int) bool {
		return matching[i].Date > matching[j].Date
	})
	if len(matching) > limit {
		matching = matching[:limit]
	}
	return matching
}

// restSeconds returns the rest period between working sets. Isolation work
// rests three quarters as long, truncated to whole seconds.
func (p *planner) restSeconds(isCompound bool) int {
	var base int
	switch p.goal {
	case GoalStrength:
		base = 240
	case GoalEndurance:
		base = 45
	default:
		base = 90
	}
	if isCompound {
		return base
	}
	return int(float64(base) * 0.75)
}

// workingSets builds the fixed block of working sets at the given weight.
// A nil weight means the working weight is still undetermined.
func workingSets(weight *float64, targetRange RepRange, restSeconds int) []SetRec {
	sets := make([]SetRec, 0, workingSetCount)
	for range workingSetCount {
		sets = append(sets, SetRec{
			Type:        SetWorking,
			Weight:      weight,
			TargetReps:  targetRange,
			RestSeconds: restSeconds,
		})
	}
	return sets
}

// warmupSets builds the two-step ramp toward the working weight: half weight
// for easy reps, then three quarters closer to working pace. Sets lighter
// than the plate minimum are skipped, and the 75% set is dropped when
// rounding would push it to the working weight itself.
func warmupSets(workingWeight float64) []SetRec {
	var sets []SetRec

	w50 := roundToNearest(workingWeight*0.50, warmupRoundStepKg)
	if w50 >= warmupMinSetWeightKg {
		sets = append(sets, SetRec{
			Type:        SetWarmup,
			Weight:      &w50,
			TargetReps:  RepRange{Min: 10, Max: 12},
			RestSeconds: 60,
		})
	}

	w75 := roundToNearest(workingWeight*0.75, warmupRoundStepKg)
	if w75 >= warmupMinSetWeightKg && w75 < workingWeight {
		sets = append(sets, SetRec{
			Type:        SetWarmup,
			Weight:      &w75,
			TargetReps:  RepRange{Min: 5, Max: 8},
			RestSeconds: 90,
		})
	}

	return sets
}

// calculateProgression decides the next working weight and an optional
// user-facing note. Deload overrides the progression rule entirely.
func calculateProgression(
	lastWeight float64,
	lastReps []int,
	targetRange RepRange,
	weightStep float64,
	progression ProgressionType,
	isDeload bool,
) (float64, string) {
	if isDeload {
		return roundToNearest(lastWeight*deloadWeightFactor, weightStep), "deload week: reduced weight"
	}

	if len(lastReps) == 0 {
		return lastWeight, ""
	}

	allInRange := true
	allAboveRange := true
	totalReps := 0
	for _, reps := range lastReps {
		if !targetRange.Contains(reps) {
			allInRange = false
		}
		if reps < targetRange.Max {
			allAboveRange = false
		}
		totalReps += reps
	}
	averageReps := float64(totalReps) / float64(len(lastReps))

	switch progression {
	case ProgressionLinear:
		switch {
		case allInRange || allAboveRange:
			return lastWeight + weightStep, fmt.Sprintf("progress +%s kg", FormatWeight(weightStep))
		case averageReps < float64(targetRange.Min):
			return lastWeight, "reps below target — holding weight"
		default:
			return lastWeight, ""
		}
	default: // ProgressionDouble
		switch {
		case allAboveRange:
			return lastWeight + weightStep, "all sets at max — increasing weight"
		case allInRange:
			return lastWeight, "increase reps toward upper bound"
		case averageReps < float64(targetRange.Min):
			return lastWeight, "reps below target — work on technique"
		default:
			return lastWeight, ""
		}
	}
}

// parseReps parses a comma-separated reps string. Malformed tokens are
// dropped silently; an empty or fully malformed string yields no reps.
func parseReps(reps string) []int {
	var parsed []int
	for _, token := range strings.Split(reps, ",") {
		if n, err := strconv.Atoi(strings.TrimSpace(token)); err == nil {
			parsed = append(parsed, n)
		}
	}
	return parsed
}

// parseEntryDate parses a stored entry date. Unparseable dates fall back to
// today rather than failing the whole computation.
func parseEntryDate(date string) time.Time {
	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	return parsed
}

// roundToNearest rounds v to the nearest multiple of step.
func roundToNearest(v, step float64) float64 {
	return math.Round(v/step) * step
}
