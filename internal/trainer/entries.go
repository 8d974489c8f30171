package trainer

import (
	"strconv"
	"strings"
)

// CompletedSet is one set logged during workout execution, before it is
// folded into journal entries.
type CompletedSet struct {
	ExerciseName string
	Type         SetType
	Weight       float64
	Reps         int
}

// DeriveEntries folds logged sets into journal entries for one date.
// Warm-up sets never count. Working sets are grouped by exercise: a single
// weight yields a single entry, while mixed weights yield a main entry at
// the most used weight plus one entry per remaining distinct weight. Set
// order within an exercise is preserved in the reps lists.
func DeriveEntries(date string, sets []CompletedSet) []Entry {
	var exerciseOrder []string
	byExercise := make(map[string][]CompletedSet)
	for _, set := range sets {
		if set.Type != SetWorking {
			continue
		}
		if _, ok := byExercise[set.ExerciseName]; !ok {
			exerciseOrder = append(exerciseOrder, set.ExerciseName)
		}
		byExercise[set.ExerciseName] = append(byExercise[set.ExerciseName], set)
	}

	var entries []Entry
	for _, name := range exerciseOrder {
		exerciseSets := byExercise[name]

		var weightOrder []float64
		byWeight := make(map[float64][]int)
		for _, set := range exerciseSets {
			if _, ok := byWeight[set.Weight]; !ok {
				weightOrder = append(weightOrder, set.Weight)
			}
			byWeight[set.Weight] = append(byWeight[set.Weight], set.Reps)
		}

		// The weight used by the most sets becomes the main entry. Ties go
		// to the weight logged first.
		mainWeight := weightOrder[0]
		for _, weight := range weightOrder[1:] {
			if len(byWeight[weight]) > len(byWeight[mainWeight]) {
				mainWeight = weight
			}
		}

		entries = append(entries, Entry{
			Date:         date,
			ExerciseName: name,
			Weight:       mainWeight,
			Reps:         joinReps(byWeight[mainWeight]),
		})
		for _, weight := range weightOrder {
			if weight == mainWeight {
				continue
			}
			entries = append(entries, Entry{
				Date:         date,
				ExerciseName: name,
				Weight:       weight,
				Reps:         joinReps(byWeight[weight]),
			})
		}
	}

	return entries
}

func joinReps(reps []int) string {
	tokens := make([]string, len(reps))
	for i, n := range reps {
		tokens[i] = strconv.Itoa(n)
	}
	return strings.Join(tokens, ",")
}
