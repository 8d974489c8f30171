package trainer

// MuscleGroup identifies a trained muscle group.
type MuscleGroup string

// Muscle group constants. The order of AllMuscleGroups is the canonical
// full-body training order used by the Full Body split.
const (
	MuscleGroupChest     MuscleGroup = "CHEST"
	MuscleGroupBack      MuscleGroup = "BACK"
	MuscleGroupShoulders MuscleGroup = "SHOULDERS"
	MuscleGroupBiceps    MuscleGroup = "BICEPS"
	MuscleGroupTriceps   MuscleGroup = "TRICEPS"
	MuscleGroupLegs      MuscleGroup = "LEGS"
	MuscleGroupAbs       MuscleGroup = "ABS"
)

// AllMuscleGroups lists every muscle group in canonical order.
func AllMuscleGroups() []MuscleGroup {
	return []MuscleGroup{
		MuscleGroupChest,
		MuscleGroupBack,
		MuscleGroupShoulders,
		MuscleGroupBiceps,
		MuscleGroupTriceps,
		MuscleGroupLegs,
		MuscleGroupAbs,
	}
}

var muscleGroupDisplayNames = map[MuscleGroup]string{
	MuscleGroupChest:     "Chest",
	MuscleGroupBack:      "Back",
	MuscleGroupShoulders: "Shoulders",
	MuscleGroupBiceps:    "Biceps",
	MuscleGroupTriceps:   "Triceps",
	MuscleGroupLegs:      "Legs",
	MuscleGroupAbs:       "Abs",
}

// DisplayName returns the user-facing name of the muscle group.
func (g MuscleGroup) DisplayName() string {
	if name, ok := muscleGroupDisplayNames[g]; ok {
		return name
	}
	return string(g)
}

// ParseMuscleGroup maps a stored name to a MuscleGroup. Unknown names return
// false so that callers can skip them the same way the settings parser does.
func ParseMuscleGroup(name string) (MuscleGroup, bool) {
	g := MuscleGroup(name)
	_, ok := muscleGroupDisplayNames[g]
	return g, ok
}

// ExerciseType classifies an exercise as a multi-joint or single-joint
// movement. The type drives set counts, warm-ups, and rest periods.
type ExerciseType string

const (
	ExerciseTypeCompound  ExerciseType = "COMPOUND"
	ExerciseTypeIsolation ExerciseType = "ISOLATION"
)

// ParseExerciseType maps a stored name to an ExerciseType, defaulting to
// compound like the journal does for legacy rows.
func ParseExerciseType(name string) ExerciseType {
	if name == string(ExerciseTypeIsolation) {
		return ExerciseTypeIsolation
	}
	return ExerciseTypeCompound
}

// RepRange is an inclusive range of repetitions per set.
type RepRange struct {
	Min int
	Max int
}

// Contains reports whether n falls inside the range.
func (r RepRange) Contains(n int) bool {
	return n >= r.Min && n <= r.Max
}

// String renders the range for display, e.g. "8–12".
func (r RepRange) String() string {
	return formatRepRange(r)
}

// Goal is the training goal driving rep ranges and rest periods.
type Goal string

const (
	GoalHypertrophy Goal = "HYPERTROPHY"
	GoalStrength    Goal = "STRENGTH"
	GoalEndurance   Goal = "ENDURANCE"
)

// goalInfo attaches the constant data each goal carries.
type goalInfo struct {
	displayName string
	target      RepRange
	near        RepRange
}

var goalTable = map[Goal]goalInfo{
	GoalHypertrophy: {
		displayName: "Hypertrophy",
		target:      RepRange{Min: 8, Max: 12},
		near:        RepRange{Min: 6, Max: 15},
	},
	GoalStrength: {
		displayName: "Strength",
		target:      RepRange{Min: 3, Max: 6},
		near:        RepRange{Min: 1, Max: 8},
	},
	GoalEndurance: {
		displayName: "Endurance",
		target:      RepRange{Min: 15, Max: 25},
		near:        RepRange{Min: 12, Max: 30},
	},
}

// AllGoals lists the selectable goals in display order.
func AllGoals() []Goal {
	return []Goal{GoalHypertrophy, GoalStrength, GoalEndurance}
}

// DisplayName returns the user-facing goal name.
func (g Goal) DisplayName() string {
	return g.info().displayName
}

// TargetRange is the rep range the goal prescribes for working sets.
func (g Goal) TargetRange() RepRange {
	return g.info().target
}

// NearRange is the wider rep range still scored as acceptable.
func (g Goal) NearRange() RepRange {
	return g.info().near
}

func (g Goal) info() goalInfo {
	if info, ok := goalTable[g]; ok {
		return info
	}
	// Unknown goals behave like the default goal so that stale settings rows
	// never break recommendation generation.
	return goalTable[GoalHypertrophy]
}

// ParseGoal maps a stored name to a Goal, defaulting to hypertrophy.
func ParseGoal(name string) Goal {
	g := Goal(name)
	if _, ok := goalTable[g]; ok {
		return g
	}
	return GoalHypertrophy
}

// SplitType determines how muscle groups are distributed over cycle days.
type SplitType string

const (
	SplitFullBody     SplitType = "FULL_BODY"
	SplitUpperLower   SplitType = "UPPER_LOWER"
	SplitPushPullLegs SplitType = "PUSH_PULL_LEGS"
	SplitCustom       SplitType = "CUSTOM"
)

// AllSplitTypes lists the selectable split types in display order.
func AllSplitTypes() []SplitType {
	return []SplitType{SplitFullBody, SplitUpperLower, SplitPushPullLegs, SplitCustom}
}

var splitDisplayNames = map[SplitType]string{
	SplitFullBody:     "Full Body",
	SplitUpperLower:   "Upper / Lower",
	SplitPushPullLegs: "Push / Pull / Legs",
	SplitCustom:       "Custom split",
}

// DisplayName returns the user-facing split name.
func (s SplitType) DisplayName() string {
	if name, ok := splitDisplayNames[s]; ok {
		return name
	}
	return string(s)
}

// ParseSplitType maps a stored name to a SplitType, defaulting to full body.
func ParseSplitType(name string) SplitType {
	s := SplitType(name)
	if _, ok := splitDisplayNames[s]; ok {
		return s
	}
	return SplitFullBody
}

// ProgressionType selects the weight progression rule.
type ProgressionType string

const (
	// ProgressionLinear adds weight every session the target range is met.
	ProgressionLinear ProgressionType = "LINEAR"
	// ProgressionDouble grows reps to the top of the range before adding weight.
	ProgressionDouble ProgressionType = "DOUBLE"
)

// ParseProgressionType maps a stored name to a ProgressionType, defaulting to
// double progression.
func ParseProgressionType(name string) ProgressionType {
	if name == string(ProgressionLinear) {
		return ProgressionLinear
	}
	return ProgressionDouble
}

// SetType distinguishes preparatory warm-up sets from counted working sets.
type SetType string

const (
	SetWarmup  SetType = "WARMUP"
	SetWorking SetType = "WORKING"
)

// Exercise is a catalog entry. Journal entries reference it by name only, so
// deleting an exercise leaves its history behind.
type Exercise struct {
	ID          int64
	Name        string
	MuscleGroup MuscleGroup
	Type        ExerciseType
}

// Entry is one logged session of a single exercise: the date, the weight
// used, and a comma-separated list of reps per set, e.g. "10,8,6".
type Entry struct {
	ID           int64
	Date         string
	ExerciseName string
	Weight       float64
	Reps         string
}

// Settings holds the trainer configuration.
type Settings struct {
	Split               SplitType
	DaysPerWeek         int
	PriorityGroups      []MuscleGroup
	CustomSplitDays     map[int][]MuscleGroup
	IncludeWarmup       bool
	AutoDeload          bool
	DeloadIntervalWeeks int
	Progression         ProgressionType
}

// DefaultSettings returns the settings used before the user configures the
// trainer.
func DefaultSettings() Settings {
	return Settings{
		Split:               SplitFullBody,
		DaysPerWeek:         3,
		PriorityGroups:      nil,
		CustomSplitDays:     nil,
		IncludeWarmup:       true,
		AutoDeload:          true,
		DeloadIntervalWeeks: 4,
		Progression:         ProgressionDouble,
	}
}

// SetRec is a single prescribed set. A nil Weight means the working weight is
// still undetermined (first session with the exercise).
type SetRec struct {
	Type        SetType
	Weight      *float64
	TargetReps  RepRange
	RestSeconds int
}

// WeightDisplay renders the set weight for display, empty when undetermined.
func (s SetRec) WeightDisplay() string {
	if s.Weight == nil {
		return ""
	}
	return FormatWeight(*s.Weight)
}

// ExerciseRec prescribes all sets for one exercise, warm-ups first.
type ExerciseRec struct {
	Exercise Exercise
	Sets     []SetRec
	Note     string
}

// Recommendation is the generated plan for the next training day. It is
// constructed fresh on every generation and never mutated.
type Recommendation struct {
	DayLabel      string
	DayIndex      int
	MuscleGroups  []MuscleGroup
	Exercises     []ExerciseRec
	IsDeloadWeek  bool
	MissingGroups []MuscleGroup
}
