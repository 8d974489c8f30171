package trainer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Setting keys. The serialized formats are stable because the mobile app
// used the same encodings in its preferences store.
const (
	settingKeyGoal                = "training_goal"
	settingKeySplitType           = "trainer_split_type"
	settingKeyDaysPerWeek         = "trainer_days_per_week"
	settingKeyPriorityGroups      = "trainer_priority_groups"
	settingKeyCustomSplitDays     = "trainer_custom_split_days"
	settingKeyIncludeWarmup       = "trainer_include_warmup"
	settingKeyAutoDeload          = "trainer_auto_deload"
	settingKeyDeloadIntervalWeeks = "trainer_deload_interval_weeks"
	settingKeyProgressionType     = "trainer_progression_type"
)

// sqliteSettingsRepository stores trainer settings and the training goal as
// key-value rows. Missing or unknown values fall back to defaults so that a
// fresh database behaves like an unconfigured app.
type sqliteSettingsRepository struct {
	baseRepository
}

// GetSettings loads the trainer settings, substituting defaults for unset keys.
func (r *sqliteSettingsRepository) GetSettings(ctx context.Context) (Settings, error) {
	values, err := r.load(ctx)
	if err != nil {
		return Settings{}, fmt.Errorf("load settings: %w", err)
	}

	settings := DefaultSettings()
	if v, ok := values[settingKeySplitType]; ok {
		settings.Split = ParseSplitType(v)
	}
	if v, ok := values[settingKeyDaysPerWeek]; ok {
		if days, convErr := strconv.Atoi(v); convErr == nil {
			settings.DaysPerWeek = days
		}
	}
	if v, ok := values[settingKeyPriorityGroups]; ok {
		settings.PriorityGroups = ParseMuscleGroupList(v)
	}
	if v, ok := values[settingKeyCustomSplitDays]; ok {
		settings.CustomSplitDays = ParseCustomSplitDays(v)
	}
	if v, ok := values[settingKeyIncludeWarmup]; ok {
		settings.IncludeWarmup = v == "true"
	}
	if v, ok := values[settingKeyAutoDeload]; ok {
		settings.AutoDeload = v == "true"
	}
	if v, ok := values[settingKeyDeloadIntervalWeeks]; ok {
		if weeks, convErr := strconv.Atoi(v); convErr == nil {
			settings.DeloadIntervalWeeks = weeks
		}
	}
	if v, ok := values[settingKeyProgressionType]; ok {
		settings.Progression = ParseProgressionType(v)
	}
	return settings, nil
}

// SetSettings persists the trainer settings.
func (r *sqliteSettingsRepository) SetSettings(ctx context.Context, settings Settings) error {
	values := map[string]string{
		settingKeySplitType:           string(settings.Split),
		settingKeyDaysPerWeek:         strconv.Itoa(settings.DaysPerWeek),
		settingKeyPriorityGroups:      SerializeMuscleGroupList(settings.PriorityGroups),
		settingKeyCustomSplitDays:     SerializeCustomSplitDays(settings.CustomSplitDays),
		settingKeyIncludeWarmup:       strconv.FormatBool(settings.IncludeWarmup),
		settingKeyAutoDeload:          strconv.FormatBool(settings.AutoDeload),
		settingKeyDeloadIntervalWeeks: strconv.Itoa(settings.DeloadIntervalWeeks),
		settingKeyProgressionType:     string(settings.Progression),
	}
	for key, value := range values {
		if err := r.set(ctx, key, value); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}
	return nil
}

// GetGoal loads the training goal, defaulting to hypertrophy.
func (r *sqliteSettingsRepository) GetGoal(ctx context.Context) (Goal, error) {
	var value string
	err := r.db.ReadOnly.QueryRowContext(ctx, `
		SELECT value FROM trainer_settings WHERE key = ?`, settingKeyGoal).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return GoalHypertrophy, nil
	}
	if err != nil {
		return GoalHypertrophy, fmt.Errorf("query goal: %w", err)
	}
	return ParseGoal(value), nil
}

// SetGoal persists the training goal.
func (r *sqliteSettingsRepository) SetGoal(ctx context.Context, goal Goal) error {
	if err := r.set(ctx, settingKeyGoal, string(goal)); err != nil {
		return fmt.Errorf("set goal: %w", err)
	}
	return nil
}

func (r *sqliteSettingsRepository) load(ctx context.Context) (_ map[string]string, err error) {
	rows, err := r.db.ReadOnly.QueryContext(ctx, `SELECT key, value FROM trainer_settings`)
	if err != nil {
		return nil, fmt.Errorf("query settings: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("close rows: %w", closeErr))
		}
	}()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err = rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		values[key] = value
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return values, nil
}

func (r *sqliteSettingsRepository) set(ctx context.Context, key, value string) error {
	if _, err := r.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO trainer_settings (key, value)
		VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`, key, value); err != nil {
		return fmt.Errorf("upsert setting: %w", err)
	}
	return nil
}

// ParseMuscleGroupList parses a comma-joined group list, dropping unknown names.
func ParseMuscleGroupList(raw string) []MuscleGroup {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var groups []MuscleGroup
	for _, name := range strings.Split(raw, ",") {
		if group, ok := ParseMuscleGroup(name); ok {
			groups = append(groups, group)
		}
	}
	return groups
}

func SerializeMuscleGroupList(groups []MuscleGroup) string {
	names := make([]string, len(groups))
	for i, group := range groups {
		names[i] = string(group)
	}
	return strings.Join(names, ",")
}

// ParseCustomSplitDays parses the "dayIndex:GROUP,GROUP;dayIndex:GROUP"
// encoding. Malformed day entries are skipped.
func ParseCustomSplitDays(raw string) map[int][]MuscleGroup {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	days := make(map[int][]MuscleGroup)
	for _, dayEntry := range strings.Split(raw, ";") {
		parts := strings.SplitN(dayEntry, ":", 2)
		if len(parts) != 2 {
			continue
		}
		dayIndex, err := strconv.Atoi(parts[0])
		if err != nil {
			continue
		}
		days[dayIndex] = ParseMuscleGroupList(parts[1])
	}
	if len(days) == 0 {
		return nil
	}
	return days
}

func SerializeCustomSplitDays(days map[int][]MuscleGroup) string {
	indices := make([]int, 0, len(days))
	for index := range days {
		indices = append(indices, index)
	}
	sort.Ints(indices)

	entries := make([]string, 0, len(days))
	for _, index := range indices {
		entries = append(entries, fmt.Sprintf("%d:%s", index, SerializeMuscleGroupList(days[index])))
	}
	return strings.Join(entries, ";")
}
