// Package performance holds the recorded per-set workout data and its
// persistence to a single storage slot.
package performance

import (
	"fmt"
	"strconv"
)

// SetEntry is what the user typed for one set. Values are kept verbatim;
// an empty string means "not recorded".
type SetEntry struct {
	Weight string `json:"weight"`
	Reps   string `json:"reps"`
}

// SetLog maps set number ("1".."N") to its entry.
type SetLog map[string]SetEntry

// ExerciseLog maps week number ("1".."8") to the sets recorded that week.
type ExerciseLog map[string]SetLog

// WorkoutLog maps exercise name to its weekly log.
type WorkoutLog map[string]ExerciseLog

// Store maps workout day name to its exercises. A Store is treated as an
// immutable value: Set returns a new Store and never modifies its input.
type Store map[string]WorkoutLog

// Key addresses exactly one SetEntry.
type Key struct {
	Workout  string `json:"workout"`
	Exercise string `json:"exercise"`
	Week     int    `json:"week"`
	Set      int    `json:"set"`
}

// Field selects which half of a SetEntry to update.
type Field string

const (
	FieldWeight Field = "weight"
	FieldReps   Field = "reps"
)

// ParseField validates a field name.
func ParseField(s string) (Field, error) {
	switch Field(s) {
	case FieldWeight, FieldReps:
		return Field(s), nil
	}
	return "", fmt.Errorf("unknown field %q (want weight or reps)", s)
}

// Get returns the entry at key, or an empty entry if any level is missing.
func Get(s Store, key Key) SetEntry {
	return s[key.Workout][key.Exercise][weekKey(key.Week)][setKey(key.Set)]
}

// Week returns the sets recorded for one exercise in one week, nil if none.
func Week(s Store, workout, exercise string, week int) SetLog {
	return s[workout][exercise][weekKey(week)]
}

// Set returns a copy of s with field of the entry at key set to value.
// Only the maps on the path to key are copied; everything else is shared
// with s. Missing levels are created.
func Set(s Store, key Key, field Field, value string) Store {
	wk, sk := weekKey(key.Week), setKey(key.Set)

	entry := s[key.Workout][key.Exercise][wk][sk]
	switch field {
	case FieldWeight:
		entry.Weight = value
	case FieldReps:
		entry.Reps = value
	}

	sets := make(SetLog, len(s[key.Workout][key.Exercise][wk])+1)
	for k, v := range s[key.Workout][key.Exercise][wk] {
		sets[k] = v
	}
	sets[sk] = entry

	weeks := make(ExerciseLog, len(s[key.Workout][key.Exercise])+1)
	for k, v := range s[key.Workout][key.Exercise] {
		weeks[k] = v
	}
	weeks[wk] = sets

	exercises := make(WorkoutLog, len(s[key.Workout])+1)
	for k, v := range s[key.Workout] {
		exercises[k] = v
	}
	exercises[key.Exercise] = weeks

	out := make(Store, len(s)+1)
	for k, v := range s {
		out[k] = v
	}
	out[key.Workout] = exercises
	return out
}

func weekKey(week int) string { return strconv.Itoa(week) }
func setKey(set int) string   { return strconv.Itoa(set) }
