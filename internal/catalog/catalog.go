package catalog

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ProgramWeeks is the length of the training program in weeks.
const ProgramWeeks = 8

// ErrNotFound is returned when a workout day or exercise is not in the catalog.
var ErrNotFound = errors.New("not found in catalog")

// NotFoundError names the missing catalog item.
type NotFoundError struct {
	Kind string // "workout" or "exercise"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found in catalog", e.Kind, e.Name)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Exercise is one entry of a workout day.
type Exercise struct {
	Name       string `yaml:"name" json:"name"`
	Sets       int    `yaml:"sets" json:"sets"`
	TargetReps string `yaml:"target_reps" json:"target_reps"`
}

// WorkoutDay is a named, ordered list of exercises performed together.
type WorkoutDay struct {
	Name      string     `yaml:"name" json:"name"`
	Exercises []Exercise `yaml:"exercises" json:"exercises"`
}

// Catalog is the immutable training program. The zero value is not usable;
// construct with New, Default or Load.
type Catalog struct {
	days  []WorkoutDay
	index map[string]int
}

// New validates days and returns a catalog holding a private copy of them.
func New(days []WorkoutDay) (*Catalog, error) {
	if len(days) == 0 {
		return nil, fmt.Errorf("catalog has no workout days")
	}

	c := &Catalog{
		days:  make([]WorkoutDay, 0, len(days)),
		index: make(map[string]int, len(days)),
	}
	for _, d := range days {
		if d.Name == "" {
			return nil, fmt.Errorf("workout day with empty name")
		}
		if _, dup := c.index[d.Name]; dup {
			return nil, fmt.Errorf("duplicate workout day %q", d.Name)
		}
		if len(d.Exercises) == 0 {
			return nil, fmt.Errorf("workout day %q has no exercises", d.Name)
		}

		seen := make(map[string]bool, len(d.Exercises))
		for _, ex := range d.Exercises {
			if ex.Name == "" {
				return nil, fmt.Errorf("workout day %q: exercise with empty name", d.Name)
			}
			if seen[ex.Name] {
				return nil, fmt.Errorf("workout day %q: duplicate exercise %q", d.Name, ex.Name)
			}
			if ex.Sets < 1 {
				return nil, fmt.Errorf("workout day %q: exercise %q must have at least one set", d.Name, ex.Name)
			}
			seen[ex.Name] = true
		}

		c.index[d.Name] = len(c.days)
		c.days = append(c.days, WorkoutDay{
			Name:      d.Name,
			Exercises: append([]Exercise(nil), d.Exercises...),
		})
	}
	return c, nil
}

// catalogFile is the on-disk YAML shape of a catalog.
type catalogFile struct {
	Workouts []WorkoutDay `yaml:"workouts"`
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}
	c, err := New(f.Workouts)
	if err != nil {
		return nil, fmt.Errorf("catalog validation: %w", err)
	}
	return c, nil
}

// WorkoutDays returns the workout day names in program order.
func (c *Catalog) WorkoutDays() []string {
	names := make([]string, len(c.days))
	for i, d := range c.days {
		names[i] = d.Name
	}
	return names
}

// Days returns a copy of every workout day in program order.
func (c *Catalog) Days() []WorkoutDay {
	out := make([]WorkoutDay, len(c.days))
	for i, d := range c.days {
		out[i] = WorkoutDay{Name: d.Name, Exercises: append([]Exercise(nil), d.Exercises...)}
	}
	return out
}

// First returns the name of the first workout day.
func (c *Catalog) First() string {
	return c.days[0].Name
}

// Has reports whether day is a workout day of the catalog.
func (c *Catalog) Has(day string) bool {
	_, ok := c.index[day]
	return ok
}

// Exercises returns the ordered exercises of a workout day.
func (c *Catalog) Exercises(day string) ([]Exercise, error) {
	i, ok := c.index[day]
	if !ok {
		return nil, &NotFoundError{Kind: "workout", Name: day}
	}
	return append([]Exercise(nil), c.days[i].Exercises...), nil
}

// Exercise looks up a single exercise of a workout day.
func (c *Catalog) Exercise(day, name string) (Exercise, error) {
	i, ok := c.index[day]
	if !ok {
		return Exercise{}, &NotFoundError{Kind: "workout", Name: day}
	}
	for _, ex := range c.days[i].Exercises {
		if ex.Name == name {
			return ex, nil
		}
	}
	return Exercise{}, &NotFoundError{Kind: "exercise", Name: name}
}
