package tracker

import (
	"github.com/claude/workouttracker/internal/catalog"
	"github.com/claude/workouttracker/internal/performance"
	"github.com/claude/workouttracker/internal/progress"
)

// Sheet is everything needed to draw one workout day for one week.
type Sheet struct {
	Selection Selection       `json:"selection"`
	Workouts  []string        `json:"workouts"`
	Weeks     []int           `json:"weeks"`
	Exercises []ExerciseSheet `json:"exercises"`
}

// ExerciseSheet is one exercise block: its inputs and its progress series.
type ExerciseSheet struct {
	Name       string           `json:"name"`
	TargetReps string           `json:"target_reps"`
	Sets       []SetRow         `json:"sets"`
	Series     []progress.Point `json:"series"`
}

// SetRow is the weight/reps input pair for one set.
type SetRow struct {
	Number int    `json:"number"`
	Weight string `json:"weight"`
	Reps   string `json:"reps"`
}

// Sheet builds the view model for sel. Every value is read through a key
// of sel.Workout, so same-named exercises of other days never leak in.
func (t *Tracker) Sheet(sel Selection) (Sheet, error) {
	exercises, err := t.catalog.Exercises(sel.Workout)
	if err != nil {
		return Sheet{}, err
	}
	if err := checkWeek(sel.Week); err != nil {
		return Sheet{}, err
	}

	store := t.Snapshot()
	sheet := Sheet{
		Selection: sel,
		Workouts:  t.catalog.WorkoutDays(),
		Weeks:     make([]int, 0, catalog.ProgramWeeks),
		Exercises: make([]ExerciseSheet, 0, len(exercises)),
	}
	for w := 1; w <= catalog.ProgramWeeks; w++ {
		sheet.Weeks = append(sheet.Weeks, w)
	}

	for _, ex := range exercises {
		es := ExerciseSheet{
			Name:       ex.Name,
			TargetReps: ex.TargetReps,
			Sets:       make([]SetRow, 0, ex.Sets),
			Series:     progress.ComputeSeries(store, sel.Workout, ex.Name),
		}
		for n := 1; n <= ex.Sets; n++ {
			e := performance.Get(store, performance.Key{Workout: sel.Workout, Exercise: ex.Name, Week: sel.Week, Set: n})
			es.Sets = append(es.Sets, SetRow{Number: n, Weight: e.Weight, Reps: e.Reps})
		}
		sheet.Exercises = append(sheet.Exercises, es)
	}
	return sheet, nil
}
