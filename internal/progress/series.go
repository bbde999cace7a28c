// Package progress derives per-week chart series from recorded sets.
package progress

import (
	"math"

	"github.com/claude/workouttracker/internal/catalog"
	"github.com/claude/workouttracker/internal/performance"
)

// Point is one week of derived metrics for an exercise.
type Point struct {
	Week        int     `json:"week"`
	AvgWeight   float64 `json:"avg_weight"`
	TotalVolume float64 `json:"total_volume"`
}

// ComputeSeries returns one point per program week, in week order, for the
// given exercise of the given workout day. Weeks without data are zero.
//
// TotalVolume is the week's summed weight times its summed reps, not the
// sum of per-set weight*reps.
func ComputeSeries(s performance.Store, workout, exercise string) []Point {
	points := make([]Point, 0, catalog.ProgramWeeks)
	for week := 1; week <= catalog.ProgramWeeks; week++ {
		points = append(points, weekPoint(week, performance.Week(s, workout, exercise, week)))
	}
	return points
}

func weekPoint(week int, sets performance.SetLog) Point {
	if len(sets) == 0 {
		return Point{Week: week}
	}

	var totalWeight float64
	var totalReps int64
	for _, set := range sets {
		totalWeight += ParseWeight(set.Weight)
		totalReps += ParseReps(set.Reps)
	}

	return Point{
		Week:        week,
		AvgWeight:   finite(totalWeight / float64(len(sets))),
		TotalVolume: finite(totalWeight * float64(totalReps)),
	}
}

// finite maps overflowed sums and products to 0 so every point stays
// encodable and chartable.
func finite(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}
