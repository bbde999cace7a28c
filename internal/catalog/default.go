package catalog

// defaultDays is the reference four-day, 8-week program.
var defaultDays = []WorkoutDay{
	{
		Name: "Lower Body Strength + Core",
		Exercises: []Exercise{
			{Name: "Back Squat", Sets: 4, TargetReps: "6-8"},
			{Name: "Romanian Deadlift", Sets: 4, TargetReps: "8-10"},
			{Name: "Bulgarian Split Squat", Sets: 3, TargetReps: "10-12"},
			{Name: "Plank", Sets: 3, TargetReps: "30-45s"},
			{Name: "Russian Twists", Sets: 3, TargetReps: "20"},
		},
	},
	{
		Name: "Upper Body Strength + Cardio",
		Exercises: []Exercise{
			{Name: "Bench Press", Sets: 4, TargetReps: "6-8"},
			{Name: "Bent-over Rows", Sets: 4, TargetReps: "8-10"},
			{Name: "Overhead Press", Sets: 3, TargetReps: "8-10"},
			{Name: "Jump Rope", Sets: 1, TargetReps: "15min HIIT"},
		},
	},
	{
		Name: "Lower Body Power + Core",
		Exercises: []Exercise{
			{Name: "Box Jumps", Sets: 4, TargetReps: "5"},
			{Name: "Speed Squats", Sets: 4, TargetReps: "5"},
			{Name: "Kettlebell Swings", Sets: 4, TargetReps: "12-15"},
			{Name: "Hanging Leg Raises", Sets: 3, TargetReps: "10-12"},
			{Name: "Side Planks", Sets: 3, TargetReps: "30s each"},
		},
	},
	{
		Name: "Upper Body Hypertrophy + Cardio",
		Exercises: []Exercise{
			{Name: "Incline Dumbbell Press", Sets: 4, TargetReps: "10-12"},
			{Name: "Pull-ups or Lat Pulldowns", Sets: 4, TargetReps: "8-10"},
			{Name: "Dips", Sets: 3, TargetReps: "10-12"},
			{Name: "Rowing", Sets: 1, TargetReps: "20min steady"},
		},
	},
}

// Default returns the built-in program catalog.
func Default() *Catalog {
	c, err := New(defaultDays)
	if err != nil {
		panic("catalog: invalid default program: " + err.Error())
	}
	return c
}
