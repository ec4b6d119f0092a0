package domain

import "time"

// WorkoutPlan is a multi-day workout, e.g. "Beginner's Workout - 3 Days".
type WorkoutPlan struct {
	ID        string       `bson:"_id" json:"id"`
	UserID    string       `bson:"userId" json:"userId"`
	Title     string       `bson:"title" json:"title"`
	Days      []WorkoutDay `bson:"days" json:"days"`
	Notes     string       `bson:"notes,omitempty" json:"notes"`
	CreatedAt time.Time    `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time    `bson:"updatedAt" json:"updatedAt"`
}

// WorkoutDay is one training day of a plan.
type WorkoutDay struct {
	ID        string            `bson:"id" json:"id"`
	DayNumber int               `bson:"dayNumber" json:"dayNumber"`
	Name      string            `bson:"name" json:"name"` // e.g. "Chest"
	Exercises []WorkoutExercise `bson:"exercises" json:"exercises"`
}

// WorkoutExercise keeps sets and reps as free text ("10", "5-8").
type WorkoutExercise struct {
	ID   string `bson:"id" json:"id"`
	Name string `bson:"name" json:"name"`
	Sets string `bson:"sets" json:"sets"`
	Reps string `bson:"reps" json:"reps"`
}

// WorkoutPlanInput is the body of POST /workouts and PATCH /workouts/{id}.
type WorkoutPlanInput struct {
	Title string       `json:"title"`
	Days  []WorkoutDay `json:"days"`
	Notes string       `json:"notes"`
}

// Input returns the editable fields of p.
func (p WorkoutPlan) Input() WorkoutPlanInput {
	return WorkoutPlanInput{Title: p.Title, Days: p.Days, Notes: p.Notes}
}
