package store

import (
	"context"

	"github.com/rs/zerolog"

	"wellvantage/fitness-app/internal/domain"
	"wellvantage/fitness-app/internal/validate"
)

// WorkoutAPI is the backend the workout store talks to.
type WorkoutAPI interface {
	ListWorkoutPlans(ctx context.Context) ([]domain.WorkoutPlan, error)
	CreateWorkoutPlan(ctx context.Context, in domain.WorkoutPlanInput) (*domain.WorkoutPlan, error)
	UpdateWorkoutPlan(ctx context.Context, id string, in domain.WorkoutPlanInput) (*domain.WorkoutPlan, error)
	DeleteWorkoutPlan(ctx context.Context, id string) error
}

// WorkoutStore caches the user's workout plans.
type WorkoutStore struct {
	*list[domain.WorkoutPlan]
	api WorkoutAPI
}

func NewWorkoutStore(api WorkoutAPI, logger zerolog.Logger) *WorkoutStore {
	return &WorkoutStore{
		list: newList(func(p domain.WorkoutPlan) string { return p.ID },
			logger.With().Str("component", "workout-store").Logger()),
		api: api,
	}
}

func (s *WorkoutStore) Fetch(ctx context.Context) error {
	if err := s.begin(""); err != nil {
		return err
	}
	items, err := s.api.ListWorkoutPlans(ctx)
	s.finish("", err, "Failed to fetch workouts", func() { s.replaceAll(items) })
	return err
}

// Create validates and saves a new plan. Days are renumbered from 1 in order.
func (s *WorkoutStore) Create(ctx context.Context, in domain.WorkoutPlanInput) (*domain.WorkoutPlan, error) {
	in = numberDays(in)
	if err := validate.WorkoutPlan(in).Err(); err != nil {
		return nil, err
	}
	if err := s.begin(""); err != nil {
		return nil, err
	}
	created, err := s.api.CreateWorkoutPlan(ctx, in)
	s.finish("", err, "Failed to add workout", func() { s.upsert(*created) })
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *WorkoutStore) Update(ctx context.Context, id string, in domain.WorkoutPlanInput) (*domain.WorkoutPlan, error) {
	in = numberDays(in)
	if err := validate.WorkoutPlan(in).Err(); err != nil {
		return nil, err
	}
	if err := s.begin(id); err != nil {
		return nil, err
	}
	updated, err := s.api.UpdateWorkoutPlan(ctx, id, in)
	s.finish(id, err, "Failed to update workout", func() { s.upsert(*updated) })
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *WorkoutStore) Delete(ctx context.Context, id string) error {
	if err := s.begin(id); err != nil {
		return err
	}
	err := s.api.DeleteWorkoutPlan(ctx, id)
	s.finish(id, err, "Failed to delete workout", func() { s.remove(id) })
	return err
}

func numberDays(in domain.WorkoutPlanInput) domain.WorkoutPlanInput {
	days := make([]domain.WorkoutDay, len(in.Days))
	for i, d := range in.Days {
		d.DayNumber = i + 1
		days[i] = d
	}
	in.Days = days
	return in
}
