package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"wellvantage/fitness-app/internal/domain"
	"wellvantage/fitness-app/internal/repository"
	"wellvantage/fitness-app/internal/validate"
)

// WorkoutService manages workout plans.
type WorkoutService interface {
	List(ctx context.Context, userID string) ([]domain.WorkoutPlan, error)
	Create(ctx context.Context, userID string, in domain.WorkoutPlanInput) (*domain.WorkoutPlan, error)
	Update(ctx context.Context, userID, id string, in domain.WorkoutPlanInput) (*domain.WorkoutPlan, error)
	Delete(ctx context.Context, userID, id string) error
}

type workoutService struct {
	planRepo repository.WorkoutPlanRepository
}

func NewWorkoutService(planRepo repository.WorkoutPlanRepository) WorkoutService {
	return &workoutService{planRepo: planRepo}
}

func (s *workoutService) List(ctx context.Context, userID string) ([]domain.WorkoutPlan, error) {
	return s.planRepo.ListByUser(ctx, userID)
}

func (s *workoutService) Create(ctx context.Context, userID string, in domain.WorkoutPlanInput) (*domain.WorkoutPlan, error) {
	if err := validate.WorkoutPlan(in).Err(); err != nil {
		return nil, InputError(err.Error())
	}
	plan := &domain.WorkoutPlan{
		UserID: userID,
		Title:  in.Title,
		Days:   normalizeDays(in.Days),
		Notes:  in.Notes,
	}
	if _, err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *workoutService) Update(ctx context.Context, userID, id string, in domain.WorkoutPlanInput) (*domain.WorkoutPlan, error) {
	if err := validate.WorkoutPlan(in).Err(); err != nil {
		return nil, InputError(err.Error())
	}
	plan, err := s.planRepo.GetByID(ctx, id)
	if err != nil || plan.UserID != userID {
		if err == nil || errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	plan.Title = in.Title
	plan.Days = normalizeDays(in.Days)
	plan.Notes = in.Notes
	if err := s.planRepo.Update(ctx, plan); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *workoutService) Delete(ctx context.Context, userID, id string) error {
	if err := s.planRepo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrWorkoutNotFound
		}
		return err
	}
	return nil
}

// normalizeDays numbers days from 1 in order and gives days and exercises an id.
func normalizeDays(days []domain.WorkoutDay) []domain.WorkoutDay {
	out := make([]domain.WorkoutDay, len(days))
	for i, d := range days {
		d.DayNumber = i + 1
		if d.ID == "" {
			d.ID = uuid.NewString()
		}
		exercises := make([]domain.WorkoutExercise, len(d.Exercises))
		for j, e := range d.Exercises {
			if e.ID == "" {
				e.ID = uuid.NewString()
			}
			exercises[j] = e
		}
		d.Exercises = exercises
		out[i] = d
	}
	return out
}
