// Package memory implements the repository interfaces in process memory.
// It backs the server when database.driver is "memory" and is used by tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"wellvantage/fitness-app/internal/domain"
	"wellvantage/fitness-app/internal/repository"
)

// UserRepository is an in-memory repository.UserRepository.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) || (user.GoogleID != "" && u.GoogleID == user.GoogleID) {
			return "", repository.ErrConflict
		}
	}
	user.ID = uuid.NewString()
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	r.users[user.ID] = *user
	return user.ID, nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return u.ID == id })
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *UserRepository) GetByGoogleID(_ context.Context, googleID string) (*domain.User, error) {
	return r.find(func(u domain.User) bool { return googleID != "" && u.GoogleID == googleID })
}

func (r *UserRepository) find(match func(domain.User) bool) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *UserRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.users[user.ID]
	if !ok {
		return repository.ErrNotFound
	}
	current.Name = user.Name
	current.GoogleID = user.GoogleID
	current.ProfilePicture = user.ProfilePicture
	current.PictureKey = user.PictureKey
	current.PendingPicture = user.PendingPicture
	current.UpdatedAt = time.Now().UTC()
	r.users[user.ID] = current
	user.UpdatedAt = current.UpdatedAt
	return nil
}

// AvailabilityRepository is an in-memory repository.AvailabilityRepository.
type AvailabilityRepository struct {
	mu    sync.RWMutex
	items map[string]domain.Availability
}

func NewAvailabilityRepository() *AvailabilityRepository {
	return &AvailabilityRepository{items: make(map[string]domain.Availability)}
}

func (r *AvailabilityRepository) Create(_ context.Context, a *domain.Availability) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = uuid.NewString()
	now := time.Now().UTC()
	a.CreatedAt, a.UpdatedAt = now, now
	r.items[a.ID] = *a
	return a.ID, nil
}

func (r *AvailabilityRepository) GetByID(_ context.Context, id string) (*domain.Availability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &a, nil
}

func (r *AvailabilityRepository) ListByUser(_ context.Context, userID, startDate, endDate string) ([]domain.Availability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.Availability{}
	for _, a := range r.items {
		if a.UserID != userID {
			continue
		}
		if (startDate != "" && a.Date < startDate) || (endDate != "" && a.Date > endDate) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if out[i].StartTime != out[j].StartTime {
			return out[i].StartTime < out[j].StartTime
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *AvailabilityRepository) Update(_ context.Context, a *domain.Availability) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.items[a.ID]
	if !ok || current.UserID != a.UserID {
		return repository.ErrNotFound
	}
	a.CreatedAt = current.CreatedAt
	a.UpdatedAt = time.Now().UTC()
	r.items[a.ID] = *a
	return nil
}

func (r *AvailabilityRepository) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.items[id]
	if !ok || current.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

// BookingRepository is an in-memory repository.BookingRepository. It keeps the
// same unique slot constraint as the MongoDB index.
type BookingRepository struct {
	mu    sync.RWMutex
	items map[string]domain.Booking
	slots map[string]string // slot key -> booking id
}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{
		items: make(map[string]domain.Booking),
		slots: make(map[string]string),
	}
}

func (r *BookingRepository) Create(_ context.Context, b *domain.Booking) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := b.SlotKey()
	if _, taken := r.slots[key]; taken {
		return "", repository.ErrConflict
	}
	b.ID = uuid.NewString()
	now := time.Now().UTC()
	b.CreatedAt, b.UpdatedAt = now, now
	if b.Status == "" {
		b.Status = domain.BookingOpen
	}
	r.items[b.ID] = *b
	r.slots[key] = b.ID
	return b.ID, nil
}

func (r *BookingRepository) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.items[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (r *BookingRepository) ListByUser(_ context.Context, userID string) ([]domain.Booking, error) {
	return r.filter(func(b domain.Booking) bool { return b.UserID == userID }), nil
}

func (r *BookingRepository) ListByAvailability(_ context.Context, availabilityID, userID string) ([]domain.Booking, error) {
	return r.filter(func(b domain.Booking) bool {
		return b.AvailabilityID == availabilityID && b.UserID == userID
	}), nil
}

func (r *BookingRepository) filter(match func(domain.Booking) bool) []domain.Booking {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.Booking{}
	for _, b := range r.items {
		if match(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BookingDate != out[j].BookingDate {
			return out[i].BookingDate < out[j].BookingDate
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

func (r *BookingRepository) UpdateStatus(_ context.Context, id, userID string, status domain.BookingStatus) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.items[id]
	if !ok || b.UserID != userID {
		return nil, repository.ErrNotFound
	}
	b.Status = status
	b.UpdatedAt = time.Now().UTC()
	r.items[id] = b
	return &b, nil
}

func (r *BookingRepository) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.items[id]
	if !ok || b.UserID != userID {
		return repository.ErrNotFound
	}
	r.removeLocked(b)
	return nil
}

func (r *BookingRepository) DeleteByAvailability(_ context.Context, availabilityID string) (int64, error) {
	return r.deleteWhere(func(b domain.Booking) bool { return b.AvailabilityID == availabilityID }), nil
}

func (r *BookingRepository) DeleteOpenBefore(_ context.Context, date string) (int64, error) {
	return r.deleteWhere(func(b domain.Booking) bool {
		return b.Status == domain.BookingOpen && b.BookingDate < date
	}), nil
}

func (r *BookingRepository) deleteWhere(match func(domain.Booking) bool) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, b := range r.items {
		if match(b) {
			r.removeLocked(b)
			n++
		}
	}
	return n
}

func (r *BookingRepository) removeLocked(b domain.Booking) {
	delete(r.items, b.ID)
	if r.slots[b.SlotKey()] == b.ID {
		delete(r.slots, b.SlotKey())
	}
}

// WorkoutPlanRepository is an in-memory repository.WorkoutPlanRepository.
type WorkoutPlanRepository struct {
	mu    sync.RWMutex
	plans map[string]domain.WorkoutPlan
}

func NewWorkoutPlanRepository() *WorkoutPlanRepository {
	return &WorkoutPlanRepository{plans: make(map[string]domain.WorkoutPlan)}
}

func (r *WorkoutPlanRepository) Create(_ context.Context, plan *domain.WorkoutPlan) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	plan.ID = uuid.NewString()
	now := time.Now().UTC()
	plan.CreatedAt, plan.UpdatedAt = now, now
	r.plans[plan.ID] = *plan
	return plan.ID, nil
}

func (r *WorkoutPlanRepository) GetByID(_ context.Context, id string) (*domain.WorkoutPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plans[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *WorkoutPlanRepository) ListByUser(_ context.Context, userID string) ([]domain.WorkoutPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.WorkoutPlan{}
	for _, p := range r.plans {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *WorkoutPlanRepository) Update(_ context.Context, plan *domain.WorkoutPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.plans[plan.ID]
	if !ok || current.UserID != plan.UserID {
		return repository.ErrNotFound
	}
	plan.CreatedAt = current.CreatedAt
	plan.UpdatedAt = time.Now().UTC()
	r.plans[plan.ID] = *plan
	return nil
}

func (r *WorkoutPlanRepository) Delete(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.plans[id]
	if !ok || current.UserID != userID {
		return repository.ErrNotFound
	}
	delete(r.plans, id)
	return nil
}

var (
	_ repository.UserRepository         = (*UserRepository)(nil)
	_ repository.AvailabilityRepository = (*AvailabilityRepository)(nil)
	_ repository.BookingRepository      = (*BookingRepository)(nil)
	_ repository.WorkoutPlanRepository  = (*WorkoutPlanRepository)(nil)
)
