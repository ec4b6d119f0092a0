package store

import (
	"context"

	"github.com/rs/zerolog"

	"wellvantage/fitness-app/internal/domain"
	"wellvantage/fitness-app/internal/validate"
)

// AvailabilityAPI is the backend the availability store talks to.
type AvailabilityAPI interface {
	ListAvailability(ctx context.Context) ([]domain.Availability, error)
	ListAvailabilityRange(ctx context.Context, startDate, endDate string) ([]domain.Availability, error)
	CreateAvailability(ctx context.Context, in domain.AvailabilityInput) (*domain.Availability, error)
	UpdateAvailability(ctx context.Context, id string, patch domain.AvailabilityPatch) (*domain.Availability, error)
	DeleteAvailability(ctx context.Context, id string) error
}

// AvailabilityStore caches the trainer's availability windows.
type AvailabilityStore struct {
	*list[domain.Availability]
	api  AvailabilityAPI
	opts options
}

func NewAvailabilityStore(api AvailabilityAPI, logger zerolog.Logger, opts ...Option) *AvailabilityStore {
	return &AvailabilityStore{
		list: newList(func(a domain.Availability) string { return a.ID },
			logger.With().Str("component", "availability-store").Logger()),
		api:  api,
		opts: buildOptions(opts),
	}
}

// Fetch replaces the list with every window of the user.
func (s *AvailabilityStore) Fetch(ctx context.Context) error {
	if err := s.begin(""); err != nil {
		return err
	}
	items, err := s.api.ListAvailability(ctx)
	s.finish("", err, "Failed to fetch availabilities", func() { s.replaceAll(items) })
	return err
}

// FetchRange replaces the list with the windows between two dates, inclusive.
func (s *AvailabilityStore) FetchRange(ctx context.Context, startDate, endDate string) error {
	if err := s.begin(""); err != nil {
		return err
	}
	items, err := s.api.ListAvailabilityRange(ctx, startDate, endDate)
	s.finish("", err, "Failed to fetch availabilities", func() { s.replaceAll(items) })
	return err
}

// Create validates the form and, when it passes, creates the window.
// A validation failure is returned as validate.FieldErrors and nothing is sent.
func (s *AvailabilityStore) Create(ctx context.Context, in domain.AvailabilityInput) (*domain.Availability, error) {
	if err := validate.Availability(in, validate.Options{RejectPastDates: true, Today: s.opts.now()}).Err(); err != nil {
		return nil, err
	}
	if err := s.begin(""); err != nil {
		return nil, err
	}
	created, err := s.api.CreateAvailability(ctx, in)
	s.finish("", err, "Failed to create availability", func() { s.upsert(*created) })
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update applies patch to the window with the given id. When the window is
// loaded, the merged form is validated first; moving it to a past date is
// rejected, keeping a past date is not. Otherwise only the fields the patch
// sets are checked.
func (s *AvailabilityStore) Update(ctx context.Context, id string, patch domain.AvailabilityPatch) (*domain.Availability, error) {
	var errs validate.FieldErrors
	if current, ok := s.Find(id); ok {
		moved := patch.Date != nil && *patch.Date != current.Date
		opts := validate.Options{RejectPastDates: moved, Today: s.opts.now()}
		errs = validate.Availability(patch.Apply(current.Input()), opts)
	} else {
		errs = validate.AvailabilityPatch(patch, validate.Options{RejectPastDates: true, Today: s.opts.now()})
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}
	if err := s.begin(id); err != nil {
		return nil, err
	}
	updated, err := s.api.UpdateAvailability(ctx, id, patch)
	s.finish(id, err, "Failed to update availability", func() { s.upsert(*updated) })
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the window with the given id.
func (s *AvailabilityStore) Delete(ctx context.Context, id string) error {
	if err := s.begin(id); err != nil {
		return err
	}
	err := s.api.DeleteAvailability(ctx, id)
	s.finish(id, err, "Failed to delete availability", func() { s.remove(id) })
	return err
}
