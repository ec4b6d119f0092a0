package screen

import (
	"context"
	"errors"
	"sync"
	"time"

	"wellvantage/fitness-app/internal/domain"
	"wellvantage/fitness-app/internal/store"
	"wellvantage/fitness-app/internal/validate"
)

// Default window offered by a new form.
const (
	DefaultStartTime = "09:00"
	DefaultEndTime   = "17:00"
)

// AvailabilityForm drives the set/edit availability form.
type AvailabilityForm struct {
	store  *store.AvailabilityStore
	notify Notifier
	now    func() time.Time

	mu        sync.Mutex
	editingID string
	values    domain.AvailabilityInput
	errs      validate.FieldErrors
}

func NewAvailabilityForm(s *store.AvailabilityStore, notify Notifier, now func() time.Time) *AvailabilityForm {
	f := &AvailabilityForm{store: s, notify: notify, now: now}
	f.Reset()
	return f
}

// Reset clears the form for a new window.
func (f *AvailabilityForm) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.editingID = ""
	f.errs = nil
	f.values = domain.AvailabilityInput{
		Date:      domain.FormatDate(f.now()),
		StartTime: DefaultStartTime,
		EndTime:   DefaultEndTime,
	}
}

// Edit fills the form from an existing window.
func (f *AvailabilityForm) Edit(a domain.Availability) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.editingID = a.ID
	f.errs = nil
	f.values = a.Input()
}

// Set replaces the form values.
func (f *AvailabilityForm) Set(in domain.AvailabilityInput) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = in
}

func (f *AvailabilityForm) Values() domain.AvailabilityInput {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Editing returns the id of the window being edited, or "".
func (f *AvailabilityForm) Editing() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.editingID
}

// Errors returns the field errors of the last submit.
func (f *AvailabilityForm) Errors() validate.FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs
}

// Submit creates or updates the window. Field errors are kept on the form
// and no notice is shown for them; the form is reset after a save.
func (f *AvailabilityForm) Submit(ctx context.Context) (*domain.Availability, error) {
	f.mu.Lock()
	id, in := f.editingID, f.values
	f.mu.Unlock()

	var (
		saved *domain.Availability
		err   error
		msg   = MsgAvailabilityAdded
	)
	if id == "" {
		saved, err = f.store.Create(ctx, in)
	} else {
		msg = MsgAvailabilitySaved
		saved, err = f.store.Update(ctx, id, patchFrom(in))
	}

	var fe validate.FieldErrors
	if errors.As(err, &fe) {
		f.mu.Lock()
		f.errs = fe
		f.mu.Unlock()
		return nil, err
	}
	report(f.notify, err, msg, MsgSaveFailed)
	f.store.ClearError()
	if err != nil {
		return nil, err
	}
	f.Reset()
	return saved, nil
}

// Delete removes a window.
func (f *AvailabilityForm) Delete(ctx context.Context, id string) error {
	err := f.store.Delete(ctx, id)
	report(f.notify, err, MsgAvailabilityGone, MsgRemoveFailed)
	f.store.ClearError()
	return err
}

func patchFrom(in domain.AvailabilityInput) domain.AvailabilityPatch {
	return domain.AvailabilityPatch{
		Date:        &in.Date,
		StartTime:   &in.StartTime,
		EndTime:     &in.EndTime,
		IsRecurring: &in.IsRecurring,
		SessionName: &in.SessionName,
	}
}
