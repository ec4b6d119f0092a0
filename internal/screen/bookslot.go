package screen

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"wellvantage/fitness-app/internal/domain"
	"wellvantage/fitness-app/internal/notice"
	"wellvantage/fitness-app/internal/slots"
	"wellvantage/fitness-app/internal/store"
)

// BookSlot drives the slot booking screen: a month calendar where only days
// with availability are selectable, and the board of slots for the selected day.
type BookSlot struct {
	availability *store.AvailabilityStore
	bookings     *store.BookingStore
	notify       Notifier

	mu       sync.Mutex
	selected string
	month    time.Time
}

// NewBookSlot starts on today's date and month.
func NewBookSlot(availability *store.AvailabilityStore, bookings *store.BookingStore, notify Notifier, today time.Time) *BookSlot {
	return &BookSlot{
		availability: availability,
		bookings:     bookings,
		notify:       notify,
		selected:     domain.FormatDate(today),
		month:        firstOfMonth(today),
	}
}

// Load fetches availability and bookings in parallel. Failures are shown as
// one error notice per store.
func (b *BookSlot) Load(ctx context.Context) error {
	var wg sync.WaitGroup
	var availErr, bookErr error
	wg.Add(2)
	go func() {
		defer wg.Done()
		availErr = b.availability.Fetch(ctx)
	}()
	go func() {
		defer wg.Done()
		bookErr = b.bookings.Fetch(ctx)
	}()
	wg.Wait()

	for _, err := range []error{availErr, bookErr} {
		if err != nil {
			b.notify.Show(notice.FromError(err, MsgLoadFailed))
		}
	}
	b.availability.ClearError()
	b.bookings.ClearError()
	return errors.Join(availErr, bookErr)
}

// Refresh reloads both stores.
func (b *BookSlot) Refresh(ctx context.Context) error {
	return b.Load(ctx)
}

func (b *BookSlot) SelectedDate() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selected
}

// SelectDate moves the selection to date (YYYY-MM-DD) if that day has
// availability. It reports whether the selection changed.
func (b *BookSlot) SelectDate(date string) bool {
	if !slots.HasAvailability(b.availability.State().Items, date) {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.selected = date
	if t, err := domain.ParseDate(date, time.UTC); err == nil {
		b.month = firstOfMonth(t)
	}
	return true
}

// SelectDay selects a day of the displayed month.
func (b *BookSlot) SelectDay(day int) bool {
	m := b.Month()
	return b.SelectDate(fmt.Sprintf("%04d-%02d-%02d", m.Year(), int(m.Month()), day))
}

// Month is the first day of the displayed month.
func (b *BookSlot) Month() time.Time {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.month
}

func (b *BookSlot) PrevMonth() {
	b.mu.Lock()
	b.month = b.month.AddDate(0, -1, 0)
	b.mu.Unlock()
}

func (b *BookSlot) NextMonth() {
	b.mu.Lock()
	b.month = b.month.AddDate(0, 1, 0)
	b.mu.Unlock()
}

// Calendar returns the selectable days of the displayed month.
func (b *BookSlot) Calendar() map[int]bool {
	m := b.Month()
	return slots.MonthDays(b.availability.State().Items, m.Year(), m.Month())
}

// Slots is the board for the selected date.
func (b *BookSlot) Slots() []slots.Slot {
	return slots.Match(b.SelectedDate(), b.availability.State().Items, b.bookings.State().Items)
}

// EmptyMessage is shown instead of the board when the selected date has no slots.
func (b *BookSlot) EmptyMessage() string {
	if len(b.Slots()) == 0 {
		return MsgNoSlots
	}
	return ""
}

// OpenSessions is the "N open session(s)" label of the header.
func (b *BookSlot) OpenSessions() string {
	n := b.bookings.OpenSessions()
	if n == 1 {
		return "1 open session"
	}
	return fmt.Sprintf("%d open sessions", n)
}

// Book books the whole window of the given availability on the selected date.
func (b *BookSlot) Book(ctx context.Context, availabilityID string) error {
	a, ok := b.availability.Find(availabilityID)
	if !ok {
		b.notify.Show(notice.Warning{Msg: MsgAvailabilityAbsent})
		return store.ErrNotLoaded
	}
	_, err := b.bookings.Create(ctx, domain.BookingInput{
		AvailabilityID: a.ID,
		BookingDate:    b.SelectedDate(),
		StartTime:      a.StartTime,
		EndTime:        a.EndTime,
		Status:         domain.BookingOpen,
	})
	report(b.notify, err, MsgSlotBooked, MsgBookFailed)
	b.bookings.ClearError()
	return err
}

// Toggle flips a booking between open and booked.
func (b *BookSlot) Toggle(ctx context.Context, bookingID string) error {
	updated, err := b.bookings.Toggle(ctx, bookingID)
	msg := ""
	if err == nil {
		msg = "Slot marked as " + string(updated.Status)
	}
	report(b.notify, err, msg, MsgStatusFailed)
	b.bookings.ClearError()
	return err
}

// Cancel deletes a booking. Confirmation is the caller's job.
func (b *BookSlot) Cancel(ctx context.Context, bookingID string) error {
	err := b.bookings.Delete(ctx, bookingID)
	report(b.notify, err, MsgBookingDeleted, MsgDeleteFailed)
	b.bookings.ClearError()
	return err
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
