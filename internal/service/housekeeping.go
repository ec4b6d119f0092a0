package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Housekeeper periodically deletes OPEN bookings whose date is more than
// retention days in the past. Booked sessions are kept as history.
type Housekeeper struct {
	bookings  BookingService
	retention time.Duration
	now       func() time.Time
	logger    zerolog.Logger
	cron      *cron.Cron
}

func NewHousekeeper(bookings BookingService, retentionDays int, logger zerolog.Logger) *Housekeeper {
	if retentionDays < 0 {
		retentionDays = 0
	}
	return &Housekeeper{
		bookings:  bookings,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		now:       time.Now,
		logger:    logger.With().Str("component", "housekeeping").Logger(),
	}
}

// RunOnce performs a single purge.
func (h *Housekeeper) RunOnce(ctx context.Context) (int64, error) {
	cutoff := h.now().UTC().Add(-h.retention)
	n, err := h.bookings.PurgeOpenBefore(ctx, cutoff)
	if err != nil {
		h.logger.Error().Err(err).Msg("housekeeping failed")
		return 0, err
	}
	h.logger.Info().Int64("deleted", n).Time("cutoff", cutoff).Msg("purged stale open bookings")
	return n, nil
}

// Start schedules RunOnce with a cron spec ("@daily", "0 3 * * *").
func (h *Housekeeper) Start(schedule string) error {
	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		_, _ = h.RunOnce(ctx)
	}); err != nil {
		return err
	}
	h.cron = c
	c.Start()
	h.logger.Info().Str("schedule", schedule).Msg("housekeeping scheduled")
	return nil
}

// Stop halts the schedule and waits for a running purge to finish.
func (h *Housekeeper) Stop() {
	if h.cron == nil {
		return
	}
	<-h.cron.Stop().Done()
}
