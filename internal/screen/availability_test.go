package screen

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellvantage/fitness-app/internal/domain"
	"wellvantage/fitness-app/internal/notice"
	"wellvantage/fitness-app/internal/store"
	"wellvantage/fitness-app/internal/validate"
)

func newForm(backend *fakeBackend) (*AvailabilityForm, *store.AvailabilityStore, *recorder) {
	now := func() time.Time { return march10 }
	s := store.NewAvailabilityStore(backend, zerolog.Nop(), store.WithClock(now))
	rec := &recorder{}
	return NewAvailabilityForm(s, rec, now), s, rec
}

func TestNewFormDefaults(t *testing.T) {
	f, _, _ := newForm(&fakeBackend{})
	assert.Equal(t, domain.AvailabilityInput{Date: "2025-03-10", StartTime: "09:00", EndTime: "17:00"}, f.Values())
	assert.Empty(t, f.Editing())
}

func TestSubmitWithoutSessionName(t *testing.T) {
	backend := &fakeBackend{}
	f, _, rec := newForm(backend)

	_, err := f.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, validate.MsgSessionNameRequired, f.Errors()["sessionName"])
	assert.Zero(t, backend.calls)
	assert.Zero(t, rec.count())
}

func TestSubmitCreatesThenResets(t *testing.T) {
	backend := &fakeBackend{}
	f, s, rec := newForm(backend)

	in := f.Values()
	in.SessionName = "Morning PT"
	f.Set(in)
	saved, err := f.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Morning PT", saved.SessionName)
	assert.Equal(t, notice.Success{Msg: MsgAvailabilityAdded}, rec.last())
	assert.Len(t, s.State().Items, 1)
	assert.Empty(t, f.Values().SessionName)
}

func TestEditExistingWindow(t *testing.T) {
	backend := &fakeBackend{availability: []domain.Availability{
		{ID: "a1", Date: "2025-03-01", StartTime: "08:00", EndTime: "09:00", SessionName: "PT"},
	}}
	f, s, rec := newForm(backend)
	require.NoError(t, s.Fetch(context.Background()))

	a, _ := s.Find("a1")
	f.Edit(a)
	in := f.Values()
	in.SessionName = "Boxing"
	f.Set(in)

	_, err := f.Submit(context.Background())
	require.NoError(t, err, "keeping a past date is allowed when editing")
	assert.Equal(t, notice.Success{Msg: MsgAvailabilitySaved}, rec.last())
	updated, _ := s.Find("a1")
	assert.Equal(t, "Boxing", updated.SessionName)
}

func TestEditEndBeforeStart(t *testing.T) {
	backend := &fakeBackend{availability: []domain.Availability{
		{ID: "a1", Date: "2025-03-12", StartTime: "08:00", EndTime: "09:00", SessionName: "PT"},
	}}
	f, s, _ := newForm(backend)
	require.NoError(t, s.Fetch(context.Background()))
	a, _ := s.Find("a1")
	f.Edit(a)

	in := f.Values()
	in.EndTime = "08:00"
	f.Set(in)
	_, err := f.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, validate.MsgEndBeforeStart, f.Errors()["endTime"])
	assert.Equal(t, "a1", f.Editing())
}

func TestDeleteWindow(t *testing.T) {
	backend := &fakeBackend{availability: []domain.Availability{{ID: "a1"}, {ID: "a2"}}}
	f, s, rec := newForm(backend)
	require.NoError(t, s.Fetch(context.Background()))

	require.NoError(t, f.Delete(context.Background(), "a1"))
	assert.Equal(t, notice.Success{Msg: MsgAvailabilityGone}, rec.last())
	assert.Equal(t, []domain.Availability{{ID: "a2"}}, s.State().Items)

	backend.fail = errors.New("")
	require.Error(t, f.Delete(context.Background(), "a2"))
	assert.Equal(t, notice.Error{Msg: MsgRemoveFailed}, rec.last())
}
