package domain

import "time"

// Availability is a trainer-declared open window on a specific calendar day.
type Availability struct {
	ID          string    `bson:"_id" json:"id"`
	UserID      string    `bson:"userId" json:"userId"`       // Trainer who owns the window
	Date        string    `bson:"date" json:"date"`           // YYYY-MM-DD
	StartTime   string    `bson:"startTime" json:"startTime"` // HH:MM
	EndTime     string    `bson:"endTime" json:"endTime"`     // HH:MM
	SessionName string    `bson:"sessionName" json:"sessionName"`
	IsRecurring bool      `bson:"isRecurring" json:"isRecurring"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// AvailabilityInput is the body of POST /availability.
// SessionName is checked by the service, which also rejects blank names.
type AvailabilityInput struct {
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"startTime" binding:"required"`
	EndTime     string `json:"endTime" binding:"required"`
	IsRecurring bool   `json:"isRecurring"`
	SessionName string `json:"sessionName"`
}

// AvailabilityPatch is the body of PATCH /availability/{id}. Nil fields are left unchanged.
type AvailabilityPatch struct {
	Date        *string `json:"date,omitempty"`
	StartTime   *string `json:"startTime,omitempty"`
	EndTime     *string `json:"endTime,omitempty"`
	IsRecurring *bool   `json:"isRecurring,omitempty"`
	SessionName *string `json:"sessionName,omitempty"`
}

// Input returns the editable fields of a.
func (a Availability) Input() AvailabilityInput {
	return AvailabilityInput{
		Date:        a.Date,
		StartTime:   a.StartTime,
		EndTime:     a.EndTime,
		IsRecurring: a.IsRecurring,
		SessionName: a.SessionName,
	}
}

// Apply returns in with every non-nil field of p applied.
func (p AvailabilityPatch) Apply(in AvailabilityInput) AvailabilityInput {
	if p.Date != nil {
		in.Date = *p.Date
	}
	if p.StartTime != nil {
		in.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		in.EndTime = *p.EndTime
	}
	if p.IsRecurring != nil {
		in.IsRecurring = *p.IsRecurring
	}
	if p.SessionName != nil {
		in.SessionName = *p.SessionName
	}
	return in
}

// Contains reports whether the clock range [start, end] lies within the window.
// Malformed clock times are never contained.
func (a Availability) Contains(start, end string) bool {
	times := make([]time.Time, 0, 4)
	for _, s := range []string{a.StartTime, a.EndTime, start, end} {
		t, err := ParseClock(s)
		if err != nil {
			return false
		}
		times = append(times, t)
	}
	winStart, winEnd, from, to := times[0], times[1], times[2], times[3]
	return !from.Before(winStart) && !to.After(winEnd) && from.Before(to)
}
