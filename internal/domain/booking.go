package domain

import (
	"fmt"
	"time"
)

// BookingStatus tracks whether a booked slot is still an open placeholder or confirmed.
type BookingStatus string

const (
	BookingOpen   BookingStatus = "open"
	BookingBooked BookingStatus = "booked"
)

// Valid reports whether s is one of the known statuses.
func (s BookingStatus) Valid() bool {
	return s == BookingOpen || s == BookingBooked
}

// Toggle returns the opposite status: open becomes booked and booked becomes open.
func (s BookingStatus) Toggle() BookingStatus {
	if s == BookingOpen {
		return BookingBooked
	}
	return BookingOpen
}

// Booking is a client's reservation (or open placeholder) against an Availability slot.
type Booking struct {
	ID             string        `bson:"_id" json:"id"`
	AvailabilityID string        `bson:"availabilityId" json:"availabilityId"`
	UserID         string        `bson:"userId" json:"userId"`
	BookingDate    string        `bson:"bookingDate" json:"bookingDate"` // YYYY-MM-DD
	StartTime      string        `bson:"startTime" json:"startTime"`     // HH:MM
	EndTime        string        `bson:"endTime" json:"endTime"`         // HH:MM
	Status         BookingStatus `bson:"status" json:"status"`
	CreatedAt      time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// SlotKey identifies the slot a booking occupies.
func (b Booking) SlotKey() string {
	return SlotKey(b.AvailabilityID, b.StartTime, b.BookingDate)
}

// SlotKey builds the (availabilityId, startTime, bookingDate) identity used to
// match bookings against availability windows.
func SlotKey(availabilityID, startTime, date string) string {
	return fmt.Sprintf("%s|%s|%s", availabilityID, startTime, date)
}

// BookingInput is the body of POST /booking.
type BookingInput struct {
	AvailabilityID string        `json:"availabilityId" binding:"required"`
	BookingDate    string        `json:"bookingDate" binding:"required"`
	StartTime      string        `json:"startTime" binding:"required"`
	EndTime        string        `json:"endTime" binding:"required"`
	Status         BookingStatus `json:"status,omitempty" binding:"omitempty,oneof=open booked"`
}

// StatusUpdate is the body of PATCH /booking/{id}/status.
type StatusUpdate struct {
	Status BookingStatus `json:"status" binding:"required,oneof=open booked"`
}
