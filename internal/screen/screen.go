// Package screen holds the render-free controllers behind the booking and
// availability screens. They drive the stores and report outcomes as notices.
package screen

import (
	"errors"

	"wellvantage/fitness-app/internal/notice"
	"wellvantage/fitness-app/internal/store"
	"wellvantage/fitness-app/internal/validate"
)

// Messages shown to the user.
const (
	MsgNoSlots            = "No slots available for this date"
	MsgSlotBooked         = "Slot booked successfully!"
	MsgBookingDeleted     = "Booking deleted successfully"
	MsgAvailabilityAdded  = "Availability created successfully"
	MsgAvailabilitySaved  = "Availability updated successfully"
	MsgAvailabilityGone   = "Availability deleted successfully"
	MsgBookFailed         = "Failed to book slot"
	MsgStatusFailed       = "Failed to update booking status"
	MsgDeleteFailed       = "Failed to delete booking"
	MsgSaveFailed         = "Failed to save availability"
	MsgRemoveFailed       = "Failed to delete availability"
	MsgLoadFailed         = "Failed to load data"
	MsgStillSaving        = "Please wait, the previous change is still being saved"
	MsgAvailabilityAbsent = "That availability is no longer loaded, refresh and try again"
)

// Notifier displays notices. *notice.Center implements it.
type Notifier interface {
	Show(notice.Notice)
}

// report turns the outcome of a store call into a notice.
func report(n Notifier, err error, success, fallback string) {
	var fe validate.FieldErrors
	switch {
	case err == nil:
		n.Show(notice.Success{Msg: success})
	case errors.Is(err, store.ErrMutationInFlight):
		n.Show(notice.Warning{Msg: MsgStillSaving})
	case errors.As(err, &fe):
		n.Show(notice.Warning{Msg: fe.Error()})
	default:
		n.Show(notice.FromError(err, fallback))
	}
}
