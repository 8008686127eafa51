package scheduling

import "errors"

// Domain errors returned by the Service. Handlers translate these into the
// HTTP error taxonomy; nothing below ever reaches a client unmapped.
var (
	ErrShiftNotFound       = errors.New("shift not found")
	ErrShiftUnavailable    = errors.New("shift is no longer available")
	ErrShiftBooked         = errors.New("shift is currently booked")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrNotShiftOwner       = errors.New("not authorized to manage this shift")
	ErrNotAppointmentOwner = errors.New("not authorized to manage this appointment")
	ErrAlreadyCancelled    = errors.New("appointment is already cancelled")
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrInvalidDate         = errors.New("date must be in YYYY-MM-DD format")
	ErrDateInPast          = errors.New("appointment date must not be in the past")
)
