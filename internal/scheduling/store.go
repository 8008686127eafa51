package scheduling

import (
	"context"

	"clinic-appointment-server/internal/models"
)

// ShiftStore defines the persistence operations for shifts.
//
// ReserveShift and ReleaseShift are the only ways availability is flipped.
// ReserveShift must be a conditional single-row update ("set unavailable
// where id = ? and available"): when two callers race, exactly one succeeds
// and the other gets ErrShiftUnavailable.
type ShiftStore interface {
	CreateShift(ctx context.Context, shift *models.Shift) error
	GetShift(ctx context.Context, id string) (*models.Shift, error)
	ListDoctorShifts(ctx context.Context, doctorID string) ([]models.Shift, error)
	ListAvailableShifts(ctx context.Context, department, date string) ([]models.ShiftWithDoctor, error)
	SaveShift(ctx context.Context, shift *models.Shift) error
	DeleteShift(ctx context.Context, id string) error
	ReserveShift(ctx context.Context, id string) error
	ReleaseShift(ctx context.Context, id string) error
}

// AppointmentStore defines the persistence operations for appointments.
type AppointmentStore interface {
	CreateAppointment(ctx context.Context, appt *models.Appointment) error
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	SaveAppointment(ctx context.Context, appt *models.Appointment) error
	DeleteAppointment(ctx context.Context, id string) error
	ListPatientAppointments(ctx context.Context, patientID string) ([]models.Appointment, error)
	ListDoctorAppointments(ctx context.Context, doctorID string) ([]models.Appointment, error)
}

// DoctorDirectory resolves doctor records for snapshots and department
// queries.
type DoctorDirectory interface {
	GetDoctor(ctx context.Context, id string) (*models.User, error)
	// ListDepartments returns the distinct departments of doctors owning at
	// least one shift.
	ListDepartments(ctx context.Context) ([]string, error)
}
