package scheduling

import (
	"context"
	"errors"
	"log"
	"time"

	"clinic-appointment-server/internal/models"
)

// Service implements the shift-to-appointment booking state machine.
//
// All durable state lives in the stores; the service holds nothing between
// calls, so concurrent requests only meet at the stores' conditional
// updates.
type Service struct {
	shifts       ShiftStore
	appointments AppointmentStore
	doctors      DoctorDirectory
}

// NewService creates a new scheduling Service.
func NewService(shifts ShiftStore, appointments AppointmentStore, doctors DoctorDirectory) *Service {
	return &Service{shifts: shifts, appointments: appointments, doctors: doctors}
}

const dateLayout = "2006-01-02"

// today is swapped out by tests that need a fixed clock.
var today = func() time.Time { return time.Now() }

func dateInPast(date string) (bool, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return false, ErrInvalidDate
	}
	now := today()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return d.Before(midnight), nil
}

// BookingRequest carries the patient demographics for a new appointment.
// Field formats are validated at the handler boundary; the service only
// checks what needs store state (shift existence, availability, date).
type BookingRequest struct {
	ShiftID       string
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	NIC           string
	DOB           string
	PatientGender models.Gender
	Address       string
	Reason        string
}

// Book reserves the requested shift for the patient and creates the Booked
// appointment, copying the doctor's display fields onto the record.
//
// The shift flip is a conditional update: when two requests race for the
// same shift, the loser gets ErrShiftUnavailable and its tentative
// appointment is rolled back.
func (s *Service) Book(ctx context.Context, patientID string, req BookingRequest) (*models.Appointment, error) {
	shift, err := s.shifts.GetShift(ctx, req.ShiftID)
	if err != nil {
		return nil, err
	}
	if !shift.IsAvailable {
		return nil, ErrShiftUnavailable
	}

	past, err := dateInPast(shift.Date)
	if err != nil {
		return nil, err
	}
	if past {
		return nil, ErrDateInPast
	}

	doctor, err := s.doctors.GetDoctor(ctx, shift.DoctorID)
	if err != nil {
		return nil, err
	}

	appt := &models.Appointment{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		NIC:             req.NIC,
		DOB:             req.DOB,
		PatientGender:   req.PatientGender,
		Address:         req.Address,
		AppointmentDate: shift.Date,
		AppointmentTime: shift.StartTime,
		Department:      doctor.Department,
		Doctor: models.DoctorSnapshot{
			FirstName: doctor.FirstName,
			LastName:  doctor.LastName,
			Gender:    doctor.Gender,
		},
		Reason:    req.Reason,
		Status:    models.StatusBooked,
		DoctorID:  shift.DoctorID,
		PatientID: patientID,
		ShiftID:   shift.ID,
	}

	if err := s.appointments.CreateAppointment(ctx, appt); err != nil {
		return nil, err
	}

	if err := s.shifts.ReserveShift(ctx, shift.ID); err != nil {
		// Another booking won the race (or the shift vanished). Roll back
		// the tentative appointment so the loser leaves no trace.
		if derr := s.appointments.DeleteAppointment(ctx, appt.ID); derr != nil {
			log.Printf("booking rollback failed for appointment %s: %v", appt.ID, derr)
		}
		return nil, err
	}

	return appt, nil
}

// Cancel sets the patient's appointment to Cancelled and releases its
// shift. A shift that no longer exists is ignored: the cancellation itself
// must still succeed.
func (s *Service) Cancel(ctx context.Context, appointmentID, patientID string) error {
	appt, err := s.appointments.GetAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appt.PatientID != patientID {
		return ErrNotAppointmentOwner
	}
	if appt.Status == models.StatusCancelled {
		return ErrAlreadyCancelled
	}

	appt.Status = models.StatusCancelled
	if err := s.appointments.SaveAppointment(ctx, appt); err != nil {
		return err
	}

	s.releaseShift(ctx, appt.ShiftID)
	return nil
}

// Reschedule re-points the appointment at newShiftID. The new shift is
// reserved first (conditionally, so a concurrent booking cannot share it),
// the old one released after, and the appointment saved last; a failed save
// compensates by restoring the previous availability of both shifts.
func (s *Service) Reschedule(ctx context.Context, appointmentID, patientID, newShiftID string) (*models.Appointment, error) {
	appt, err := s.appointments.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.PatientID != patientID {
		return nil, ErrNotAppointmentOwner
	}

	newShift, err := s.shifts.GetShift(ctx, newShiftID)
	if err != nil {
		return nil, err
	}
	if !newShift.IsAvailable {
		return nil, ErrShiftUnavailable
	}

	// The new shift may belong to a different doctor; re-resolve before
	// touching any availability so a failure here leaves nothing to undo.
	doctor, err := s.doctors.GetDoctor(ctx, newShift.DoctorID)
	if err != nil {
		return nil, err
	}

	if err := s.shifts.ReserveShift(ctx, newShift.ID); err != nil {
		return nil, err
	}

	oldShiftID := appt.ShiftID
	s.releaseShift(ctx, oldShiftID)

	appt.ShiftID = newShift.ID
	appt.AppointmentDate = newShift.Date
	appt.AppointmentTime = newShift.StartTime
	appt.DoctorID = newShift.DoctorID
	appt.Department = doctor.Department
	appt.Doctor = models.DoctorSnapshot{
		FirstName: doctor.FirstName,
		LastName:  doctor.LastName,
		Gender:    doctor.Gender,
	}
	appt.Status = models.StatusRescheduled

	if err := s.appointments.SaveAppointment(ctx, appt); err != nil {
		// Put availability back the way it was: the appointment still
		// points at the old shift.
		if rerr := s.shifts.ReserveShift(ctx, oldShiftID); rerr != nil {
			log.Printf("reschedule compensation failed re-reserving shift %s: %v", oldShiftID, rerr)
		}
		s.releaseShift(ctx, newShift.ID)
		return nil, err
	}

	return appt, nil
}

// UpdateStatus lets the appointment's doctor set the status directly. A
// doctor-side cancellation releases the shift, so a slot cancelled from
// either side becomes bookable again.
func (s *Service) UpdateStatus(ctx context.Context, appointmentID, doctorID string, status models.AppointmentStatus) (*models.Appointment, error) {
	appt, err := s.appointments.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.DoctorID != doctorID {
		return nil, ErrNotAppointmentOwner
	}

	wasCancelled := appt.Status == models.StatusCancelled
	appt.Status = status
	if err := s.appointments.SaveAppointment(ctx, appt); err != nil {
		return nil, err
	}

	if status == models.StatusCancelled && !wasCancelled {
		s.releaseShift(ctx, appt.ShiftID)
	}
	return appt, nil
}

// DeleteAppointment removes the appointment record (doctor-side) after
// freeing its shift.
func (s *Service) DeleteAppointment(ctx context.Context, appointmentID, doctorID string) error {
	appt, err := s.appointments.GetAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}
	if appt.DoctorID != doctorID {
		return ErrNotAppointmentOwner
	}

	s.releaseShift(ctx, appt.ShiftID)
	return s.appointments.DeleteAppointment(ctx, appt.ID)
}

// releaseShift frees a shift best-effort. A missing shift is fine; any
// other store failure is logged but never propagated, because the caller's
// own state change has already been persisted.
func (s *Service) releaseShift(ctx context.Context, shiftID string) {
	if err := s.shifts.ReleaseShift(ctx, shiftID); err != nil && !errors.Is(err, ErrShiftNotFound) {
		log.Printf("failed to release shift %s: %v", shiftID, err)
	}
}

// CreateShift adds a new bookable slot for the doctor.
func (s *Service) CreateShift(ctx context.Context, doctorID, date, startTime, endTime string) (*models.Shift, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}

	shift := &models.Shift{
		DoctorID:    doctorID,
		Date:        date,
		StartTime:   startTime,
		EndTime:     endTime,
		IsAvailable: true,
	}
	if err := s.shifts.CreateShift(ctx, shift); err != nil {
		return nil, err
	}
	return shift, nil
}

// ListDoctorShifts returns all shifts owned by the doctor.
func (s *Service) ListDoctorShifts(ctx context.Context, doctorID string) ([]models.Shift, error) {
	return s.shifts.ListDoctorShifts(ctx, doctorID)
}

// ShiftUpdate carries the updatable shift fields; nil means unchanged.
type ShiftUpdate struct {
	Date      *string
	StartTime *string
	EndTime   *string
}

// UpdateShift edits a shift; only the owning doctor may do so.
func (s *Service) UpdateShift(ctx context.Context, id, doctorID string, upd ShiftUpdate) (*models.Shift, error) {
	shift, err := s.shifts.GetShift(ctx, id)
	if err != nil {
		return nil, err
	}
	if shift.DoctorID != doctorID {
		return nil, ErrNotShiftOwner
	}

	if upd.Date != nil {
		if _, err := time.Parse(dateLayout, *upd.Date); err != nil {
			return nil, ErrInvalidDate
		}
		shift.Date = *upd.Date
	}
	if upd.StartTime != nil {
		shift.StartTime = *upd.StartTime
	}
	if upd.EndTime != nil {
		shift.EndTime = *upd.EndTime
	}

	if err := s.shifts.SaveShift(ctx, shift); err != nil {
		return nil, err
	}
	return shift, nil
}

// DeleteShift removes an unbooked shift. Deleting a booked shift would
// orphan its appointment, so it is rejected with ErrShiftBooked.
func (s *Service) DeleteShift(ctx context.Context, id, doctorID string) error {
	shift, err := s.shifts.GetShift(ctx, id)
	if err != nil {
		return err
	}
	if shift.DoctorID != doctorID {
		return ErrNotShiftOwner
	}
	if !shift.IsAvailable {
		return ErrShiftBooked
	}
	return s.shifts.DeleteShift(ctx, shift.ID)
}

// ListDepartments returns the departments with at least one shift on offer.
func (s *Service) ListDepartments(ctx context.Context) ([]string, error) {
	return s.doctors.ListDepartments(ctx)
}

// ListAvailableShifts returns the open shifts for a department on a date,
// enriched with doctor display fields. Both parameters are required.
func (s *Service) ListAvailableShifts(ctx context.Context, department, date string) ([]models.ShiftWithDoctor, error) {
	if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}
	return s.shifts.ListAvailableShifts(ctx, department, date)
}

// ListPatientAppointments returns the patient's appointments, any status.
func (s *Service) ListPatientAppointments(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return s.appointments.ListPatientAppointments(ctx, patientID)
}

// ListDoctorAppointments returns the appointments on the doctor's shifts.
func (s *Service) ListDoctorAppointments(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return s.appointments.ListDoctorAppointments(ctx, doctorID)
}
