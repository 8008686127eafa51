package store

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"clinic-appointment-server/internal/models"
	"clinic-appointment-server/internal/scheduling"
)

// MemoryStore is a mutex-guarded in-memory implementation of the scheduling
// store interfaces. It mirrors the GormStore's semantics exactly, including
// the conditional reserve, and backs the test suites.
type MemoryStore struct {
	mu           sync.Mutex
	shifts       map[string]models.Shift
	appointments map[string]models.Appointment
	users        map[string]models.User
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		shifts:       make(map[string]models.Shift),
		appointments: make(map[string]models.Appointment),
		users:        make(map[string]models.User),
	}
}

// AddUser seeds a user record.
func (s *MemoryStore) AddUser(user models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	s.users[user.ID] = user
	return user
}

func (s *MemoryStore) CreateShift(ctx context.Context, shift *models.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if shift.ID == "" {
		shift.ID = uuid.New().String()
	}
	s.shifts[shift.ID] = *shift
	return nil
}

func (s *MemoryStore) GetShift(ctx context.Context, id string) (*models.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	shift, ok := s.shifts[id]
	if !ok {
		return nil, scheduling.ErrShiftNotFound
	}
	return &shift, nil
}

func (s *MemoryStore) ListDoctorShifts(ctx context.Context, doctorID string) ([]models.Shift, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var shifts []models.Shift
	for _, shift := range s.shifts {
		if shift.DoctorID == doctorID {
			shifts = append(shifts, shift)
		}
	}
	sortShifts(shifts)
	return shifts, nil
}

func (s *MemoryStore) ListAvailableShifts(ctx context.Context, department, date string) ([]models.ShiftWithDoctor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var shifts []models.ShiftWithDoctor
	for _, shift := range s.shifts {
		if !shift.IsAvailable || shift.Date != date {
			continue
		}
		doctor, ok := s.users[shift.DoctorID]
		if !ok || doctor.Role != models.RoleDoctor || doctor.Department != department {
			continue
		}
		shifts = append(shifts, models.ShiftWithDoctor{
			Shift:            shift,
			DoctorFirstName:  doctor.FirstName,
			DoctorLastName:   doctor.LastName,
			DoctorDepartment: doctor.Department,
			DoctorGender:     doctor.Gender,
		})
	}
	sort.Slice(shifts, func(i, j int) bool { return shifts[i].StartTime < shifts[j].StartTime })
	return shifts, nil
}

func (s *MemoryStore) SaveShift(ctx context.Context, shift *models.Shift) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.shifts[shift.ID]; !ok {
		return scheduling.ErrShiftNotFound
	}
	s.shifts[shift.ID] = *shift
	return nil
}

func (s *MemoryStore) DeleteShift(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.shifts, id)
	return nil
}

// ReserveShift performs the compare-and-swap: it succeeds for exactly one
// caller while the shift is available.
func (s *MemoryStore) ReserveShift(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	shift, ok := s.shifts[id]
	if !ok {
		return scheduling.ErrShiftNotFound
	}
	if !shift.IsAvailable {
		return scheduling.ErrShiftUnavailable
	}
	shift.IsAvailable = false
	s.shifts[id] = shift
	return nil
}

func (s *MemoryStore) ReleaseShift(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	shift, ok := s.shifts[id]
	if !ok {
		return scheduling.ErrShiftNotFound
	}
	shift.IsAvailable = true
	s.shifts[id] = shift
	return nil
}

func (s *MemoryStore) CreateAppointment(ctx context.Context, appt *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	s.appointments[appt.ID] = *appt
	return nil
}

func (s *MemoryStore) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	appt, ok := s.appointments[id]
	if !ok {
		return nil, scheduling.ErrAppointmentNotFound
	}
	return &appt, nil
}

func (s *MemoryStore) SaveAppointment(ctx context.Context, appt *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.appointments[appt.ID]; !ok {
		return scheduling.ErrAppointmentNotFound
	}
	s.appointments[appt.ID] = *appt
	return nil
}

func (s *MemoryStore) DeleteAppointment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.appointments, id)
	return nil
}

func (s *MemoryStore) ListPatientAppointments(ctx context.Context, patientID string) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var appts []models.Appointment
	for _, appt := range s.appointments {
		if appt.PatientID == patientID {
			appts = append(appts, appt)
		}
	}
	sortAppointments(appts)
	return appts, nil
}

func (s *MemoryStore) ListDoctorAppointments(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var appts []models.Appointment
	for _, appt := range s.appointments {
		if appt.DoctorID == doctorID {
			appts = append(appts, appt)
		}
	}
	sortAppointments(appts)
	return appts, nil
}

func (s *MemoryStore) GetDoctor(ctx context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doctor, ok := s.users[id]
	if !ok || doctor.Role != models.RoleDoctor {
		return nil, scheduling.ErrDoctorNotFound
	}
	return &doctor, nil
}

func (s *MemoryStore) ListDepartments(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]bool)
	var departments []string
	for _, shift := range s.shifts {
		doctor, ok := s.users[shift.DoctorID]
		if !ok || doctor.Role != models.RoleDoctor || doctor.Department == "" {
			continue
		}
		if !seen[doctor.Department] {
			seen[doctor.Department] = true
			departments = append(departments, doctor.Department)
		}
	}
	sort.Strings(departments)
	return departments, nil
}

func sortShifts(shifts []models.Shift) {
	sort.Slice(shifts, func(i, j int) bool {
		if shifts[i].Date != shifts[j].Date {
			return shifts[i].Date < shifts[j].Date
		}
		return shifts[i].StartTime < shifts[j].StartTime
	})
}

func sortAppointments(appts []models.Appointment) {
	sort.Slice(appts, func(i, j int) bool {
		if appts[i].AppointmentDate != appts[j].AppointmentDate {
			return appts[i].AppointmentDate < appts[j].AppointmentDate
		}
		return appts[i].AppointmentTime < appts[j].AppointmentTime
	})
}
