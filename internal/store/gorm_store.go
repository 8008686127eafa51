package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"clinic-appointment-server/internal/models"
	"clinic-appointment-server/internal/scheduling"
)

// GormStore implements the scheduling store interfaces on top of GORM/MySQL.
type GormStore struct {
	DB *gorm.DB
}

// NewGormStore creates a new GormStore.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) CreateShift(ctx context.Context, shift *models.Shift) error {
	return s.DB.WithContext(ctx).Create(shift).Error
}

func (s *GormStore) GetShift(ctx context.Context, id string) (*models.Shift, error) {
	var shift models.Shift
	if err := s.DB.WithContext(ctx).First(&shift, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, scheduling.ErrShiftNotFound
		}
		return nil, err
	}
	return &shift, nil
}

func (s *GormStore) ListDoctorShifts(ctx context.Context, doctorID string) ([]models.Shift, error) {
	var shifts []models.Shift
	err := s.DB.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("date asc, start_time asc").
		Find(&shifts).Error
	return shifts, err
}

func (s *GormStore) ListAvailableShifts(ctx context.Context, department, date string) ([]models.ShiftWithDoctor, error) {
	var shifts []models.ShiftWithDoctor
	err := s.DB.WithContext(ctx).
		Table("shifts").
		Select("shifts.*, users.first_name AS doctor_first_name, users.last_name AS doctor_last_name, users.department AS doctor_department, users.gender AS doctor_gender").
		Joins("JOIN users ON users.id = shifts.doctor_id").
		Where("users.role = ? AND users.department = ? AND shifts.date = ? AND shifts.is_available = ?",
			models.RoleDoctor, department, date, true).
		Order("shifts.start_time asc").
		Scan(&shifts).Error
	return shifts, err
}

func (s *GormStore) SaveShift(ctx context.Context, shift *models.Shift) error {
	return s.DB.WithContext(ctx).Save(shift).Error
}

func (s *GormStore) DeleteShift(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Delete(&models.Shift{}, "id = ?", id).Error
}

// ReserveShift flips the shift to unavailable with a conditional single-row
// update. Zero affected rows means another booking already holds the shift
// (or it no longer exists); that check is what makes concurrent bookings
// single-winner.
func (s *GormStore) ReserveShift(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).
		Model(&models.Shift{}).
		Where("id = ? AND is_available = ?", id, true).
		Update("is_available", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return s.shiftMissingOrUnavailable(ctx, id)
	}
	return nil
}

// ReleaseShift makes the shift bookable again.
func (s *GormStore) ReleaseShift(ctx context.Context, id string) error {
	res := s.DB.WithContext(ctx).
		Model(&models.Shift{}).
		Where("id = ?", id).
		Update("is_available", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// MySQL reports zero affected rows for a no-op update too; only a
		// genuinely missing shift is an error.
		var count int64
		if err := s.DB.WithContext(ctx).Model(&models.Shift{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return scheduling.ErrShiftNotFound
		}
	}
	return nil
}

func (s *GormStore) shiftMissingOrUnavailable(ctx context.Context, id string) error {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Shift{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return scheduling.ErrShiftNotFound
	}
	return scheduling.ErrShiftUnavailable
}

func (s *GormStore) CreateAppointment(ctx context.Context, appt *models.Appointment) error {
	return s.DB.WithContext(ctx).Create(appt).Error
}

func (s *GormStore) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	if err := s.DB.WithContext(ctx).First(&appt, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, scheduling.ErrAppointmentNotFound
		}
		return nil, err
	}
	return &appt, nil
}

func (s *GormStore) SaveAppointment(ctx context.Context, appt *models.Appointment) error {
	return s.DB.WithContext(ctx).Save(appt).Error
}

func (s *GormStore) DeleteAppointment(ctx context.Context, id string) error {
	return s.DB.WithContext(ctx).Delete(&models.Appointment{}, "id = ?", id).Error
}

func (s *GormStore) ListPatientAppointments(ctx context.Context, patientID string) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.DB.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("appointment_date asc, appointment_time asc").
		Find(&appts).Error
	return appts, err
}

func (s *GormStore) ListDoctorAppointments(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	var appts []models.Appointment
	err := s.DB.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("appointment_date asc, appointment_time asc").
		Find(&appts).Error
	return appts, err
}

func (s *GormStore) GetDoctor(ctx context.Context, id string) (*models.User, error) {
	var doctor models.User
	if err := s.DB.WithContext(ctx).First(&doctor, "id = ? AND role = ?", id, models.RoleDoctor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, scheduling.ErrDoctorNotFound
		}
		return nil, err
	}
	return &doctor, nil
}

func (s *GormStore) ListDepartments(ctx context.Context) ([]string, error) {
	var departments []string
	err := s.DB.WithContext(ctx).
		Model(&models.User{}).
		Distinct("users.department").
		Joins("JOIN shifts ON shifts.doctor_id = users.id").
		Where("users.role = ? AND users.department <> ''", models.RoleDoctor).
		Pluck("users.department", &departments).Error
	return departments, err
}
