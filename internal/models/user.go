package models

import (
	"golang.org/x/crypto/bcrypt"
)

// Role enum
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// Gender enum used for both patients and doctors
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

// User represents a user in the system. Doctors additionally carry the
// department patients filter available shifts by.
type User struct {
	BaseModel
	Email      string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Password   string `gorm:"size:255;not null" json:"-"` // Never send password in JSON
	FirstName  string `gorm:"size:100" json:"firstName"`
	LastName   string `gorm:"size:100" json:"lastName"`
	Role       Role   `gorm:"size:20;default:'patient'" json:"role"`
	Gender     Gender `gorm:"size:10" json:"gender"`
	Phone      string `gorm:"size:20" json:"phone,omitempty"`
	NIC        string `gorm:"size:20" json:"nic,omitempty"`
	DOB        string `gorm:"size:10" json:"dob,omitempty"`
	Department string `gorm:"size:100;index" json:"department,omitempty"` // doctors only

	// Relations (not always preloaded)
	Shifts              []Shift       `gorm:"foreignKey:DoctorID" json:"-"`
	DoctorAppointments  []Appointment `gorm:"foreignKey:DoctorID" json:"-"`
	PatientAppointments []Appointment `gorm:"foreignKey:PatientID" json:"-"`
}

// UserSanitized represents the user data that is safe to send in API responses.
type UserSanitized struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Role       Role   `json:"role"`
	Gender     Gender `json:"gender,omitempty"`
	Phone      string `json:"phone,omitempty"`
	NIC        string `json:"nic,omitempty"`
	DOB        string `json:"dob,omitempty"`
	Department string `json:"department,omitempty"`
}

// SetPassword hashes a password and sets it on the user
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the user's hashed password
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// Sanitize creates a UserSanitized struct from a User model, excluding sensitive data.
func (u *User) Sanitize() UserSanitized {
	return UserSanitized{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Role:       u.Role,
		Gender:     u.Gender,
		Phone:      u.Phone,
		NIC:        u.NIC,
		DOB:        u.DOB,
		Department: u.Department,
	}
}
