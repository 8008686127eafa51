package models

// AppointmentStatus represents the lifecycle status of an appointment
type AppointmentStatus string

const (
	StatusBooked      AppointmentStatus = "Booked"
	StatusCancelled   AppointmentStatus = "Cancelled"
	StatusRescheduled AppointmentStatus = "Rescheduled"
)

// DoctorSnapshot holds the doctor display fields copied onto the
// appointment when it is booked. Later edits to the doctor's profile do not
// change past appointment records.
type DoctorSnapshot struct {
	FirstName string `gorm:"size:100" json:"firstName"`
	LastName  string `gorm:"size:100" json:"lastName"`
	Gender    Gender `gorm:"size:10" json:"gender"`
}

// Appointment represents a patient's reservation against one shift.
type Appointment struct {
	BaseModel
	FirstName       string            `gorm:"size:100;not null" json:"firstName"`
	LastName        string            `gorm:"size:100;not null" json:"lastName"`
	Email           string            `gorm:"size:255;not null" json:"email"`
	Phone           string            `gorm:"size:10;not null" json:"phone"`
	NIC             string            `gorm:"size:13;not null" json:"nic"`
	DOB             string            `gorm:"size:10;not null" json:"dob"`
	PatientGender   Gender            `gorm:"size:10;not null" json:"patientGender"`
	Address         string            `gorm:"size:255;not null" json:"address"`
	AppointmentDate string            `gorm:"size:10;not null" json:"appointment_date"`
	AppointmentTime string            `gorm:"size:5;not null" json:"appointment_time"`
	Department      string            `gorm:"size:100;not null" json:"department"`
	Doctor          DoctorSnapshot    `gorm:"embedded;embeddedPrefix:doctor_" json:"doctor"`
	HasVisited      bool              `gorm:"default:false" json:"hasVisited"`
	Reason          string            `gorm:"size:255;not null" json:"reason"`
	Status          AppointmentStatus `gorm:"size:20;default:'Booked'" json:"status"`
	DoctorID        string            `gorm:"size:36;index;not null" json:"doctorId"`
	PatientID       string            `gorm:"size:36;index;not null" json:"patientId"`
	ShiftID         string            `gorm:"size:36;index;not null" json:"shiftId"`
}
