package models

// Shift represents a doctor-defined bookable time slot.
//
// IsAvailable is false exactly while one non-cancelled appointment
// references the shift. It is only flipped through the store's conditional
// reserve/release operations.
type Shift struct {
	BaseModel
	DoctorID    string `gorm:"size:36;index;not null" json:"doctorId"`
	Date        string `gorm:"size:10;index;not null" json:"date"` // YYYY-MM-DD
	StartTime   string `gorm:"size:5;not null" json:"startTime"`   // HH:MM
	EndTime     string `gorm:"size:5;not null" json:"endTime"`
	IsAvailable bool   `gorm:"default:true" json:"isAvailable"`

	// Relation
	Doctor User `gorm:"foreignKey:DoctorID" json:"-"`
}

// ShiftWithDoctor is the display form returned by the availability query:
// a shift enriched with its doctor's public fields.
type ShiftWithDoctor struct {
	Shift
	DoctorFirstName  string `json:"doctorFirstName"`
	DoctorLastName   string `json:"doctorLastName"`
	DoctorDepartment string `json:"doctorDepartment"`
	DoctorGender     Gender `json:"doctorGender"`
}
