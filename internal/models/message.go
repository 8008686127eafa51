package models

// Message represents a contact-form message, readable by admins.
type Message struct {
	BaseModel
	FirstName string `gorm:"size:100;not null" json:"firstName"`
	LastName  string `gorm:"size:100;not null" json:"lastName"`
	Email     string `gorm:"size:255;not null" json:"email"`
	Phone     string `gorm:"size:10;not null" json:"phone"`
	Message   string `gorm:"type:text;not null" json:"message"`
}
