package models

import (
	"time"

	"gorm.io/gorm"
)

// Contact message statuses
const (
	ContactStatusNew        = "NEW"
	ContactStatusInProgress = "IN_PROGRESS"
	ContactStatusResolved   = "RESOLVED"
	ContactStatusClosed     = "CLOSED"
)

// ContactStatuses lists every valid contact status, for API validation.
var ContactStatuses = []string{
	ContactStatusNew,
	ContactStatusInProgress,
	ContactStatusResolved,
	ContactStatusClosed,
}

// Contact represents a message submitted through the contact form
type Contact struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"not null;index" json:"email"`
	Phone     string         `json:"phone"`
	Subject   string         `gorm:"not null" json:"subject"`
	Message   string         `gorm:"type:text;not null" json:"message"`
	Status    string         `gorm:"not null;default:'NEW';index" json:"status"`
	Notes     []ContactNote  `gorm:"foreignKey:ContactID;constraint:OnDelete:CASCADE" json:"notes"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Contact model
func (Contact) TableName() string {
	return "contacts"
}

// ContactNote is an admin note appended to a contact message
type ContactNote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ContactID uint      `gorm:"not null;index" json:"contact_id"`
	AdminID   uint      `gorm:"not null" json:"admin_id"`
	Note      string    `gorm:"type:text;not null" json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for the ContactNote model
func (ContactNote) TableName() string {
	return "contact_notes"
}
