package domain

import "time"

// User is keyed by phone number; the phone doubles as the session subject.
type User struct {
	Phone     string `gorm:"primaryKey;size:20"`
	FirstName string
	LastName  string
	Email     string
	PINHash   string `gorm:"column:pin_hash;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
