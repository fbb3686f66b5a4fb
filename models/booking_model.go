package models

import (
	"time"
)

const (
	BookingStatusConfirmed = "Confirmed"
	BookingStatusCancelled = "Cancelled"
	BookingStatusPending   = "Pending"
	BookingStatusNew       = "New"
)

type Booking struct {
	ID            string  `gorm:"size:32;primaryKey" json:"id"`
	InstanceID    string  `gorm:"size:32;not null;index" json:"instance_id"`
	UserID        string  `gorm:"size:64;not null;index" json:"user_id"`
	BookingDate   string  `gorm:"size:10;not null" json:"booking_date"`
	BookingTime   string  `gorm:"size:5;not null" json:"booking_time"`
	Status        string  `gorm:"size:20;not null;default:'New'" json:"status"`
	PaymentStatus string  `gorm:"size:20;not null;default:'pending'" json:"payment_status"`
	TotalAmount   float64 `gorm:"type:numeric(10,2);not null" json:"total_amount"`
	Notes         string  `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidBookingStatus reports whether s is one of the known booking statuses.
// Transitions themselves are unrestricted: staff may move a booking between
// any two statuses.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingStatusConfirmed, BookingStatusCancelled, BookingStatusPending, BookingStatusNew:
		return true
	}
	return false
}
