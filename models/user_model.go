package models

import (
	"time"
)

const (
	RoleAdmin      = "admin"
	RoleInstructor = "instructor"
	RoleMember     = "member"
)

type User struct {
	ID             string  `gorm:"size:64;primaryKey" json:"id"`
	Email          string  `gorm:"size:255;not null;unique" json:"email"`
	Name           string  `gorm:"size:255;not null" json:"name"`
	PasswordHash   string  `gorm:"not null" json:"-"`
	ProfileImage   string  `gorm:"size:512" json:"profile_image"`
	Role           string  `gorm:"size:20;not null;default:'member'" json:"role"`
	Status         string  `gorm:"size:20;not null;default:'active'" json:"status"`
	Specialization *string `gorm:"size:255" json:"specialization,omitempty"`
	Bio            *string `gorm:"type:text" json:"bio,omitempty"`
	Contact        *string `gorm:"size:100" json:"contact,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
