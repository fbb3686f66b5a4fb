package models

import (
	"time"
)

type YogaClassInstance struct {
	ID           string  `gorm:"size:32;primaryKey" json:"id"`
	ClassID      string  `gorm:"size:32;not null;index" json:"class_id"`
	Title        string  `gorm:"size:255;not null" json:"title"`
	Description  string  `gorm:"type:text" json:"description"`
	InstanceDate string  `gorm:"size:10;not null" json:"instance_date"`
	InstructorID string  `gorm:"size:64;not null" json:"instructor_id"`
	Notes        *string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
