package models

import (
	"time"
)

type YogaClass struct {
	ID          string  `gorm:"size:32;primaryKey" json:"id"`
	Title       string  `gorm:"size:255;not null" json:"title"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
	Date        string  `gorm:"size:10;not null" json:"date"`
	Time        string  `gorm:"size:5;not null" json:"time"`
	Capacity    int     `gorm:"not null" json:"capacity"`
	ClassTypeID string  `gorm:"size:32;not null" json:"class_type_id"`
	Price       float64 `gorm:"type:numeric(10,2);not null" json:"price"`
	ImageURL    *string `gorm:"size:512" json:"image_url,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
