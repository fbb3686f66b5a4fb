package models

import (
	"time"
)

// Draft stages for the staged class-creation flow. The stage is persisted
// with the draft so an interrupted session resumes where it left off.
const (
	DraftStageDetails      = "details"
	DraftStageConfirmation = "confirmation"
)

// ClassDraft is the one locally-staged, not-yet-committed class. The id is
// assigned when the draft row is first created and becomes the YogaClass id
// at commit time, so a retried commit upserts instead of duplicating.
type ClassDraft struct {
	ID          string  `gorm:"size:32;primaryKey" json:"id"`
	Title       string  `gorm:"size:255" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Date        string  `gorm:"size:10" json:"date"`
	Time        string  `gorm:"size:5" json:"time"`
	Capacity    int     `json:"capacity"`
	ClassTypeID string  `gorm:"size:32" json:"class_type_id"`
	Price       float64 `gorm:"type:numeric(10,2)" json:"price"`
	ImageURL    *string `gorm:"size:512" json:"image_url,omitempty"`
	Stage       string  `gorm:"size:20;not null;default:'details'" json:"stage"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToClass builds the durable YogaClass committed from this draft. The draft
// id carries over unchanged.
func (d *ClassDraft) ToClass() YogaClass {
	yc := YogaClass{
		ID:          d.ID,
		Title:       d.Title,
		Date:        d.Date,
		Time:        d.Time,
		Capacity:    d.Capacity,
		ClassTypeID: d.ClassTypeID,
		Price:       d.Price,
		ImageURL:    d.ImageURL,
	}
	if d.Description != "" {
		desc := d.Description
		yc.Description = &desc
	}
	return yc
}
