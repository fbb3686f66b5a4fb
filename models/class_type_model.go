package models

type ClassType struct {
	ID          string   `gorm:"size:32;primaryKey" json:"id"`
	Name        string   `gorm:"size:255;not null" json:"name"`
	Image       string   `gorm:"size:512" json:"image"`
	Description *string  `gorm:"type:text" json:"description,omitempty"`
	Benefits    []string `gorm:"serializer:json;type:text" json:"benefits"`
}
