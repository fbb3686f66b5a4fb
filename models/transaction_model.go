package models

type Transaction struct {
	ID            string   `gorm:"size:32;primaryKey" json:"id"`
	UserID        string   `gorm:"size:64;not null;index" json:"user_id"`
	Bookings      []string `gorm:"serializer:json;type:text" json:"bookings"`
	Amount        float64  `gorm:"type:numeric(10,2);not null" json:"amount"`
	PaymentMethod string   `gorm:"size:50" json:"payment_method"`
	Status        string   `gorm:"size:20" json:"status"`
	Message       string   `gorm:"type:text" json:"transaction_message"`
	CreatedAt     string   `gorm:"size:32" json:"created_at"`
	UpdatedAt     string   `gorm:"size:32" json:"updated_at"`
}
