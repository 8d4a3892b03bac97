package models

import "time"

// Notification is a per-user feed entry written by the worker when a
// request changes status.
type Notification struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	RequestID uint      `gorm:"index;not null" json:"request_id"`
	OrderNo   string    `json:"order_no"`
	Status    string    `json:"status"`
	Message   string    `gorm:"type:text" json:"message"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name.
func (Notification) TableName() string {
	return "notifications"
}
