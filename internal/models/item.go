package models

import "time"

// Item is a physical unit within a request, tracked through its own status
// space (the admin-managed registry) and assignable to a worker and a
// driver.
type Item struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	RequestID   uint      `gorm:"index;not null" json:"request_id"`
	Quantity    int       `gorm:"not null;default:1" json:"quantity"`
	Description string    `gorm:"type:text" json:"description"`
	Status      string    `gorm:"index;not null" json:"status"`
	WorkerID    *uint     `gorm:"index" json:"worker_id"`
	DriverID    *uint     `gorm:"index" json:"driver_id"`
	UpdatedAt   time.Time `gorm:"index" json:"updated_at"`

	Worker *User `gorm:"foreignKey:WorkerID" json:"worker,omitempty"`
	Driver *User `gorm:"foreignKey:DriverID" json:"driver,omitempty"`
}

// TableName keeps the legacy table name.
func (Item) TableName() string {
	return "hwali_items"
}

// ItemStatusHistory is the append-only audit log of item status changes,
// same contract as RequestStatusHistory.
type ItemStatusHistory struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	ItemID          uint      `gorm:"index;not null" json:"item_id"`
	PreviousStatus  *string   `json:"previous_status"`
	NewStatus       string    `gorm:"not null" json:"new_status"`
	ChangedByUserID uint      `gorm:"index;not null" json:"changed_by_user_id"`
	Note            string    `gorm:"type:text" json:"note,omitempty"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
}

// TableName keeps the legacy table name.
func (ItemStatusHistory) TableName() string {
	return "status_history"
}
