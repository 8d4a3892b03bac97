package models

import "time"

// Request is one customer order tracked through the status workflow.
// Requests are never physically deleted: rejection and cancellation are
// statuses, not deletions.
type Request struct {
	ID                uint      `gorm:"primarykey" json:"id"`
	OrderNo           string    `gorm:"uniqueIndex;not null" json:"order_no"`
	StoreID           uint      `gorm:"index;not null" json:"store_id"`
	RequestedByUserID uint      `gorm:"index;not null" json:"requested_by_user_id"`
	Notes             string    `gorm:"type:text" json:"notes"`
	TotalQty          int       `gorm:"not null;default:0" json:"total_qty"`
	Deadline          time.Time `gorm:"index" json:"deadline"`
	InboundOption     string    `gorm:"type:varchar(32);not null" json:"inbound_option"`
	OutboundOption    string    `gorm:"type:varchar(32);not null" json:"outbound_option"`
	Status            string    `gorm:"index;not null" json:"status"`
	CreatedAt         time.Time `gorm:"index" json:"created_at"`

	Store   *Store                 `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	Items   []Item                 `gorm:"foreignKey:RequestID" json:"items,omitempty"`
	History []RequestStatusHistory `gorm:"foreignKey:RequestID" json:"status_history,omitempty"`
}

// TableName sets the table name.
func (Request) TableName() string {
	return "requests"
}

// RequestStatusHistory is the append-only audit log of request status
// changes. PreviousStatus is NULL only for the creation event. Rows are
// written in the same transaction as the status update and are never
// updated or deleted.
type RequestStatusHistory struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	RequestID       uint      `gorm:"index;not null" json:"request_id"`
	PreviousStatus  *string   `json:"previous_status"`
	NewStatus       string    `gorm:"not null" json:"new_status"`
	ChangedByUserID uint      `gorm:"index;not null" json:"changed_by_user_id"`
	Note            string    `gorm:"type:text" json:"note,omitempty"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
}

// TableName sets the table name.
func (RequestStatusHistory) TableName() string {
	return "request_status_history"
}
