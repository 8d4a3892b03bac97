package models

import "time"

// Store is a customer-owned shop that files pickup requests. A customer
// account owns at most one store.
type Store struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	OwnerUserID uint      `gorm:"uniqueIndex;not null" json:"owner_user_id"`
	Address     string    `gorm:"type:varchar(500)" json:"address,omitempty"`
	Phone       string    `gorm:"type:varchar(32)" json:"phone,omitempty"`
	CreatedAt   time.Time `json:"created_at"`

	Owner *User `gorm:"foreignKey:OwnerUserID" json:"owner,omitempty"`
}

// TableName sets the table name.
func (Store) TableName() string {
	return "stores"
}
