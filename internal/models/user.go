package models

import (
	"time"
)

// Role is a named access level (admin, manager, worker, driver, customer).
type Role struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// TableName sets the table name.
func (Role) TableName() string {
	return "roles"
}

// User is a registered account of any role.
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Phone        string    `gorm:"type:varchar(32)" json:"phone,omitempty"`
	RoleID       uint      `gorm:"index;not null" json:"role_id"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`

	Role *Role `gorm:"foreignKey:RoleID" json:"role,omitempty"`
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}

// RoleName returns the preloaded role name, or "" when not loaded.
func (u *User) RoleName() string {
	if u == nil || u.Role == nil {
		return ""
	}
	return u.Role.Name
}
