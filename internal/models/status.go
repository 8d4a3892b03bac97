package models

// Status is an admin-defined item workflow stage: named, colored, and
// ordered for dashboard display. DisplayOrder must be unique across all
// rows; the service layer enforces that before every write.
type Status struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	Name         string `gorm:"uniqueIndex;not null" json:"name"`
	Description  string `gorm:"type:text" json:"description"`
	Color        string `gorm:"type:varchar(16)" json:"color"`
	DisplayOrder int    `gorm:"not null" json:"display_order"`
}

// TableName sets the table name.
func (Status) TableName() string {
	return "statuses"
}
