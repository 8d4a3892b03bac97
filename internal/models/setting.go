package models

// Setting is a global configuration row (pricing, company profile). Plain
// key/value with upsert semantics, no relational integrity beyond the key.
type Setting struct {
	Key       string `gorm:"primarykey" json:"key"`
	ValueJSON JSON   `gorm:"type:json" json:"value"`
}

// TableName keeps the legacy table name.
func (Setting) TableName() string {
	return "system_settings"
}
