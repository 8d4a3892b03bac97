package models

import (
	"strings"

	"github.com/naseej-app/internal/constants"
	"github.com/naseej-app/internal/logger"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// InitBuiltinRoles makes sure every built-in role row exists.
func InitBuiltinRoles(db *gorm.DB) error {
	for _, name := range constants.BuiltinRoles {
		var role Role
		err := db.Where("name = ?", name).First(&role).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(&Role{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}

// InitDefaultAdmin creates the default admin account when no admin exists.
func InitDefaultAdmin(db *gorm.DB, email, password string) error {
	var adminRole Role
	if err := db.Where("name = ?", constants.RoleAdmin).First(&adminRole).Error; err != nil {
		return err
	}

	var count int64
	if err := db.Model(&User{}).Where("role_id = ?", adminRole.ID).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if email == "" {
		email = "admin@naseej.local"
	}
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := User{
		Name:         "Administrator",
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		RoleID:       adminRole.ID,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_admin_created_with_default_password", "email", admin.Email)
		logger.Warnw("default_admin_password_change_required", "email", admin.Email)
	} else {
		logger.Warnw("default_admin_created", "email", admin.Email, "password_hidden", true)
	}
	return nil
}

// defaultItemStatuses seeds the registry the item dashboards rely on.
var defaultItemStatuses = []Status{
	{Name: constants.ItemStatusRequested, Description: "Awaiting intake", Color: "#9E9E9E", DisplayOrder: 1},
	{Name: constants.ItemStatusPickup, Description: "Out with a driver for pickup", Color: "#03A9F4", DisplayOrder: 2},
	{Name: constants.ItemStatusWorking, Description: "Being processed", Color: "#FF9800", DisplayOrder: 3},
	{Name: constants.ItemStatusWrapping, Description: "Being wrapped", Color: "#FFC107", DisplayOrder: 4},
	{Name: constants.ItemStatusReady, Description: "Ready to leave", Color: "#8BC34A", DisplayOrder: 5},
	{Name: constants.ItemStatusDelivery, Description: "Out for delivery", Color: "#3F51B5", DisplayOrder: 6},
	{Name: constants.ItemStatusCompleted, Description: "Done", Color: "#4CAF50", DisplayOrder: 7},
}

// InitDefaultStatuses seeds the item status registry when it is empty.
func InitDefaultStatuses(db *gorm.DB) error {
	var count int64
	if err := db.Model(&Status{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for i := range defaultItemStatuses {
		if err := db.Create(&defaultItemStatuses[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
