package main

import (
	"time"

	"github.com/naseej-app/internal/config"
	"github.com/naseej-app/internal/constants"
	"github.com/naseej-app/internal/logger"
	"github.com/naseej-app/internal/models"
	"github.com/naseej-app/internal/workflow"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seeds a runnable demo dataset: roles, default admin, the item status
// registry, staff accounts, one customer with a store, and one request in
// the approval queue.
func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	db, err := models.OpenDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	})
	if err != nil {
		stdLog.Fatalf("failed to connect database: %v", err)
	}
	defer func() {
		if err := models.CloseDB(db); err != nil {
			stdLog.Printf("warning: database close failed: %v", err)
		}
	}()

	if err := models.AutoMigrate(db); err != nil {
		stdLog.Fatalf("failed to migrate database: %v", err)
	}
	if err := models.InitBuiltinRoles(db); err != nil {
		stdLog.Fatalf("failed to seed roles: %v", err)
	}
	if err := models.InitDefaultStatuses(db); err != nil {
		stdLog.Fatalf("failed to seed statuses: %v", err)
	}
	if err := models.InitDefaultAdmin(db, "", ""); err != nil {
		stdLog.Fatalf("failed to seed default admin: %v", err)
	}

	roleIDs := map[string]uint{}
	var roles []models.Role
	if err := db.Find(&roles).Error; err != nil {
		stdLog.Fatalf("failed to load roles: %v", err)
	}
	for _, role := range roles {
		roleIDs[role.Name] = role.ID
	}

	staff := []models.User{
		{Name: "Maha Manager", Email: "manager@naseej.local", RoleID: roleIDs[constants.RoleManager]},
		{Name: "Walid Worker", Email: "worker@naseej.local", RoleID: roleIDs[constants.RoleWorker]},
		{Name: "Dana Driver", Email: "driver@naseej.local", RoleID: roleIDs[constants.RoleDriver]},
		{Name: "Carima Customer", Email: "customer@naseej.local", RoleID: roleIDs[constants.RoleCustomer]},
	}
	for i := range staff {
		user, err := ensureUser(db, staff[i], "naseej123")
		if err != nil {
			stdLog.Fatalf("failed to seed user %s: %v", staff[i].Email, err)
		}
		staff[i] = *user
		stdLog.Printf("seeded user: %s", user.Email)
	}

	customer := staff[3]
	var store models.Store
	if err := db.Where("owner_user_id = ?", customer.ID).First(&store).Error; err != nil {
		store = models.Store{
			Name:        "Al Noor Boutique",
			OwnerUserID: customer.ID,
			Address:     "12 Souq Street",
			Phone:       "+966-5550-0101",
		}
		if err := db.Create(&store).Error; err != nil {
			stdLog.Fatalf("failed to seed store: %v", err)
		}
		stdLog.Printf("seeded store: %s", store.Name)
	}

	var requestCount int64
	if err := db.Model(&models.Request{}).Where("store_id = ?", store.ID).Count(&requestCount).Error; err != nil {
		stdLog.Fatalf("failed to count requests: %v", err)
	}
	if requestCount > 0 {
		stdLog.Printf("demo request already present, done")
		return
	}

	now := time.Now()
	request := models.Request{
		OrderNo:           "NSJ" + now.Format("20060102150405") + "000001",
		StoreID:           store.ID,
		RequestedByUserID: customer.ID,
		Notes:             "Two abayas need delicate wash, one thobe pressed",
		TotalQty:          3,
		Deadline:          now.AddDate(0, 0, 3),
		InboundOption:     constants.InboundBusinessPickup,
		OutboundOption:    constants.OutboundBusinessDelivery,
		Status:            string(workflow.StatePendingApproval),
		CreatedAt:         now,
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&request).Error; err != nil {
			return err
		}
		items := []models.Item{
			{RequestID: request.ID, Quantity: 2, Description: "Abaya, delicate wash", Status: constants.ItemStatusRequested, UpdatedAt: now},
			{RequestID: request.ID, Quantity: 1, Description: "Thobe, press only", Status: constants.ItemStatusRequested, UpdatedAt: now},
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		return tx.Create(&models.RequestStatusHistory{
			RequestID:       request.ID,
			NewStatus:       request.Status,
			ChangedByUserID: customer.ID,
			CreatedAt:       now,
		}).Error
	})
	if err != nil {
		stdLog.Fatalf("failed to seed demo request: %v", err)
	}
	stdLog.Printf("seeded demo request: %s", request.OrderNo)
}

func ensureUser(db *gorm.DB, user models.User, password string) (*models.User, error) {
	var existing models.User
	err := db.Where("email = ?", user.Email).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = string(hash)
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
