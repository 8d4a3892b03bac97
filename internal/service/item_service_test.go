package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/naseej-app/internal/constants"
	"github.com/naseej-app/internal/models"
	"github.com/naseej-app/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupItemServiceTest(t *testing.T) (*gorm.DB, *ItemService) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	if err := models.InitBuiltinRoles(db); err != nil {
		t.Fatalf("seed roles failed: %v", err)
	}
	return db, NewItemService(db, repository.NewItemRepository(db))
}

func seedItem(t *testing.T, db *gorm.DB, status string) models.Item {
	t.Helper()
	item := models.Item{RequestID: 1, Quantity: 1, Description: "shirt", Status: status}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create item failed: %v", err)
	}
	return item
}

func TestItemUpdateStatusAppendsHistory(t *testing.T) {
	db, svc := setupItemServiceTest(t)
	item := seedItem(t, db, "Received")

	if err := svc.UpdateStatus(item.ID, "Washing", 7, "load 3"); err != nil {
		t.Fatalf("update status failed: %v", err)
	}

	var stored models.Item
	if err := db.First(&stored, item.ID).Error; err != nil {
		t.Fatalf("reload item failed: %v", err)
	}
	if stored.Status != "Washing" {
		t.Fatalf("status want Washing got %q", stored.Status)
	}

	var history []models.ItemStatusHistory
	if err := db.Where("item_id = ?", item.ID).Find(&history).Error; err != nil {
		t.Fatalf("load history failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history rows want 1 got %d", len(history))
	}
	if history[0].PreviousStatus == nil || *history[0].PreviousStatus != "Received" {
		t.Fatalf("previous status want Received got %v", history[0].PreviousStatus)
	}
	if history[0].NewStatus != "Washing" || history[0].ChangedByUserID != 7 || history[0].Note != "load 3" {
		t.Fatalf("unexpected history row: %+v", history[0])
	}
}

func TestItemUpdateStatusMissingItem(t *testing.T) {
	_, svc := setupItemServiceTest(t)
	if err := svc.UpdateStatus(9999, "Washing", 1, ""); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("want ErrItemNotFound got %v", err)
	}
}

func TestItemAssignPartialUpdate(t *testing.T) {
	db, svc := setupItemServiceTest(t)
	worker := mustCreateUser(t, db, "worker@test.local", constants.RoleWorker)
	driver := mustCreateUser(t, db, "driver@test.local", constants.RoleDriver)
	item := seedItem(t, db, "Received")

	if err := svc.Assign(item.ID, &worker.ID, nil); err != nil {
		t.Fatalf("assign worker failed: %v", err)
	}
	if err := svc.Assign(item.ID, nil, &driver.ID); err != nil {
		t.Fatalf("assign driver failed: %v", err)
	}

	var stored models.Item
	if err := db.First(&stored, item.ID).Error; err != nil {
		t.Fatalf("reload item failed: %v", err)
	}
	if stored.WorkerID == nil || *stored.WorkerID != worker.ID {
		t.Fatalf("worker assignment lost after driver assign: %v", stored.WorkerID)
	}
	if stored.DriverID == nil || *stored.DriverID != driver.ID {
		t.Fatalf("driver want %d got %v", driver.ID, stored.DriverID)
	}
}

func TestItemAssignValidation(t *testing.T) {
	db, svc := setupItemServiceTest(t)
	item := seedItem(t, db, "Received")

	if err := svc.Assign(item.ID, nil, nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("nil/nil assign want ErrInvalidInput got %v", err)
	}
	ghost := uint(4242)
	if err := svc.Assign(item.ID, &ghost, nil); err == nil {
		t.Fatalf("assigning an unknown user should fail")
	}
}

func TestItemListFilters(t *testing.T) {
	db, svc := setupItemServiceTest(t)
	worker := mustCreateUser(t, db, "w2@test.local", constants.RoleWorker)

	a := seedItem(t, db, "Washing")
	seedItem(t, db, "Pressing")
	if err := db.Model(&models.Item{}).Where("id = ?", a.ID).Update("worker_id", worker.ID).Error; err != nil {
		t.Fatalf("assign seed failed: %v", err)
	}

	byStatus, err := svc.List(repository.ItemListFilter{Status: "Washing"})
	if err != nil {
		t.Fatalf("list by status failed: %v", err)
	}
	if len(byStatus) != 1 || byStatus[0].ID != a.ID {
		t.Fatalf("status filter want item %d got %d rows", a.ID, len(byStatus))
	}

	byWorker, err := svc.List(repository.ItemListFilter{WorkerID: &worker.ID})
	if err != nil {
		t.Fatalf("list by worker failed: %v", err)
	}
	if len(byWorker) != 1 || byWorker[0].ID != a.ID {
		t.Fatalf("worker filter want item %d got %d rows", a.ID, len(byWorker))
	}
}

func TestItemGetReturnsHistory(t *testing.T) {
	db, svc := setupItemServiceTest(t)
	item := seedItem(t, db, "Received")
	if err := svc.UpdateStatus(item.ID, "Washing", 1, ""); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if err := svc.UpdateStatus(item.ID, "Pressing", 1, ""); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, history, err := svc.Get(item.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Status != "Pressing" {
		t.Fatalf("status want Pressing got %q", got.Status)
	}
	if len(history) != 2 {
		t.Fatalf("history rows want 2 got %d", len(history))
	}
}
