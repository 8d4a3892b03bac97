package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/naseej-app/internal/models"
	"github.com/naseej-app/internal/queue"
	"github.com/naseej-app/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupNotificationServiceTest(t *testing.T) (*gorm.DB, *NotificationService) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	svc := NewNotificationService(
		repository.NewNotificationRepository(db),
		repository.NewStoreRepository(db),
		repository.NewRequestRepository(db),
	)
	return db, svc
}

func seedNotificationRequest(t *testing.T, db *gorm.DB, ownerUserID uint) models.Request {
	t.Helper()
	store := models.Store{Name: "Store", OwnerUserID: ownerUserID}
	if err := db.Create(&store).Error; err != nil {
		t.Fatalf("create store failed: %v", err)
	}
	request := models.Request{
		OrderNo:           "NSJ5001",
		StoreID:           store.ID,
		RequestedByUserID: ownerUserID,
		TotalQty:          1,
		Deadline:          time.Now().AddDate(0, 0, 2),
		InboundOption:     "business_pickup",
		OutboundOption:    "business_delivery",
		Status:            "Approved",
	}
	if err := db.Create(&request).Error; err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	return request
}

func TestRecordStatusChangeNotifiesStoreOwner(t *testing.T) {
	db, svc := setupNotificationServiceTest(t)
	request := seedNotificationRequest(t, db, 11)

	err := svc.RecordStatusChange(queue.RequestStatusChangedPayload{
		RequestID: request.ID,
		OrderNo:   request.OrderNo,
		NewStatus: "Approved",
		Note:      "see you tomorrow",
	})
	if err != nil {
		t.Fatalf("record failed: %v", err)
	}

	feed, err := svc.List(11, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(feed) != 1 {
		t.Fatalf("feed want 1 entry got %d", len(feed))
	}
	if feed[0].Message != "Order NSJ5001 is now Approved: see you tomorrow" {
		t.Fatalf("unexpected message: %q", feed[0].Message)
	}
	if feed[0].Read {
		t.Fatalf("new entries must start unread")
	}
}

func TestRecordStatusChangeSkipsDeletedRequest(t *testing.T) {
	db, svc := setupNotificationServiceTest(t)

	// A payload referencing a request that no longer exists is dropped,
	// otherwise the queue would retry it forever.
	err := svc.RecordStatusChange(queue.RequestStatusChangedPayload{RequestID: 404, OrderNo: "NSJ0404", NewStatus: "Approved"})
	if err != nil {
		t.Fatalf("missing request must be skipped, got %v", err)
	}

	var count int64
	if err := db.Model(&models.Notification{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("no entry should be written, got %d", count)
	}
}

func TestMarkReadEnforcesOwnership(t *testing.T) {
	db, svc := setupNotificationServiceTest(t)
	request := seedNotificationRequest(t, db, 11)

	if err := svc.RecordStatusChange(queue.RequestStatusChangedPayload{RequestID: request.ID, OrderNo: request.OrderNo, NewStatus: "Approved"}); err != nil {
		t.Fatalf("record failed: %v", err)
	}
	feed, err := svc.List(11, 10)
	if err != nil || len(feed) != 1 {
		t.Fatalf("list failed: %v (%d rows)", err, len(feed))
	}

	if err := svc.MarkRead(feed[0].ID, 99); !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("foreign mark-read want ErrNotificationNotFound got %v", err)
	}
	if err := svc.MarkRead(feed[0].ID, 11); err != nil {
		t.Fatalf("owner mark-read failed: %v", err)
	}
	if err := svc.MarkRead(99999, 11); !errors.Is(err, ErrNotificationNotFound) {
		t.Fatalf("missing id want ErrNotificationNotFound got %v", err)
	}
}
