package repository

import (
	"testing"
	"time"

	"github.com/naseej-app/internal/models"
)

func TestDashboardCountsByStatus(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewDashboardRepository(db)

	seedRequest(t, db, "NSJ0101", "Pending Approval", 1)
	seedRequest(t, db, "NSJ0102", "Pending Approval", 1)
	seedRequest(t, db, "NSJ0103", "Completed", 1)

	for _, status := range []string{"working", "working", "completed"} {
		if err := db.Create(&models.Item{RequestID: 1, Quantity: 1, Status: status}).Error; err != nil {
			t.Fatalf("seed item failed: %v", err)
		}
	}

	requestRows, err := repo.CountRequestsByStatus()
	if err != nil {
		t.Fatalf("count requests failed: %v", err)
	}
	counts := map[string]int64{}
	for _, row := range requestRows {
		counts[row.Status] = row.Count
	}
	if counts["Pending Approval"] != 2 || counts["Completed"] != 1 {
		t.Fatalf("unexpected request counts: %v", counts)
	}

	itemRows, err := repo.CountItemsByStatus()
	if err != nil {
		t.Fatalf("count items failed: %v", err)
	}
	counts = map[string]int64{}
	for _, row := range itemRows {
		counts[row.Status] = row.Count
	}
	if counts["working"] != 2 || counts["completed"] != 1 {
		t.Fatalf("unexpected item counts: %v", counts)
	}
}

func TestDashboardWorkerLoadExcludesCompletedAndUnassigned(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewDashboardRepository(db)

	worker := uint(7)
	items := []models.Item{
		{RequestID: 1, Quantity: 1, Status: "working", WorkerID: &worker},
		{RequestID: 1, Quantity: 1, Status: "wrapping", WorkerID: &worker},
		{RequestID: 1, Quantity: 1, Status: "completed", WorkerID: &worker},
		{RequestID: 1, Quantity: 1, Status: "working"},
	}
	for i := range items {
		if err := db.Create(&items[i]).Error; err != nil {
			t.Fatalf("seed item failed: %v", err)
		}
	}

	rows, err := repo.CountItemsByWorker()
	if err != nil {
		t.Fatalf("worker load failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows want 1 got %d", len(rows))
	}
	if rows[0].WorkerID != worker || rows[0].Count != 2 {
		t.Fatalf("unexpected load row: %+v", rows[0])
	}
}

func TestDashboardCompletedQtyWindow(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewDashboardRepository(db)

	now := time.Now()
	inWindow := seedRequest(t, db, "NSJ0201", "Completed", 1)
	if err := db.Model(&models.Request{}).Where("id = ?", inWindow.ID).
		Updates(map[string]interface{}{"total_qty": 5, "deadline": now}).Error; err != nil {
		t.Fatalf("adjust request failed: %v", err)
	}
	outOfWindow := seedRequest(t, db, "NSJ0202", "Completed", 1)
	if err := db.Model(&models.Request{}).Where("id = ?", outOfWindow.ID).
		Updates(map[string]interface{}{"total_qty": 9, "deadline": now.AddDate(0, -2, 0)}).Error; err != nil {
		t.Fatalf("adjust request failed: %v", err)
	}
	stillOpen := seedRequest(t, db, "NSJ0203", "Approved", 1)
	if err := db.Model(&models.Request{}).Where("id = ?", stillOpen.ID).
		Updates(map[string]interface{}{"total_qty": 3, "deadline": now}).Error; err != nil {
		t.Fatalf("adjust request failed: %v", err)
	}

	total, err := repo.SumCompletedQty(now.AddDate(0, -1, 0), now.Add(time.Hour))
	if err != nil {
		t.Fatalf("sum failed: %v", err)
	}
	if total != 5 {
		t.Fatalf("completed qty want 5 got %d", total)
	}
}

func TestDashboardDueSoonSkipsTerminalStatuses(t *testing.T) {
	db := setupRepositoryTest(t)
	repo := NewDashboardRepository(db)

	soon := time.Now().Add(24 * time.Hour)
	for i, status := range []string{"Approved", "Preparing Order", "Completed", "Cancelled", "Rejected"} {
		request := seedRequest(t, db, "NSJ030"+string(rune('0'+i)), status, 1)
		if err := db.Model(&models.Request{}).Where("id = ?", request.ID).
			Update("deadline", soon).Error; err != nil {
			t.Fatalf("adjust deadline failed: %v", err)
		}
	}
	far := seedRequest(t, db, "NSJ0309", "Approved", 1)
	if err := db.Model(&models.Request{}).Where("id = ?", far.ID).
		Update("deadline", time.Now().AddDate(0, 0, 30)).Error; err != nil {
		t.Fatalf("adjust deadline failed: %v", err)
	}

	count, err := repo.CountRequestsDueBefore(time.Now().Add(48 * time.Hour))
	if err != nil {
		t.Fatalf("due soon failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("due soon want 2 got %d", count)
	}
}
