package repository

import (
	"time"

	"github.com/naseej-app/internal/constants"
	"github.com/naseej-app/internal/models"
	"github.com/naseej-app/internal/workflow"

	"gorm.io/gorm"
)

// DashboardRepository aggregates reporting counts. It carries no business
// rules, only grouped statistics.
type DashboardRepository interface {
	CountRequestsByStatus() ([]StatusCountRow, error)
	CountItemsByStatus() ([]StatusCountRow, error)
	CountItemsByWorker() ([]WorkerLoadRow, error)
	SumCompletedQty(startAt, endAt time.Time) (int64, error)
	CountRequestsDueBefore(deadline time.Time) (int64, error)
}

// StatusCountRow is one status bucket.
type StatusCountRow struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

// WorkerLoadRow is the open item count for one worker.
type WorkerLoadRow struct {
	WorkerID uint  `json:"worker_id"`
	Count    int64 `json:"count"`
}

// GormDashboardRepository is the GORM implementation.
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository creates the dashboard repository.
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// CountRequestsByStatus buckets requests by current status.
func (r *GormDashboardRepository) CountRequestsByStatus() ([]StatusCountRow, error) {
	var rows []StatusCountRow
	err := r.db.Model(&models.Request{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountItemsByStatus buckets items by current status.
func (r *GormDashboardRepository) CountItemsByStatus() ([]StatusCountRow, error) {
	var rows []StatusCountRow
	err := r.db.Model(&models.Item{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountItemsByWorker buckets assigned, unfinished items by worker.
func (r *GormDashboardRepository) CountItemsByWorker() ([]WorkerLoadRow, error) {
	var rows []WorkerLoadRow
	err := r.db.Model(&models.Item{}).
		Select("worker_id, COUNT(*) AS count").
		Where("worker_id IS NOT NULL AND status <> ?", constants.ItemStatusCompleted).
		Group("worker_id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// SumCompletedQty sums total_qty over requests completed in a window.
func (r *GormDashboardRepository) SumCompletedQty(startAt, endAt time.Time) (int64, error) {
	var total int64
	err := r.db.Model(&models.Request{}).
		Select("COALESCE(SUM(total_qty), 0)").
		Where("status = ?", string(workflow.StateCompleted)).
		Where("deadline BETWEEN ? AND ?", startAt, endAt).
		Scan(&total).Error
	return total, err
}

// CountRequestsDueBefore counts open requests approaching their deadline.
func (r *GormDashboardRepository) CountRequestsDueBefore(deadline time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Request{}).
		Where("deadline <= ?", deadline).
		Where("status NOT IN ?", []string{
			string(workflow.StateCompleted),
			string(workflow.StateCancelled),
			string(workflow.StateRejected),
		}).
		Count(&count).Error
	return count, err
}
