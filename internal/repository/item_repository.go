package repository

import (
	"errors"
	"time"

	"github.com/naseej-app/internal/models"

	"gorm.io/gorm"
)

// ItemListFilter is a conjunctive filter for operational dashboards.
type ItemListFilter struct {
	Status    string
	WorkerID  *uint
	DriverID  *uint
	RequestID *uint
}

// ItemRepository is the item data access interface.
type ItemRepository interface {
	GetByID(id uint) (*models.Item, error)
	List(filter ItemListFilter) ([]models.Item, error)
	UpdateStatusFrom(id uint, from, to string, at time.Time) (int64, error)
	Assign(id uint, workerID, driverID *uint, at time.Time) error
	AppendHistory(entry *models.ItemStatusHistory) error
	ListHistory(itemID uint) ([]models.ItemStatusHistory, error)
	CountByStatus(status string) (int64, error)
	WithTx(tx *gorm.DB) ItemRepository
}

// GormItemRepository is the GORM implementation.
type GormItemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates the item repository.
func NewItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormItemRepository) WithTx(tx *gorm.DB) ItemRepository {
	if tx == nil {
		return r
	}
	return &GormItemRepository{db: tx}
}

// GetByID fetches an item.
func (r *GormItemRepository) GetByID(id uint) (*models.Item, error) {
	var item models.Item
	if err := r.db.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// List returns items matching every supplied filter field. All conditions
// are parameterized; caller-supplied values are never interpolated into the
// query text.
func (r *GormItemRepository) List(filter ItemListFilter) ([]models.Item, error) {
	query := r.db.Model(&models.Item{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.WorkerID != nil {
		query = query.Where("worker_id = ?", *filter.WorkerID)
	}
	if filter.DriverID != nil {
		query = query.Where("driver_id = ?", *filter.DriverID)
	}
	if filter.RequestID != nil {
		query = query.Where("request_id = ?", *filter.RequestID)
	}

	var items []models.Item
	if err := query.Order("updated_at desc, id desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// UpdateStatusFrom sets status and the updated timestamp only when the
// stored status still matches from.
func (r *GormItemRepository) UpdateStatusFrom(id uint, from, to string, at time.Time) (int64, error) {
	result := r.db.Model(&models.Item{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":     to,
			"updated_at": at,
		})
	return result.RowsAffected, result.Error
}

// Assign sets whichever of worker/driver is supplied; a nil reference
// leaves the other assignment untouched.
func (r *GormItemRepository) Assign(id uint, workerID, driverID *uint, at time.Time) error {
	updates := map[string]interface{}{
		"updated_at": at,
	}
	if workerID != nil {
		updates["worker_id"] = *workerID
	}
	if driverID != nil {
		updates["driver_id"] = *driverID
	}
	return r.db.Model(&models.Item{}).Where("id = ?", id).Updates(updates).Error
}

// AppendHistory inserts one audit row.
func (r *GormItemRepository) AppendHistory(entry *models.ItemStatusHistory) error {
	return r.db.Create(entry).Error
}

// ListHistory returns an item's audit trail, oldest first.
func (r *GormItemRepository) ListHistory(itemID uint) ([]models.ItemStatusHistory, error) {
	var rows []models.ItemStatusHistory
	err := r.db.Where("item_id = ?", itemID).
		Order("created_at asc, id asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountByStatus counts items currently carrying a status name.
func (r *GormItemRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Item{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
