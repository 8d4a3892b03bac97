package repository

import (
	"errors"

	"github.com/naseej-app/internal/models"

	"gorm.io/gorm"
)

// StatusRepository is the status registry data access interface.
type StatusRepository interface {
	List() ([]models.Status, error)
	GetByID(id uint) (*models.Status, error)
	Create(status *models.Status) error
	Update(status *models.Status) error
	Delete(id uint) error
	CountByDisplayOrder(displayOrder int, excludeID uint) (int64, error)
	UpdateDisplayOrder(id uint, displayOrder int) (int64, error)
	WithTx(tx *gorm.DB) StatusRepository
}

// GormStatusRepository is the GORM implementation.
type GormStatusRepository struct {
	db *gorm.DB
}

// NewStatusRepository creates the status repository.
func NewStatusRepository(db *gorm.DB) *GormStatusRepository {
	return &GormStatusRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormStatusRepository) WithTx(tx *gorm.DB) StatusRepository {
	if tx == nil {
		return r
	}
	return &GormStatusRepository{db: tx}
}

// List returns every registry entry in display order.
func (r *GormStatusRepository) List() ([]models.Status, error) {
	var statuses []models.Status
	if err := r.db.Order("display_order asc").Find(&statuses).Error; err != nil {
		return nil, err
	}
	return statuses, nil
}

// GetByID fetches one registry entry.
func (r *GormStatusRepository) GetByID(id uint) (*models.Status, error) {
	var status models.Status
	if err := r.db.First(&status, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &status, nil
}

// Create inserts a registry entry.
func (r *GormStatusRepository) Create(status *models.Status) error {
	return r.db.Create(status).Error
}

// Update saves a registry entry.
func (r *GormStatusRepository) Update(status *models.Status) error {
	return r.db.Save(status).Error
}

// Delete removes a registry entry.
func (r *GormStatusRepository) Delete(id uint) error {
	return r.db.Delete(&models.Status{}, id).Error
}

// CountByDisplayOrder counts other rows occupying a display order slot.
func (r *GormStatusRepository) CountByDisplayOrder(displayOrder int, excludeID uint) (int64, error) {
	var count int64
	query := r.db.Model(&models.Status{}).Where("display_order = ?", displayOrder)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count, err
}

// UpdateDisplayOrder moves one entry to a new display slot.
func (r *GormStatusRepository) UpdateDisplayOrder(id uint, displayOrder int) (int64, error) {
	result := r.db.Model(&models.Status{}).
		Where("id = ?", id).
		Update("display_order", displayOrder)
	return result.RowsAffected, result.Error
}
