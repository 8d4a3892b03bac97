package repository

import (
	"errors"

	"github.com/naseej-app/internal/models"

	"gorm.io/gorm"
)

// StoreRepository is the store data access interface.
type StoreRepository interface {
	GetByID(id uint) (*models.Store, error)
	GetByOwnerUserID(userID uint) (*models.Store, error)
	Create(store *models.Store) error
}

// GormStoreRepository is the GORM implementation.
type GormStoreRepository struct {
	db *gorm.DB
}

// NewStoreRepository creates the store repository.
func NewStoreRepository(db *gorm.DB) *GormStoreRepository {
	return &GormStoreRepository{db: db}
}

// GetByID fetches one store.
func (r *GormStoreRepository) GetByID(id uint) (*models.Store, error) {
	var store models.Store
	if err := r.db.First(&store, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

// GetByOwnerUserID resolves the store owned by a customer account.
func (r *GormStoreRepository) GetByOwnerUserID(userID uint) (*models.Store, error) {
	var store models.Store
	if err := r.db.Where("owner_user_id = ?", userID).First(&store).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &store, nil
}

// Create inserts a store.
func (r *GormStoreRepository) Create(store *models.Store) error {
	return r.db.Create(store).Error
}
