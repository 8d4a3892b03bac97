package service

import (
	"strings"
	"time"

	"github.com/naseej-app/internal/models"
	"github.com/naseej-app/internal/repository"

	"gorm.io/gorm"
)

// ItemService covers per-item status tracking and worker/driver assignment.
// Item statuses come from the admin-managed registry, not from the request
// workflow table.
type ItemService struct {
	db       *gorm.DB
	itemRepo repository.ItemRepository
}

// NewItemService creates the item service.
func NewItemService(db *gorm.DB, itemRepo repository.ItemRepository) *ItemService {
	return &ItemService{db: db, itemRepo: itemRepo}
}

// UpdateStatus moves one item to a new status and logs the transition.
// Update and history row commit together; the update is guarded by the
// status we read, so a concurrent change fails the transaction instead of
// recording a stale previous status.
func (s *ItemService) UpdateStatus(itemID uint, toStatus string, actingUserID uint, note string) error {
	toStatus = strings.TrimSpace(toStatus)
	if toStatus == "" {
		return ErrInvalidInput
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		itemRepo := s.itemRepo.WithTx(tx)
		item, err := itemRepo.GetByID(itemID)
		if err != nil {
			return err
		}
		if item == nil {
			return ErrItemNotFound
		}

		now := time.Now()
		affected, err := itemRepo.UpdateStatusFrom(item.ID, item.Status, toStatus, now)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrConcurrentTransition
		}

		previous := item.Status
		return itemRepo.AppendHistory(&models.ItemStatusHistory{
			ItemID:          item.ID,
			PreviousStatus:  &previous,
			NewStatus:       toStatus,
			ChangedByUserID: actingUserID,
			Note:            strings.TrimSpace(note),
			CreatedAt:       now,
		})
	})
}

// Assign sets the worker and/or driver of an item. Supplying only one
// reference leaves the other untouched. Assignment is not a status, so no
// history row is written.
func (s *ItemService) Assign(itemID uint, workerID, driverID *uint) error {
	if workerID == nil && driverID == nil {
		return ErrInvalidInput
	}
	item, err := s.itemRepo.GetByID(itemID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrItemNotFound
	}
	return s.itemRepo.Assign(itemID, workerID, driverID, time.Now())
}

// List returns items matching the conjunctive filter.
func (s *ItemService) List(filter repository.ItemListFilter) ([]models.Item, error) {
	return s.itemRepo.List(filter)
}

// Get returns one item with its audit trail.
func (s *ItemService) Get(itemID uint) (*models.Item, []models.ItemStatusHistory, error) {
	item, err := s.itemRepo.GetByID(itemID)
	if err != nil {
		return nil, nil, err
	}
	if item == nil {
		return nil, nil, ErrItemNotFound
	}
	history, err := s.itemRepo.ListHistory(itemID)
	if err != nil {
		return nil, nil, err
	}
	return item, history, nil
}
