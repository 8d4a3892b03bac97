package service

import (
	"fmt"
	"strings"

	"github.com/naseej-app/internal/models"
	"github.com/naseej-app/internal/repository"

	"gorm.io/gorm"
)

// StatusService manages the admin-owned registry of item workflow stages.
type StatusService struct {
	db         *gorm.DB
	statusRepo repository.StatusRepository
	itemRepo   repository.ItemRepository
}

// NewStatusService creates the status registry service.
func NewStatusService(db *gorm.DB, statusRepo repository.StatusRepository, itemRepo repository.ItemRepository) *StatusService {
	return &StatusService{db: db, statusRepo: statusRepo, itemRepo: itemRepo}
}

// StatusInput is the create/update payload.
type StatusInput struct {
	Name         string
	Description  string
	Color        string
	DisplayOrder int
}

// List returns the registry in display order.
func (s *StatusService) List() ([]models.Status, error) {
	return s.statusRepo.List()
}

// Create adds a registry entry. Display order must be free across all rows.
func (s *StatusService) Create(input StatusInput) (*models.Status, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	taken, err := s.statusRepo.CountByDisplayOrder(input.DisplayOrder, 0)
	if err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, ErrDisplayOrderTaken
	}
	status := &models.Status{
		Name:         name,
		Description:  strings.TrimSpace(input.Description),
		Color:        strings.TrimSpace(input.Color),
		DisplayOrder: input.DisplayOrder,
	}
	if err := s.statusRepo.Create(status); err != nil {
		return nil, err
	}
	return status, nil
}

// Update edits a registry entry, re-checking the display order slot against
// every other row.
func (s *StatusService) Update(id uint, input StatusInput) (*models.Status, error) {
	status, err := s.statusRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if status == nil {
		return nil, ErrStatusNotFound
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	taken, err := s.statusRepo.CountByDisplayOrder(input.DisplayOrder, id)
	if err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, ErrDisplayOrderTaken
	}
	status.Name = name
	status.Description = strings.TrimSpace(input.Description)
	status.Color = strings.TrimSpace(input.Color)
	status.DisplayOrder = input.DisplayOrder
	if err := s.statusRepo.Update(status); err != nil {
		return nil, err
	}
	return status, nil
}

// Delete removes a registry entry unless any item still carries it. Items
// reference statuses by name, so the in-use check counts items whose status
// matches the entry's name.
func (s *StatusService) Delete(id uint) error {
	status, err := s.statusRepo.GetByID(id)
	if err != nil {
		return err
	}
	if status == nil {
		return ErrStatusNotFound
	}
	inUse, err := s.itemRepo.CountByStatus(status.Name)
	if err != nil {
		return err
	}
	if inUse > 0 {
		return ErrStatusInUse
	}
	return s.statusRepo.Delete(id)
}

// ReorderEntry is one id/slot pair of a bulk reorder.
type ReorderEntry struct {
	ID           uint `json:"id"`
	DisplayOrder int  `json:"display_order"`
}

// Reorder applies a new ordering in one transaction. Duplicate slots
// within the payload are rejected up front, a slot held by a row outside
// the payload is rejected inside the transaction, and an unknown id rolls
// the whole reorder back.
func (s *StatusService) Reorder(entries []ReorderEntry) error {
	if len(entries) == 0 {
		return ErrInvalidInput
	}
	seen := make(map[int]bool, len(entries))
	listed := make(map[uint]bool, len(entries))
	for _, entry := range entries {
		if seen[entry.DisplayOrder] {
			return ErrDisplayOrderTaken
		}
		seen[entry.DisplayOrder] = true
		listed[entry.ID] = true
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		statusRepo := s.statusRepo.WithTx(tx)
		// A partial payload must not land on a slot held by a row it
		// does not move.
		all, err := statusRepo.List()
		if err != nil {
			return err
		}
		for _, status := range all {
			if !listed[status.ID] && seen[status.DisplayOrder] {
				return ErrDisplayOrderTaken
			}
		}
		// Park every row on a negative slot first so the final ordering
		// never collides with a not-yet-moved row.
		for _, entry := range entries {
			affected, err := statusRepo.UpdateDisplayOrder(entry.ID, -int(entry.ID))
			if err != nil {
				return err
			}
			if affected == 0 {
				return ErrStatusNotFound
			}
		}
		for _, entry := range entries {
			if _, err := statusRepo.UpdateDisplayOrder(entry.ID, entry.DisplayOrder); err != nil {
				return err
			}
		}
		return nil
	})
}
