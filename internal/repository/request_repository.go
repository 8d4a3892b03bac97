package repository

import (
	"errors"
	"strconv"
	"strings"

	"github.com/naseej-app/internal/models"
	"github.com/naseej-app/internal/workflow"

	"gorm.io/gorm"
)

// HistoryFilter narrows the order-history projection.
type HistoryFilter struct {
	Status string // case-insensitive exact status match
	Search string // substring over order_no, or exact numeric id
	Scopes []Scope
}

// RequestHistoryRow is a request joined with the note of its most recent
// rejection or cancellation, for the "why" column on history dashboards.
type RequestHistoryRow struct {
	models.Request
	StatusNote string `json:"status_note"`
}

// RequestRepository is the request data access interface.
type RequestRepository interface {
	Create(request *models.Request, items []models.Item) error
	GetByID(id uint) (*models.Request, error)
	GetByIDWithDetails(id uint) (*models.Request, error)
	List(scopes ...Scope) ([]models.Request, error)
	ListHistory(filter HistoryFilter) ([]RequestHistoryRow, error)
	UpdateStatusFrom(id uint, from, to string) (int64, error)
	UpdateNotes(id uint, notes string) error
	AppendHistory(entry *models.RequestStatusHistory) error
	WithTx(tx *gorm.DB) RequestRepository
}

// GormRequestRepository is the GORM implementation.
type GormRequestRepository struct {
	db *gorm.DB
}

// NewRequestRepository creates the request repository.
func NewRequestRepository(db *gorm.DB) *GormRequestRepository {
	return &GormRequestRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormRequestRepository) WithTx(tx *gorm.DB) RequestRepository {
	if tx == nil {
		return r
	}
	return &GormRequestRepository{db: tx}
}

// Create inserts a request and its items.
func (r *GormRequestRepository) Create(request *models.Request, items []models.Item) error {
	if err := r.db.Create(request).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].RequestID = request.ID
	}
	if len(items) > 0 {
		if err := r.db.Create(&items).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetByID fetches a bare request row.
func (r *GormRequestRepository) GetByID(id uint) (*models.Request, error) {
	var request models.Request
	if err := r.db.First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// GetByIDWithDetails fetches a request with items and full status history.
func (r *GormRequestRepository) GetByIDWithDetails(id uint) (*models.Request, error) {
	var request models.Request
	err := r.db.
		Preload("Items").
		Preload("Store").
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at asc, id asc")
		}).
		First(&request, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &request, nil
}

// List returns requests matching the supplied scopes, ascending by
// deadline.
func (r *GormRequestRepository) List(scopes ...Scope) ([]models.Request, error) {
	var requests []models.Request
	query := applyScopes(r.db.Model(&models.Request{}), scopes)
	if err := query.Order("deadline asc").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// ListHistory returns requests with their latest rejection/cancellation
// note joined on, descending by deadline.
func (r *GormRequestRepository) ListHistory(filter HistoryFilter) ([]RequestHistoryRow, error) {
	noteSub := r.db.Model(&models.RequestStatusHistory{}).
		Select("note").
		Where("request_status_history.request_id = requests.id").
		Where("new_status IN ?", []string{
			string(workflow.StateCancelled),
			string(workflow.StateRejected),
		}).
		Order("created_at desc").
		Limit(1)

	query := r.db.Model(&models.Request{}).
		Select("requests.*, COALESCE((?), '') AS status_note", noteSub)
	query = applyScopes(query, filter.Scopes)

	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("LOWER(status) = LOWER(?)", status)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		if id, err := strconv.ParseUint(search, 10, 64); err == nil {
			query = query.Where("order_no LIKE ? OR requests.id = ?", "%"+search+"%", uint(id))
		} else {
			query = query.Where("order_no LIKE ?", "%"+search+"%")
		}
	}

	var rows []RequestHistoryRow
	if err := query.Order("deadline desc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateStatusFrom sets status only when the stored value still matches
// from, and reports the affected row count. A zero count means a concurrent
// transition won the race.
func (r *GormRequestRepository) UpdateStatusFrom(id uint, from, to string) (int64, error) {
	result := r.db.Model(&models.Request{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return result.RowsAffected, result.Error
}

// UpdateNotes edits the free-text notes without touching status.
func (r *GormRequestRepository) UpdateNotes(id uint, notes string) error {
	return r.db.Model(&models.Request{}).Where("id = ?", id).Update("notes", notes).Error
}

// AppendHistory inserts one audit row. History rows are never updated or
// deleted.
func (r *GormRequestRepository) AppendHistory(entry *models.RequestStatusHistory) error {
	return r.db.Create(entry).Error
}
