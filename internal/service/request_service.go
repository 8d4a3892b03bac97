package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/naseej-app/internal/constants"
	"github.com/naseej-app/internal/logger"
	"github.com/naseej-app/internal/models"
	"github.com/naseej-app/internal/queue"
	"github.com/naseej-app/internal/repository"
	"github.com/naseej-app/internal/workflow"

	"gorm.io/gorm"
)

// RequestService owns the request lifecycle: intake, workflow transitions
// with their audit trail, role-scoped visibility, and the order-history
// projection.
type RequestService struct {
	db          *gorm.DB
	requestRepo repository.RequestRepository
	storeRepo   repository.StoreRepository
	queueClient *queue.Client
}

// NewRequestService creates the request service.
func NewRequestService(db *gorm.DB, requestRepo repository.RequestRepository, storeRepo repository.StoreRepository, queueClient *queue.Client) *RequestService {
	return &RequestService{
		db:          db,
		requestRepo: requestRepo,
		storeRepo:   storeRepo,
		queueClient: queueClient,
	}
}

// CreateRequestItem is one physical line item of an intake.
type CreateRequestItem struct {
	Quantity    int
	Description string
}

// CreateRequestInput is the intake payload.
type CreateRequestInput struct {
	UserID         uint
	Items          []CreateRequestItem
	Notes          string
	TotalQty       int
	Deadline       time.Time
	InboundOption  string
	OutboundOption string
}

// CreateRequest files a new pickup request for the store owned by the
// acting customer. The request row, its items, and the creation history
// event (previous status NULL) are written in one transaction: a failure
// anywhere leaves no orphan rows.
func (s *RequestService) CreateRequest(input CreateRequestInput) (*models.Request, error) {
	if err := validateFulfillmentOptions(input.InboundOption, input.OutboundOption); err != nil {
		return nil, err
	}
	if input.Deadline.IsZero() {
		return nil, fmt.Errorf("%w: deadline is required", ErrInvalidInput)
	}

	store, err := s.storeRepo.GetByOwnerUserID(input.UserID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, ErrStoreNotFound
	}

	now := time.Now()
	request := &models.Request{
		OrderNo:           generateOrderNo(),
		StoreID:           store.ID,
		RequestedByUserID: input.UserID,
		Notes:             strings.TrimSpace(input.Notes),
		TotalQty:          input.TotalQty,
		Deadline:          input.Deadline,
		InboundOption:     input.InboundOption,
		OutboundOption:    input.OutboundOption,
		Status:            string(workflow.StatePendingApproval),
		CreatedAt:         now,
	}

	items := make([]models.Item, 0, len(input.Items))
	for _, line := range input.Items {
		qty := line.Quantity
		if qty <= 0 {
			qty = 1
		}
		items = append(items, models.Item{
			Quantity:    qty,
			Description: strings.TrimSpace(line.Description),
			Status:      constants.ItemStatusRequested,
			UpdatedAt:   now,
		})
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		requestRepo := s.requestRepo.WithTx(tx)
		if err := requestRepo.Create(request, items); err != nil {
			return err
		}
		// Creation audit event, not a transition: previous status is NULL.
		return requestRepo.AppendHistory(&models.RequestStatusHistory{
			RequestID:       request.ID,
			PreviousStatus:  nil,
			NewStatus:       request.Status,
			ChangedByUserID: input.UserID,
			CreatedAt:       now,
		})
	})
	if err != nil {
		return nil, err
	}
	request.Items = items
	return request, nil
}

// AdvanceRequest drives one workflow event against a request. Within a
// single transaction it reads the request, computes the effective target
// through the workflow table, updates the status column guarded by the
// previous value, and appends exactly one history row. Any failure rolls
// the whole transition back: a status change without its history row can
// never survive, and vice versa.
func (s *RequestService) AdvanceRequest(requestID uint, ev workflow.Event, actingUserID uint, note string) (string, error) {
	var newStatus string
	var payload queue.RequestStatusChangedPayload

	err := s.db.Transaction(func(tx *gorm.DB) error {
		requestRepo := s.requestRepo.WithTx(tx)
		request, err := requestRepo.GetByID(requestID)
		if err != nil {
			return err
		}
		if request == nil {
			return ErrRequestNotFound
		}

		target, err := workflow.Next(workflow.State(request.Status), ev, workflow.Options{
			Inbound:  request.InboundOption,
			Outbound: request.OutboundOption,
		})
		if err != nil {
			return err
		}

		affected, err := requestRepo.UpdateStatusFrom(request.ID, request.Status, string(target))
		if err != nil {
			return err
		}
		if affected == 0 {
			// A concurrent transition changed the row between our read
			// and write; fail instead of logging a stale previous status.
			return ErrConcurrentTransition
		}

		previous := request.Status
		if err := requestRepo.AppendHistory(&models.RequestStatusHistory{
			RequestID:       request.ID,
			PreviousStatus:  &previous,
			NewStatus:       string(target),
			ChangedByUserID: actingUserID,
			Note:            strings.TrimSpace(note),
			CreatedAt:       time.Now(),
		}); err != nil {
			return err
		}

		newStatus = string(target)
		payload = queue.RequestStatusChangedPayload{
			RequestID:      request.ID,
			OrderNo:        request.OrderNo,
			PreviousStatus: previous,
			NewStatus:      newStatus,
			ActorUserID:    actingUserID,
			Note:           strings.TrimSpace(note),
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	// Notification dispatch is best-effort and happens only after commit.
	if err := s.queueClient.EnqueueRequestStatusChanged(payload); err != nil {
		logger.Warnw("request_status_notify_enqueue_failed",
			"request_id", payload.RequestID,
			"new_status", payload.NewStatus,
			"error", err,
		)
	}
	return newStatus, nil
}

// Actor identifies who is asking, for visibility scoping.
type Actor struct {
	UserID uint
	Role   string
}

// ListRequests applies the role visibility rules:
// customers see their own store only (none linked means an empty list),
// managers see the approval queue, workers and drivers see everything but
// cancellations, admins see everything. Ascending by deadline.
func (s *RequestService) ListRequests(actor Actor) ([]models.Request, error) {
	scopes, empty, err := s.scopesForRole(actor)
	if err != nil {
		return nil, err
	}
	if empty {
		return []models.Request{}, nil
	}
	return s.requestRepo.List(scopes...)
}

// GetRequest returns a request with items and full history. Customers may
// only open requests belonging to their own store.
func (s *RequestService) GetRequest(id uint, actor Actor) (*models.Request, error) {
	request, err := s.requestRepo.GetByIDWithDetails(id)
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, ErrRequestNotFound
	}
	if actor.Role == constants.RoleCustomer {
		store, err := s.storeRepo.GetByOwnerUserID(actor.UserID)
		if err != nil {
			return nil, err
		}
		if store == nil || store.ID != request.StoreID {
			return nil, ErrForbidden
		}
	}
	return request, nil
}

// UpdateNotes edits the free-text notes of a request owned by the actor.
// Notes are not workflow state, so no history row is written.
func (s *RequestService) UpdateNotes(id uint, actor Actor, notes string) error {
	request, err := s.requestRepo.GetByID(id)
	if err != nil {
		return err
	}
	if request == nil {
		return ErrRequestNotFound
	}
	if actor.Role == constants.RoleCustomer && request.RequestedByUserID != actor.UserID {
		return ErrForbidden
	}
	return s.requestRepo.UpdateNotes(id, strings.TrimSpace(notes))
}

// IsOwner reports whether the actor filed the request.
func (s *RequestService) IsOwner(id uint, actor Actor) (bool, error) {
	request, err := s.requestRepo.GetByID(id)
	if err != nil {
		return false, err
	}
	if request == nil {
		return false, ErrRequestNotFound
	}
	return request.RequestedByUserID == actor.UserID, nil
}

// OrderHistory returns requests with their latest rejection/cancellation
// reason joined on, filtered and scoped per role, descending by deadline.
func (s *RequestService) OrderHistory(actor Actor, statusFilter, search string) ([]repository.RequestHistoryRow, error) {
	filter := repository.HistoryFilter{
		Status: statusFilter,
		Search: search,
	}
	if actor.Role == constants.RoleCustomer {
		store, err := s.storeRepo.GetByOwnerUserID(actor.UserID)
		if err != nil {
			return nil, err
		}
		if store == nil {
			return []repository.RequestHistoryRow{}, nil
		}
		filter.Scopes = append(filter.Scopes, repository.ScopeStore(store.ID))
	}
	return s.requestRepo.ListHistory(filter)
}

func (s *RequestService) scopesForRole(actor Actor) ([]repository.Scope, bool, error) {
	switch actor.Role {
	case constants.RoleCustomer:
		store, err := s.storeRepo.GetByOwnerUserID(actor.UserID)
		if err != nil {
			return nil, false, err
		}
		if store == nil {
			return nil, true, nil
		}
		return []repository.Scope{repository.ScopeStore(store.ID)}, false, nil
	case constants.RoleManager:
		return []repository.Scope{repository.ScopeStatus(string(workflow.StatePendingApproval))}, false, nil
	case constants.RoleAdmin:
		return []repository.Scope{repository.ScopeNone()}, false, nil
	default:
		return []repository.Scope{repository.ScopeExcludeStatus(string(workflow.StateCancelled))}, false, nil
	}
}

func validateFulfillmentOptions(inbound, outbound string) error {
	if inbound != constants.InboundCustomerDropoff && inbound != constants.InboundBusinessPickup {
		return fmt.Errorf("%w: unknown inbound option %q", ErrInvalidInput, inbound)
	}
	if outbound != constants.OutboundCustomerPickup && outbound != constants.OutboundBusinessDelivery {
		return fmt.Errorf("%w: unknown outbound option %q", ErrInvalidInput, outbound)
	}
	return nil
}

func generateOrderNo() string {
	now := time.Now().Format("20060102150405")
	return fmt.Sprintf("NSJ%s%s", now, randNumeric(6))
}

func randNumeric(length int) string {
	var b strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			b.WriteString("0")
			continue
		}
		fmt.Fprintf(&b, "%d", n.Int64())
	}
	return b.String()
}
