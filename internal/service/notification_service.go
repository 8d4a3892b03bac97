package service

import (
	"fmt"

	"github.com/naseej-app/internal/models"
	"github.com/naseej-app/internal/queue"
	"github.com/naseej-app/internal/repository"
)

// NotificationService records and serves per-user notification feeds.
// RecordStatusChange runs in the queue worker, the rest behind the API.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
	storeRepo        repository.StoreRepository
	requestRepo      repository.RequestRepository
}

// NewNotificationService creates the notification service.
func NewNotificationService(notificationRepo repository.NotificationRepository, storeRepo repository.StoreRepository, requestRepo repository.RequestRepository) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		storeRepo:        storeRepo,
		requestRepo:      requestRepo,
	}
}

// RecordStatusChange writes a feed entry for the store owner of the
// changed request. A request whose store is gone is skipped, not an error;
// the task must not be retried forever over a deleted row.
func (s *NotificationService) RecordStatusChange(payload queue.RequestStatusChangedPayload) error {
	request, err := s.requestRepo.GetByID(payload.RequestID)
	if err != nil {
		return err
	}
	if request == nil {
		return nil
	}
	store, err := s.storeRepo.GetByID(request.StoreID)
	if err != nil {
		return err
	}
	if store == nil {
		return nil
	}

	message := fmt.Sprintf("Order %s is now %s", payload.OrderNo, payload.NewStatus)
	if payload.Note != "" {
		message = fmt.Sprintf("%s: %s", message, payload.Note)
	}
	return s.notificationRepo.Create(&models.Notification{
		UserID:    store.OwnerUserID,
		RequestID: payload.RequestID,
		OrderNo:   payload.OrderNo,
		Status:    payload.NewStatus,
		Message:   message,
	})
}

// List returns the newest notifications of a user.
func (s *NotificationService) List(userID uint, limit int) ([]models.Notification, error) {
	return s.notificationRepo.ListByUser(userID, limit)
}

// MarkRead flags one notification as read. Ownership is enforced in the
// query; marking someone else's row reports not found.
func (s *NotificationService) MarkRead(id, userID uint) error {
	affected, err := s.notificationRepo.MarkRead(id, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
