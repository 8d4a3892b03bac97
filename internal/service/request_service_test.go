package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/naseej-app/internal/constants"
	"github.com/naseej-app/internal/models"
	"github.com/naseej-app/internal/queue"
	"github.com/naseej-app/internal/repository"
	"github.com/naseej-app/internal/workflow"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type requestServiceFixture struct {
	db       *gorm.DB
	svc      *RequestService
	customer models.User
	manager  models.User
	store    models.Store
}

func setupRequestServiceTest(t *testing.T) *requestServiceFixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	if err := models.InitBuiltinRoles(db); err != nil {
		t.Fatalf("seed roles failed: %v", err)
	}

	f := &requestServiceFixture{db: db}
	f.customer = mustCreateUser(t, db, "customer@test.local", constants.RoleCustomer)
	f.manager = mustCreateUser(t, db, "manager@test.local", constants.RoleManager)

	f.store = models.Store{Name: "Test Store", OwnerUserID: f.customer.ID}
	if err := db.Create(&f.store).Error; err != nil {
		t.Fatalf("create store failed: %v", err)
	}

	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	f.svc = NewRequestService(db,
		repository.NewRequestRepository(db),
		repository.NewStoreRepository(db),
		queueClient,
	)
	return f
}

func mustCreateUser(t *testing.T, db *gorm.DB, email, roleName string) models.User {
	t.Helper()
	var role models.Role
	if err := db.Where("name = ?", roleName).First(&role).Error; err != nil {
		t.Fatalf("load role %s failed: %v", roleName, err)
	}
	user := models.User{
		Name:         email,
		Email:        email,
		PasswordHash: "x",
		RoleID:       role.ID,
		Role:         &role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create user %s failed: %v", email, err)
	}
	return user
}

func (f *requestServiceFixture) createRequest(t *testing.T, inbound, outbound string) *models.Request {
	t.Helper()
	request, err := f.svc.CreateRequest(CreateRequestInput{
		UserID: f.customer.ID,
		Items: []CreateRequestItem{
			{Quantity: 2, Description: "abaya"},
			{Quantity: 1, Description: "thobe"},
		},
		Notes:          "handle with care",
		TotalQty:       3,
		Deadline:       time.Now().AddDate(0, 0, 2),
		InboundOption:  inbound,
		OutboundOption: outbound,
	})
	if err != nil {
		t.Fatalf("create request failed: %v", err)
	}
	return request
}

func TestCreateRequestWritesItemsAndCreationHistory(t *testing.T) {
	f := setupRequestServiceTest(t)
	request := f.createRequest(t, constants.InboundBusinessPickup, constants.OutboundBusinessDelivery)

	if request.Status != string(workflow.StatePendingApproval) {
		t.Fatalf("status want %q got %q", workflow.StatePendingApproval, request.Status)
	}
	if request.OrderNo == "" {
		t.Fatalf("expected generated order no")
	}

	var itemCount int64
	if err := f.db.Model(&models.Item{}).Where("request_id = ?", request.ID).Count(&itemCount).Error; err != nil {
		t.Fatalf("count items failed: %v", err)
	}
	if itemCount != 2 {
		t.Fatalf("items want 2 got %d", itemCount)
	}

	var history []models.RequestStatusHistory
	if err := f.db.Where("request_id = ?", request.ID).Find(&history).Error; err != nil {
		t.Fatalf("load history failed: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("history rows want 1 got %d", len(history))
	}
	if history[0].PreviousStatus != nil {
		t.Fatalf("creation history previous status should be NULL, got %v", *history[0].PreviousStatus)
	}
	if history[0].NewStatus != string(workflow.StatePendingApproval) {
		t.Fatalf("creation history new status want %q got %q", workflow.StatePendingApproval, history[0].NewStatus)
	}
}

func TestCreateRequestWithoutStoreFails(t *testing.T) {
	f := setupRequestServiceTest(t)
	stray := mustCreateUser(t, f.db, "stray@test.local", constants.RoleCustomer)

	_, err := f.svc.CreateRequest(CreateRequestInput{
		UserID:         stray.ID,
		Items:          []CreateRequestItem{{Quantity: 1}},
		TotalQty:       1,
		Deadline:       time.Now().AddDate(0, 0, 1),
		InboundOption:  constants.InboundCustomerDropoff,
		OutboundOption: constants.OutboundCustomerPickup,
	})
	if !errors.Is(err, ErrStoreNotFound) {
		t.Fatalf("want ErrStoreNotFound got %v", err)
	}
}

func TestApproveWithCustomerDropoffStoresAwaitingDropoff(t *testing.T) {
	f := setupRequestServiceTest(t)
	request := f.createRequest(t, constants.InboundCustomerDropoff, constants.OutboundBusinessDelivery)

	newStatus, err := f.svc.AdvanceRequest(request.ID, workflow.EventApprove, f.manager.ID, "ok")
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if newStatus != string(workflow.StateAwaitingDropoff) {
		t.Fatalf("status want %q got %q", workflow.StateAwaitingDropoff, newStatus)
	}

	var stored models.Request
	if err := f.db.First(&stored, request.ID).Error; err != nil {
		t.Fatalf("reload request failed: %v", err)
	}
	if stored.Status != string(workflow.StateAwaitingDropoff) {
		t.Fatalf("stored status want %q got %q", workflow.StateAwaitingDropoff, stored.Status)
	}

	var history []models.RequestStatusHistory
	if err := f.db.Where("request_id = ?", request.ID).Order("id asc").Find(&history).Error; err != nil {
		t.Fatalf("load history failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("history rows want 2 got %d", len(history))
	}
	last := history[1]
	if last.PreviousStatus == nil || *last.PreviousStatus != string(workflow.StatePendingApproval) {
		t.Fatalf("history previous status want %q got %v", workflow.StatePendingApproval, last.PreviousStatus)
	}
	if last.ChangedByUserID != f.manager.ID {
		t.Fatalf("history actor want %d got %d", f.manager.ID, last.ChangedByUserID)
	}
}

func TestPrepareWithCustomerPickupStoresReadyForPickup(t *testing.T) {
	f := setupRequestServiceTest(t)
	request := f.createRequest(t, constants.InboundBusinessPickup, constants.OutboundCustomerPickup)

	if _, err := f.svc.AdvanceRequest(request.ID, workflow.EventApprove, f.manager.ID, ""); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	newStatus, err := f.svc.AdvanceRequest(request.ID, workflow.EventStartPreparing, f.manager.ID, "")
	if err != nil {
		t.Fatalf("prepare failed: %v", err)
	}
	if newStatus != string(workflow.StateReadyForPickup) {
		t.Fatalf("status want %q got %q", workflow.StateReadyForPickup, newStatus)
	}
}

func TestDoubleRejectFailsWithoutExtraHistory(t *testing.T) {
	f := setupRequestServiceTest(t)
	request := f.createRequest(t, constants.InboundBusinessPickup, constants.OutboundBusinessDelivery)

	if _, err := f.svc.AdvanceRequest(request.ID, workflow.EventReject, f.manager.ID, "torn fabric"); err != nil {
		t.Fatalf("first reject failed: %v", err)
	}
	_, err := f.svc.AdvanceRequest(request.ID, workflow.EventReject, f.manager.ID, "again")
	if !errors.Is(err, workflow.ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition got %v", err)
	}

	var historyCount int64
	if err := f.db.Model(&models.RequestStatusHistory{}).Where("request_id = ?", request.ID).Count(&historyCount).Error; err != nil {
		t.Fatalf("count history failed: %v", err)
	}
	// Creation row plus one reject; the refused second reject logs nothing.
	if historyCount != 2 {
		t.Fatalf("history rows want 2 got %d", historyCount)
	}
}

func TestCancelFromNonTerminalState(t *testing.T) {
	f := setupRequestServiceTest(t)
	request := f.createRequest(t, constants.InboundBusinessPickup, constants.OutboundBusinessDelivery)

	if _, err := f.svc.AdvanceRequest(request.ID, workflow.EventApprove, f.manager.ID, ""); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	newStatus, err := f.svc.AdvanceRequest(request.ID, workflow.EventCancel, f.customer.ID, "changed my mind")
	if err != nil {
		t.Fatalf("cancel failed: %v", err)
	}
	if newStatus != string(workflow.StateCancelled) {
		t.Fatalf("status want %q got %q", workflow.StateCancelled, newStatus)
	}

	if _, err := f.svc.AdvanceRequest(request.ID, workflow.EventCancel, f.customer.ID, ""); !errors.Is(err, workflow.ErrInvalidTransition) {
		t.Fatalf("cancel after cancel want ErrInvalidTransition got %v", err)
	}
}

// historyFaultRepo fails every history insert while delegating the rest,
// staying faulty across transaction rebinds.
type historyFaultRepo struct {
	repository.RequestRepository
}

func (r *historyFaultRepo) AppendHistory(entry *models.RequestStatusHistory) error {
	return errors.New("history insert failed")
}

func (r *historyFaultRepo) WithTx(tx *gorm.DB) repository.RequestRepository {
	return &historyFaultRepo{RequestRepository: r.RequestRepository.WithTx(tx)}
}

func TestAdvanceRollsBackStatusWhenHistoryInsertFails(t *testing.T) {
	f := setupRequestServiceTest(t)
	request := f.createRequest(t, constants.InboundBusinessPickup, constants.OutboundBusinessDelivery)

	queueClient, err := queue.NewClient(nil)
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	faulty := NewRequestService(f.db,
		&historyFaultRepo{RequestRepository: repository.NewRequestRepository(f.db)},
		repository.NewStoreRepository(f.db),
		queueClient,
	)

	if _, err := faulty.AdvanceRequest(request.ID, workflow.EventApprove, f.manager.ID, ""); err == nil {
		t.Fatalf("advance must surface the history failure")
	}

	// The status update committed inside the same transaction must be
	// rolled back with it.
	var stored models.Request
	if err := f.db.First(&stored, request.ID).Error; err != nil {
		t.Fatalf("reload request failed: %v", err)
	}
	if stored.Status != string(workflow.StatePendingApproval) {
		t.Fatalf("status must stay %q after rollback, got %q", workflow.StatePendingApproval, stored.Status)
	}

	var historyCount int64
	if err := f.db.Model(&models.RequestStatusHistory{}).Where("request_id = ?", request.ID).Count(&historyCount).Error; err != nil {
		t.Fatalf("count history failed: %v", err)
	}
	if historyCount != 1 {
		t.Fatalf("only the creation row may remain, got %d", historyCount)
	}

	// The untouched service still advances the same request afterwards.
	if _, err := f.svc.AdvanceRequest(request.ID, workflow.EventApprove, f.manager.ID, ""); err != nil {
		t.Fatalf("advance after rollback failed: %v", err)
	}
}

func TestAdvanceMissingRequest(t *testing.T) {
	f := setupRequestServiceTest(t)
	_, err := f.svc.AdvanceRequest(9999, workflow.EventApprove, f.manager.ID, "")
	if !errors.Is(err, ErrRequestNotFound) {
		t.Fatalf("want ErrRequestNotFound got %v", err)
	}
}

func TestListRequestsScopedByRole(t *testing.T) {
	f := setupRequestServiceTest(t)

	// A second customer with their own store and request.
	other := mustCreateUser(t, f.db, "other@test.local", constants.RoleCustomer)
	otherStore := models.Store{Name: "Other Store", OwnerUserID: other.ID}
	if err := f.db.Create(&otherStore).Error; err != nil {
		t.Fatalf("create other store failed: %v", err)
	}

	mine := f.createRequest(t, constants.InboundBusinessPickup, constants.OutboundBusinessDelivery)
	theirs, err := f.svc.CreateRequest(CreateRequestInput{
		UserID:         other.ID,
		Items:          []CreateRequestItem{{Quantity: 1}},
		TotalQty:       1,
		Deadline:       time.Now().AddDate(0, 0, 5),
		InboundOption:  constants.InboundBusinessPickup,
		OutboundOption: constants.OutboundBusinessDelivery,
	})
	if err != nil {
		t.Fatalf("create other request failed: %v", err)
	}

	// Approve and cancel the second request so manager and worker scopes
	// have something to exclude.
	if _, err := f.svc.AdvanceRequest(theirs.ID, workflow.EventApprove, f.manager.ID, ""); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if _, err := f.svc.AdvanceRequest(theirs.ID, workflow.EventCancel, other.ID, ""); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	customerList, err := f.svc.ListRequests(Actor{UserID: f.customer.ID, Role: constants.RoleCustomer})
	if err != nil {
		t.Fatalf("customer list failed: %v", err)
	}
	if len(customerList) != 1 || customerList[0].ID != mine.ID {
		t.Fatalf("customer should only see their own request, got %d rows", len(customerList))
	}

	managerList, err := f.svc.ListRequests(Actor{UserID: f.manager.ID, Role: constants.RoleManager})
	if err != nil {
		t.Fatalf("manager list failed: %v", err)
	}
	if len(managerList) != 1 || managerList[0].Status != string(workflow.StatePendingApproval) {
		t.Fatalf("manager should only see the approval queue, got %d rows", len(managerList))
	}

	workerList, err := f.svc.ListRequests(Actor{UserID: 42, Role: constants.RoleWorker})
	if err != nil {
		t.Fatalf("worker list failed: %v", err)
	}
	for _, row := range workerList {
		if row.Status == string(workflow.StateCancelled) {
			t.Fatalf("worker list must exclude cancelled requests")
		}
	}

	adminList, err := f.svc.ListRequests(Actor{UserID: 1, Role: constants.RoleAdmin})
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	if len(adminList) != 2 {
		t.Fatalf("admin should see every request, got %d rows", len(adminList))
	}
}

func TestListRequestsCustomerWithoutStoreIsEmpty(t *testing.T) {
	f := setupRequestServiceTest(t)
	f.createRequest(t, constants.InboundBusinessPickup, constants.OutboundBusinessDelivery)

	stray := mustCreateUser(t, f.db, "nostore@test.local", constants.RoleCustomer)
	list, err := f.svc.ListRequests(Actor{UserID: stray.ID, Role: constants.RoleCustomer})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("customer without store should get an empty list, got %d rows", len(list))
	}
}

func TestGetRequestEnforcesCustomerOwnership(t *testing.T) {
	f := setupRequestServiceTest(t)
	request := f.createRequest(t, constants.InboundBusinessPickup, constants.OutboundBusinessDelivery)

	other := mustCreateUser(t, f.db, "intruder@test.local", constants.RoleCustomer)
	otherStore := models.Store{Name: "Intruder Store", OwnerUserID: other.ID}
	if err := f.db.Create(&otherStore).Error; err != nil {
		t.Fatalf("create store failed: %v", err)
	}

	if _, err := f.svc.GetRequest(request.ID, Actor{UserID: other.ID, Role: constants.RoleCustomer}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("want ErrForbidden got %v", err)
	}

	got, err := f.svc.GetRequest(request.ID, Actor{UserID: f.customer.ID, Role: constants.RoleCustomer})
	if err != nil {
		t.Fatalf("owner get failed: %v", err)
	}
	if len(got.Items) != 2 {
		t.Fatalf("detail items want 2 got %d", len(got.Items))
	}
	if len(got.History) != 1 {
		t.Fatalf("detail history want 1 got %d", len(got.History))
	}
}

func TestOrderHistoryJoinsRejectionNote(t *testing.T) {
	f := setupRequestServiceTest(t)
	request := f.createRequest(t, constants.InboundBusinessPickup, constants.OutboundBusinessDelivery)

	if _, err := f.svc.AdvanceRequest(request.ID, workflow.EventReject, f.manager.ID, "stains beyond repair"); err != nil {
		t.Fatalf("reject failed: %v", err)
	}

	rows, err := f.svc.OrderHistory(Actor{UserID: f.manager.ID, Role: constants.RoleManager}, "rejected", "")
	if err != nil {
		t.Fatalf("order history failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("history rows want 1 got %d", len(rows))
	}
	if rows[0].StatusNote != "stains beyond repair" {
		t.Fatalf("status note want %q got %q", "stains beyond repair", rows[0].StatusNote)
	}

	// Substring search over the order number.
	rows, err = f.svc.OrderHistory(Actor{Role: constants.RoleAdmin}, "", request.OrderNo[:6])
	if err != nil {
		t.Fatalf("order history search failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("search rows want 1 got %d", len(rows))
	}
}

func TestUpdateNotesDoesNotTouchHistory(t *testing.T) {
	f := setupRequestServiceTest(t)
	request := f.createRequest(t, constants.InboundBusinessPickup, constants.OutboundBusinessDelivery)

	if err := f.svc.UpdateNotes(request.ID, Actor{UserID: f.customer.ID, Role: constants.RoleCustomer}, "new notes"); err != nil {
		t.Fatalf("update notes failed: %v", err)
	}

	var stored models.Request
	if err := f.db.First(&stored, request.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if stored.Notes != "new notes" {
		t.Fatalf("notes want %q got %q", "new notes", stored.Notes)
	}

	var historyCount int64
	if err := f.db.Model(&models.RequestStatusHistory{}).Where("request_id = ?", request.ID).Count(&historyCount).Error; err != nil {
		t.Fatalf("count history failed: %v", err)
	}
	if historyCount != 1 {
		t.Fatalf("notes edit must not append history, got %d rows", historyCount)
	}

	other := mustCreateUser(t, f.db, "notmine@test.local", constants.RoleCustomer)
	if err := f.svc.UpdateNotes(request.ID, Actor{UserID: other.ID, Role: constants.RoleCustomer}, "hijack"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("want ErrForbidden got %v", err)
	}
}
