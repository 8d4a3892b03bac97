package service

import (
	"time"

	"github.com/naseej-app/internal/models"
	"github.com/naseej-app/internal/repository"

	"github.com/shopspring/decimal"
)

// DashboardService aggregates operational reporting for the manager and
// admin dashboards.
type DashboardService struct {
	dashboardRepo  repository.DashboardRepository
	settingService *SettingService
}

// NewDashboardService creates the dashboard service.
func NewDashboardService(dashboardRepo repository.DashboardRepository, settingService *SettingService) *DashboardService {
	return &DashboardService{
		dashboardRepo:  dashboardRepo,
		settingService: settingService,
	}
}

// Overview is the dashboard aggregate payload.
type Overview struct {
	RequestsByStatus []repository.StatusCountRow `json:"requests_by_status"`
	ItemsByStatus    []repository.StatusCountRow `json:"items_by_status"`
	WorkerLoad       []repository.WorkerLoadRow  `json:"worker_load"`
	DueSoonRequests  int64                       `json:"due_soon_requests"`
	CompletedQty     int64                       `json:"completed_qty"`
	EstimatedRevenue models.Money                `json:"estimated_revenue"`
	WindowStart      time.Time                   `json:"window_start"`
	WindowEnd        time.Time                   `json:"window_end"`
}

// Overview builds the aggregate over the given reporting window. Revenue
// is estimated as completed quantity times the configured unit price; a
// missing pricing setting falls back to zero.
func (s *DashboardService) Overview(startAt, endAt time.Time) (*Overview, error) {
	if endAt.IsZero() {
		endAt = time.Now()
	}
	if startAt.IsZero() {
		startAt = endAt.AddDate(0, -1, 0)
	}

	requestsByStatus, err := s.dashboardRepo.CountRequestsByStatus()
	if err != nil {
		return nil, err
	}
	itemsByStatus, err := s.dashboardRepo.CountItemsByStatus()
	if err != nil {
		return nil, err
	}
	workerLoad, err := s.dashboardRepo.CountItemsByWorker()
	if err != nil {
		return nil, err
	}
	dueSoon, err := s.dashboardRepo.CountRequestsDueBefore(time.Now().Add(48 * time.Hour))
	if err != nil {
		return nil, err
	}
	completedQty, err := s.dashboardRepo.SumCompletedQty(startAt, endAt)
	if err != nil {
		return nil, err
	}

	unitPrice, err := s.settingService.UnitPrice(decimal.Zero)
	if err != nil {
		return nil, err
	}
	revenue := unitPrice.Mul(decimal.NewFromInt(completedQty))

	return &Overview{
		RequestsByStatus: requestsByStatus,
		ItemsByStatus:    itemsByStatus,
		WorkerLoad:       workerLoad,
		DueSoonRequests:  dueSoon,
		CompletedQty:     completedQty,
		EstimatedRevenue: models.NewMoneyFromDecimal(revenue),
		WindowStart:      startAt,
		WindowEnd:        endAt,
	}, nil
}
