package provider

import (
	"github.com/naseej-app/internal/authz"
	"github.com/naseej-app/internal/cache"
	"github.com/naseej-app/internal/config"
	"github.com/naseej-app/internal/logger"
	"github.com/naseej-app/internal/queue"
	"github.com/naseej-app/internal/repository"
	"github.com/naseej-app/internal/service"

	"gorm.io/gorm"
)

// Container wires repositories and services. The database handle is
// injected; nothing here reaches for package-level state.
type Container struct {
	Config      *config.Config
	DB          *gorm.DB
	QueueClient *queue.Client

	// Repositories
	UserRepo         repository.UserRepository
	StoreRepo        repository.StoreRepository
	RequestRepo      repository.RequestRepository
	ItemRepo         repository.ItemRepository
	StatusRepo       repository.StatusRepository
	SettingRepo      repository.SettingRepository
	NotificationRepo repository.NotificationRepository
	DashboardRepo    repository.DashboardRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	RegistrationService *service.RegistrationService
	CaptchaService      *service.CaptchaService
	RequestService      *service.RequestService
	ItemService         *service.ItemService
	StatusService       *service.StatusService
	SettingService      *service.SettingService
	DashboardService    *service.DashboardService
	NotificationService *service.NotificationService
}

// NewContainer builds the full dependency graph over an opened database.
func NewContainer(cfg *config.Config, db *gorm.DB) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		DB:          db,
		QueueClient: queueClient,
	}
	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initRepositories() {
	db := c.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.StoreRepo = repository.NewStoreRepository(db)
	c.RequestRepo = repository.NewRequestRepository(db)
	c.ItemRepo = repository.NewItemRepository(db)
	c.StatusRepo = repository.NewStatusRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
	c.NotificationRepo = repository.NewNotificationRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(c.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
	} else {
		if err := authzService.BootstrapBuiltinRoles(); err != nil {
			logger.Errorw("provider_bootstrap_authz_roles_failed", "error", err)
		}
		c.AuthzService = authzService
	}

	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.RegistrationService = service.NewRegistrationService(c.DB, c.UserRepo, c.StoreRepo, c.AuthService)
	c.SettingService = service.NewSettingService(c.SettingRepo)
	c.CaptchaService = service.NewCaptchaService(c.SettingService, c.Config.Captcha)
	c.RequestService = service.NewRequestService(c.DB, c.RequestRepo, c.StoreRepo, c.QueueClient)
	c.ItemService = service.NewItemService(c.DB, c.ItemRepo)
	c.StatusService = service.NewStatusService(c.DB, c.StatusRepo, c.ItemRepo)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo, c.SettingService)
	c.NotificationService = service.NewNotificationService(c.NotificationRepo, c.StoreRepo, c.RequestRepo)
}

// Close releases container-held resources.
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Warnw("provider_close_queue_client_failed", "error", err)
		}
	}
	if err := cache.Close(); err != nil {
		logger.Warnw("provider_close_redis_failed", "error", err)
	}
}
