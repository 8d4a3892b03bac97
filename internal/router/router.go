package router

import (
	"fmt"
	"strings"

	"github.com/naseej-app/internal/cache"
	"github.com/naseej-app/internal/config"
	"github.com/naseej-app/internal/constants"
	"github.com/naseej-app/internal/http/handlers"
	"github.com/naseej-app/internal/logger"
	"github.com/naseej-app/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter wires middleware and routes.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	h := handlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(200, gin.H{"status": "ok"})
	})

	apiV1 := r.Group("/api/v1")
	{
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", h.Register)
			auth.POST("/login", RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndJSONField("email")), h.Login)
			auth.GET("/captcha", h.Captcha)
		}

		// Read-only lookups available without a token.
		apiV1.GET("/statuses", h.ListStatuses)
		apiV1.GET("/settings/company-profile", h.GetCompanyProfile)

		authed := apiV1.Group("")
		authed.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			authed.GET("/me", h.Me)
			authed.GET("/notifications", h.ListNotifications)
			authed.PUT("/notifications/:id/read", h.MarkNotificationRead)

			// Everything below is role-checked against the policy table.
			rbac := authed.Group("")
			rbac.Use(RBACMiddleware(c.AuthzService))
			{
				rbac.POST("/requests", h.CreateRequest)
				rbac.GET("/requests", h.ListRequests)
				rbac.GET("/requests/history", h.RequestHistory)
				rbac.GET("/requests/:id", h.GetRequest)
				rbac.PUT("/requests/:id/approve", h.ApproveRequest)
				rbac.PUT("/requests/:id/reject", h.RejectRequest)
				rbac.PUT("/requests/:id/cancel", h.CancelRequest)
				rbac.PUT("/requests/:id/prepare", h.PrepareRequest)
				rbac.PUT("/requests/:id/ready", h.ReadyRequest)
				rbac.PUT("/requests/:id/dispatch", h.DispatchRequest)
				rbac.PUT("/requests/:id/deliver", h.DeliverRequest)
				rbac.PUT("/requests/:id/complete", h.CompleteRequest)
				rbac.PUT("/requests/:id/notes", h.UpdateRequestNotes)

				rbac.GET("/items", h.ListItems)
				rbac.GET("/items/:id", h.GetItem)
				rbac.PATCH("/items/:id/status", h.UpdateItemStatus)
				rbac.PATCH("/items/:id/assign", h.AssignItem)

				rbac.POST("/statuses", h.CreateStatus)
				rbac.PUT("/statuses/reorder", h.ReorderStatuses)
				rbac.PUT("/statuses/:id", h.UpdateStatus)
				rbac.DELETE("/statuses/:id", h.DeleteStatus)

				rbac.PUT("/settings/company-profile", h.UpdateCompanyProfile)
				rbac.GET("/settings/pricing", h.GetPricing)
				rbac.PUT("/settings/pricing", h.UpdatePricing)
				rbac.PUT("/settings/login-captcha", h.UpdateLoginCaptcha)

				rbac.GET("/dashboard/overview", h.DashboardOverview)
			}
		}
	}

	return r
}
