package handlers

import (
	"time"

	"github.com/naseej-app/internal/cache"
	"github.com/naseej-app/internal/http/response"
	"github.com/naseej-app/internal/service"

	"github.com/gin-gonic/gin"
)

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required"`
	Password     string `json:"password" binding:"required"`
	Phone        string `json:"phone"`
	StoreName    string `json:"store_name" binding:"required"`
	StoreAddress string `json:"store_address"`
	StorePhone   string `json:"store_phone"`
}

// Register signs up a customer together with their store.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	user, err := h.RegistrationService.Register(service.RegisterInput{
		Name:         req.Name,
		Email:        req.Email,
		Password:     req.Password,
		Phone:        req.Phone,
		StoreName:    req.StoreName,
		StoreAddress: req.StoreAddress,
		StorePhone:   req.StorePhone,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	token, expiresAt, err := h.AuthService.GenerateJWT(user)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Created(c, gin.H{
		"user":       user,
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}

// LoginRequest is the login payload. Captcha fields are required only when
// the login captcha setting is on.
type LoginRequest struct {
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// Login verifies credentials and issues a token.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	required, err := h.CaptchaService.Required()
	if err != nil {
		requestLog(c).Warnw("login_captcha_setting_read_failed", "error", err)
	}
	if required {
		if err := h.CaptchaService.Verify(req.CaptchaID, req.CaptchaCode); err != nil {
			respondServiceError(c, err)
			return
		}
	}

	user, token, expiresAt, err := h.AuthService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if err := cache.SetUserAuthState(c.Request.Context(), cache.BuildUserAuthState(user)); err != nil {
		requestLog(c).Warnw("login_auth_state_cache_failed", "user_id", user.ID, "error", err)
	}

	response.Success(c, gin.H{
		"user":       user,
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}

// Captcha issues an image challenge for the login form.
func (h *Handler) Captcha(c *gin.Context) {
	challenge, err := h.CaptchaService.GenerateImageChallenge()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, challenge)
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	user, err := h.AuthService.GetUser(actor.UserID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if user == nil {
		response.Unauthorized(c, "account no longer exists")
		return
	}
	response.Success(c, user)
}
