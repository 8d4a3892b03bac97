package handlers

import (
	"github.com/naseej-app/internal/constants"
	"github.com/naseej-app/internal/http/response"
	"github.com/naseej-app/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// GetCompanyProfile returns the public company profile.
func (h *Handler) GetCompanyProfile(c *gin.Context) {
	profile, err := h.SettingService.CompanyProfile()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, profile)
}

// UpdateCompanyProfileRequest is the profile payload.
type UpdateCompanyProfileRequest struct {
	Name    string `json:"name"`
	LogoURL string `json:"logo_url"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// UpdateCompanyProfile stores the company profile.
func (h *Handler) UpdateCompanyProfile(c *gin.Context) {
	var req UpdateCompanyProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	profile, err := h.SettingService.Update(constants.SettingKeyCompanyProfile, map[string]interface{}{
		"name":     req.Name,
		"logo_url": req.LogoURL,
		"phone":    req.Phone,
		"address":  req.Address,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, profile)
}

// GetPricing returns the configured unit price.
func (h *Handler) GetPricing(c *gin.Context) {
	price, err := h.SettingService.UnitPrice(decimal.Zero)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, gin.H{"unit_price": models.NewMoneyFromDecimal(price)})
}

// UpdatePricingRequest is the pricing payload.
type UpdatePricingRequest struct {
	UnitPrice string `json:"unit_price" binding:"required"`
}

// UpdatePricing stores the per-unit price.
func (h *Handler) UpdatePricing(c *gin.Context) {
	var req UpdatePricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	value, err := h.SettingService.SetUnitPrice(req.UnitPrice)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, value)
}

// UpdateLoginCaptchaRequest is the captcha toggle payload.
type UpdateLoginCaptchaRequest struct {
	Enabled bool `json:"enabled"`
}

// UpdateLoginCaptcha toggles the login captcha requirement.
func (h *Handler) UpdateLoginCaptcha(c *gin.Context) {
	var req UpdateLoginCaptchaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	value, err := h.SettingService.Update(constants.SettingKeyLoginCaptcha, map[string]interface{}{
		"enabled": req.Enabled,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, value)
}
