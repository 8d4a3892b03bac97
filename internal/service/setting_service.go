package service

import (
	"fmt"
	"strings"

	"github.com/naseej-app/internal/constants"
	"github.com/naseej-app/internal/models"
	"github.com/naseej-app/internal/repository"

	"github.com/shopspring/decimal"
)

// SettingService manages key-value system settings: pricing, company
// profile, and the login captcha toggle.
type SettingService struct {
	repo repository.SettingRepository
}

// NewSettingService creates the setting service.
func NewSettingService(repo repository.SettingRepository) *SettingService {
	return &SettingService{repo: repo}
}

// GetByKey returns a setting's raw value, nil when unset.
func (s *SettingService) GetByKey(key string) (models.JSON, error) {
	setting, err := s.repo.GetByKey(key)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return nil, nil
	}
	return setting.ValueJSON, nil
}

// Update stores a setting value.
func (s *SettingService) Update(key string, value map[string]interface{}) (models.JSON, error) {
	setting, err := s.repo.Upsert(key, models.JSON(value))
	if err != nil {
		return nil, err
	}
	return setting.ValueJSON, nil
}

// UnitPrice returns the configured per-unit price, or the fallback when
// pricing has never been set or holds a malformed value.
func (s *SettingService) UnitPrice(fallback decimal.Decimal) (decimal.Decimal, error) {
	value, err := s.GetByKey(constants.SettingKeyPricing)
	if err != nil {
		return fallback, err
	}
	if value == nil {
		return fallback, nil
	}
	raw, ok := value["unit_price"]
	if !ok {
		return fallback, nil
	}
	switch v := raw.(type) {
	case string:
		price, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil || price.IsNegative() {
			return fallback, nil
		}
		return price, nil
	case float64:
		if v < 0 {
			return fallback, nil
		}
		return decimal.NewFromFloat(v), nil
	default:
		return fallback, nil
	}
}

// SetUnitPrice validates and stores the per-unit price.
func (s *SettingService) SetUnitPrice(price string) (models.JSON, error) {
	parsed, err := decimal.NewFromString(strings.TrimSpace(price))
	if err != nil {
		return nil, fmt.Errorf("%w: unit_price must be a decimal number", ErrInvalidInput)
	}
	if parsed.IsNegative() {
		return nil, fmt.Errorf("%w: unit_price must not be negative", ErrInvalidInput)
	}
	return s.Update(constants.SettingKeyPricing, map[string]interface{}{
		"unit_price": parsed.StringFixed(2),
	})
}

// CompanyProfile returns the public company profile, never nil.
func (s *SettingService) CompanyProfile() (models.JSON, error) {
	value, err := s.GetByKey(constants.SettingKeyCompanyProfile)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return models.JSON{}, nil
	}
	return value, nil
}

// LoginCaptchaEnabled reports whether login requires a captcha. Unset
// means disabled.
func (s *SettingService) LoginCaptchaEnabled() (bool, error) {
	value, err := s.GetByKey(constants.SettingKeyLoginCaptcha)
	if err != nil {
		return false, err
	}
	if value == nil {
		return false, nil
	}
	enabled, ok := value["enabled"].(bool)
	return ok && enabled, nil
}
