package service

import (
	"time"

	"github.com/naseej-app/internal/config"

	"github.com/mojocn/base64Captcha"
)

// CaptchaImageChallenge is one generated image challenge.
type CaptchaImageChallenge struct {
	CaptchaID   string `json:"captcha_id"`
	ImageBase64 string `json:"image_base64"`
}

// CaptchaService generates and verifies login image captchas. Whether the
// login flow demands one is decided by the system setting, read through
// SettingService at request time.
type CaptchaService struct {
	settingService *SettingService
	cfg            config.CaptchaConfig
	store          base64Captcha.Store
}

// NewCaptchaService creates the captcha service with an in-memory
// challenge store.
func NewCaptchaService(settingService *SettingService, cfg config.CaptchaConfig) *CaptchaService {
	maxStore := cfg.MaxStore
	if maxStore <= 0 {
		maxStore = base64Captcha.GCLimitNumber
	}
	expire := time.Duration(cfg.ExpireSeconds) * time.Second
	if expire <= 0 {
		expire = base64Captcha.Expiration
	}
	return &CaptchaService{
		settingService: settingService,
		cfg:            cfg,
		store:          base64Captcha.NewMemoryStore(maxStore, expire),
	}
}

// Required reports whether login must present a captcha.
func (s *CaptchaService) Required() (bool, error) {
	if s == nil || s.settingService == nil {
		return false, nil
	}
	return s.settingService.LoginCaptchaEnabled()
}

// GenerateImageChallenge creates a digit captcha and returns its id plus
// the rendered image.
func (s *CaptchaService) GenerateImageChallenge() (*CaptchaImageChallenge, error) {
	driver := base64Captcha.NewDriverDigit(
		s.cfg.Height,
		s.cfg.Width,
		s.cfg.Length,
		0.7,
		s.cfg.ShowLine,
	)
	captcha := base64Captcha.NewCaptcha(driver, s.store)
	id, b64, _, err := captcha.Generate()
	if err != nil {
		return nil, err
	}
	return &CaptchaImageChallenge{CaptchaID: id, ImageBase64: b64}, nil
}

// Verify consumes a challenge answer. Challenges are single use.
func (s *CaptchaService) Verify(captchaID, code string) error {
	if captchaID == "" || code == "" {
		return ErrCaptchaInvalid
	}
	if !s.store.Verify(captchaID, code, true) {
		return ErrCaptchaInvalid
	}
	return nil
}
