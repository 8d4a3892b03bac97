package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/naseej-app/internal/config"
	"github.com/naseej-app/internal/constants"
	"github.com/naseej-app/internal/models"
	"github.com/naseej-app/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCaptchaServiceTest(t *testing.T) (*SettingService, *CaptchaService) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	settingService := NewSettingService(repository.NewSettingRepository(db))
	captchaService := NewCaptchaService(settingService, config.CaptchaConfig{
		Length: 4,
		Width:  120,
		Height: 48,
	})
	return settingService, captchaService
}

func TestCaptchaRequiredFollowsSetting(t *testing.T) {
	settingService, svc := setupCaptchaServiceTest(t)

	required, err := svc.Required()
	if err != nil {
		t.Fatalf("required failed: %v", err)
	}
	if required {
		t.Fatalf("captcha must default to not required")
	}

	if _, err := settingService.Update(constants.SettingKeyLoginCaptcha, map[string]interface{}{"enabled": true}); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	required, err = svc.Required()
	if err != nil {
		t.Fatalf("required failed: %v", err)
	}
	if !required {
		t.Fatalf("captcha should be required after toggle")
	}
}

func TestCaptchaGenerateAndVerify(t *testing.T) {
	_, svc := setupCaptchaServiceTest(t)

	challenge, err := svc.GenerateImageChallenge()
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if challenge.CaptchaID == "" || challenge.ImageBase64 == "" {
		t.Fatalf("challenge must carry id and image: %+v", challenge)
	}

	if err := svc.Verify(challenge.CaptchaID, "000000"); !errors.Is(err, ErrCaptchaInvalid) {
		t.Fatalf("wrong answer want ErrCaptchaInvalid got %v", err)
	}
	if err := svc.Verify("", "1234"); !errors.Is(err, ErrCaptchaInvalid) {
		t.Fatalf("blank id want ErrCaptchaInvalid got %v", err)
	}
	if err := svc.Verify("ghost-id", "1234"); !errors.Is(err, ErrCaptchaInvalid) {
		t.Fatalf("unknown id want ErrCaptchaInvalid got %v", err)
	}
}
