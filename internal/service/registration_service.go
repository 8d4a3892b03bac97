package service

import (
	"fmt"
	"strings"

	"github.com/naseej-app/internal/constants"
	"github.com/naseej-app/internal/models"
	"github.com/naseej-app/internal/repository"

	"gorm.io/gorm"
)

// RegistrationService signs up customers together with the store they own.
type RegistrationService struct {
	db          *gorm.DB
	userRepo    repository.UserRepository
	storeRepo   repository.StoreRepository
	authService *AuthService
}

// NewRegistrationService creates the registration service.
func NewRegistrationService(db *gorm.DB, userRepo repository.UserRepository, storeRepo repository.StoreRepository, authService *AuthService) *RegistrationService {
	return &RegistrationService{
		db:          db,
		userRepo:    userRepo,
		storeRepo:   storeRepo,
		authService: authService,
	}
}

// RegisterInput is the signup payload.
type RegisterInput struct {
	Name         string
	Email        string
	Password     string
	Phone        string
	StoreName    string
	StoreAddress string
	StorePhone   string
}

// Register creates a customer account and its store in one transaction.
func (s *RegistrationService) Register(input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}
	if len(input.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrInvalidInput)
	}
	name := strings.TrimSpace(input.Name)
	storeName := strings.TrimSpace(input.StoreName)
	if name == "" || storeName == "" {
		return nil, fmt.Errorf("%w: name and store name are required", ErrInvalidInput)
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.authService.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	var role models.Role
	if err := s.db.Where("name = ?", constants.RoleCustomer).First(&role).Error; err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Phone:        strings.TrimSpace(input.Phone),
		RoleID:       role.ID,
		Role:         &role,
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(&models.Store{
			Name:        storeName,
			OwnerUserID: user.ID,
			Address:     strings.TrimSpace(input.StoreAddress),
			Phone:       strings.TrimSpace(input.StorePhone),
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}
