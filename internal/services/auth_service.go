// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/shopworks/storefront-backend/internal/apperrors"
	"github.com/shopworks/storefront-backend/internal/config"
	"github.com/shopworks/storefront-backend/internal/models"
	"github.com/shopworks/storefront-backend/internal/utils"
)

type AuthService struct {
	db  *gorm.DB
	cfg *config.Config
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func NewAuthService(db *gorm.DB, cfg *config.Config) *AuthService {
	return &AuthService{
		db:  db,
		cfg: cfg,
	}
}

// Register creates an account and issues its session token. A duplicate
// email is a Conflict whether it is caught by the pre-check or by the
// unique index racing a concurrent registration.
func (s *AuthService) Register(req *RegisterRequest) (*models.User, string, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, "", apperrors.InvalidRequest(utils.ValidationMessage(err))
	}

	var existing models.User
	if err := s.db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, "", apperrors.Conflict("User already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("database error: %w", err)
	}

	user := &models.User{
		Name:  req.Name,
		Email: req.Email,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, "", apperrors.Conflict("User already exists")
		}
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) Login(req *LoginRequest) (*models.User, string, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, "", apperrors.InvalidRequest(utils.ValidationMessage(err))
	}

	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperrors.Unauthenticated("Invalid email or password")
		}
		return nil, "", fmt.Errorf("database error: %w", err)
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, "", apperrors.Unauthenticated("Invalid email or password")
	}

	token, err := s.issueToken(&user)
	if err != nil {
		return nil, "", err
	}
	return &user, token, nil
}

func (s *AuthService) TokenTTL() time.Duration {
	return time.Duration(s.cfg.JWT.TTLDays) * 24 * time.Hour
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	token, err := utils.GenerateSessionToken(user.ID, s.TokenTTL())
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return token, nil
}

// isUniqueViolation recognizes a duplicate-key write. Relies on the
// connection being opened with TranslateError so the driver's unique
// violation surfaces as gorm.ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
