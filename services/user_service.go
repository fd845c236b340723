package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hotel-ops-backend/models"
	"hotel-ops-backend/utils"

	"gorm.io/gorm"
)

const (
	RoleStaff = "staff"
	RoleAdmin = "admin"
)

type UserServiceInterface interface {
	Register(username, password, role, adminPassword string) (models.User, error)
	Login(username, password string) (models.User, string, error)
	List() ([]models.User, error)
	Delete(username string) error
}

type UserService struct {
	DB            *gorm.DB
	jwtSecret     string
	adminPassword string
	tokenTTL      time.Duration
}

func NewUserService(db *gorm.DB, jwtSecret, adminPassword string) UserServiceInterface {
	return &UserService{
		DB:            db,
		jwtSecret:     jwtSecret,
		adminPassword: adminPassword,
		tokenTTL:      time.Hour,
	}
}

// Register creates a user. The admin role is gated behind the deployment's
// ADMIN_PASSWORD so a public registration endpoint cannot mint admins.
func (s *UserService) Register(username, password, role, adminPassword string) (models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.User{}, fmt.Errorf("%w: username and password are required", ErrValidation)
	}
	if role == "" {
		role = RoleStaff
	}
	if role != RoleStaff && role != RoleAdmin {
		return models.User{}, fmt.Errorf("%w: unknown role %q", ErrValidation, role)
	}
	if role == RoleAdmin {
		if s.adminPassword == "" || adminPassword != s.adminPassword {
			return models.User{}, fmt.Errorf("%w: invalid admin password", ErrForbidden)
		}
	}

	var existing models.User
	err := s.DB.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return models.User{}, fmt.Errorf("%w: username %s already exists", ErrConflict, username)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := models.User{Username: username, Password: hash, Role: role}
	if err := s.DB.Create(&user).Error; err != nil {
		return models.User{}, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login verifies credentials and returns the user plus a signed access
// token. Unknown user and wrong password are indistinguishable to the
// caller.
func (s *UserService) Login(username, password string) (models.User, string, error) {
	var user models.User
	if err := s.DB.Where("username = ?", strings.TrimSpace(username)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, "", fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		return models.User{}, "", fmt.Errorf("failed to load user: %w", err)
	}
	if !utils.VerifyPassword(user.Password, password) {
		return models.User{}, "", fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	token, err := utils.NewAccessToken(s.jwtSecret, user.Username, user.Role, s.tokenTTL)
	if err != nil {
		return models.User{}, "", fmt.Errorf("failed to sign token: %w", err)
	}
	return user, token, nil
}

func (s *UserService) List() ([]models.User, error) {
	var users []models.User
	if err := s.DB.Order("username ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	return users, nil
}

// Delete removes a user for good. The delete is unscoped: a soft-deleted
// row would keep holding the unique username and block re-registration.
func (s *UserService) Delete(username string) error {
	result := s.DB.Unscoped().Where("username = ?", username).Delete(&models.User{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete user %s: %w", username, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: user %s", ErrNotFound, username)
	}
	return nil
}
