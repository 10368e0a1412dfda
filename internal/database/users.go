package database

import (
	"errors"
	"fmt"
	"strings"

	"renovation-crm/internal/logger"
	"renovation-crm/internal/models"
	"renovation-crm/internal/security"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// dummyHash is verified against when the email is unknown so that a miss
// costs the same PBKDF2 work as a wrong password.
const dummyHash = "00000000000000000000000000000000:" +
	"00000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000"

func ListUsers() ([]models.User, error) {
	var users []models.User
	if err := DB.Order("created_at asc").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// FindUserByEmail matches case-insensitively.
func FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := DB.Where("LOWER(email) = LOWER(?)", strings.TrimSpace(email)).First(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func GetUser(id string) (*models.User, error) {
	var user models.User
	if err := DB.First(&user, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// CreateUser stores a new account. Emails are kept trimmed and lower-cased;
// an empty name becomes the local part of the email.
func CreateUser(email, password string, role models.UserRole, name string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if _, err := FindUserByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}

	user := models.User{
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Name:         name,
	}
	if err := DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// VerifyUser returns the account only when the password matches its own hash.
func VerifyUser(email, password string) (*models.User, error) {
	user, err := FindUserByEmail(email)
	if errors.Is(err, ErrNotFound) {
		security.VerifyPassword(password, dummyHash)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !security.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func CreateSession(userID string) (string, error) {
	token, err := security.NewSessionToken()
	if err != nil {
		return "", err
	}
	if err := DB.Create(&models.Session{Token: token, UserID: userID}).Error; err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return token, nil
}

// GetSessionUser resolves a bearer token to its user.
func GetSessionUser(token string) (*models.User, error) {
	if token == "" {
		return nil, ErrNotFound
	}
	var session models.Session
	if err := DB.Preload("User").First(&session, "token = ?", token).Error; err != nil {
		return nil, notFound(err)
	}
	return &session.User, nil
}

// EnsureAdmin creates the bootstrap admin when no admin account exists yet.
func EnsureAdmin(email, password string) error {
	var count int64
	if err := DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return fmt.Errorf("check admin user: %w", err)
	}
	if count > 0 {
		return nil
	}

	user, err := CreateUser(email, password, models.RoleAdmin, "Admin")
	if err != nil {
		return err
	}
	logger.L().Info("created bootstrap admin", zap.String("email", logger.MaskEmail(user.Email)))
	return nil
}
