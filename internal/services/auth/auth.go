// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/subtrack-app/subtrack/internal/lib/password"
	"github.com/subtrack-app/subtrack/internal/models"
	"github.com/subtrack-app/subtrack/internal/storage/repository"
)

// ErrInvalidCredentials — неверная пара username/password.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrUserExists — имя пользователя уже занято.
var ErrUserExists = repository.ErrUserExists

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя.
	CreateUser(ctx context.Context, user models.User) error

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUser возвращает пользователя по UID.
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// AuthService отвечает за регистрацию и проверку учётных данных.
type AuthService struct {
	users UserRepository
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register создает нового пользователя со свежим uuid и bcrypt-хэшем пароля.
// Занятое имя пользователя — ErrUserExists.
func (s *AuthService) Register(ctx context.Context, username, rawPassword string) (*models.User, error) {
	hashed, err := password.Hash(rawPassword)
	if err != nil {
		return nil, err
	}
	user := models.User{
		UID:          uuid.New().String(),
		Username:     username,
		PasswordHash: hashed,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login проверяет пароль пользователя и возвращает его учётную запись.
// Несуществующее имя и неверный пароль неразличимы для вызывающего.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string) (*models.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := password.Compare(user.PasswordHash, rawPassword); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetUser возвращает пользователя по UID из привязки сессии.
func (s *AuthService) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	return s.users.GetUser(ctx, userUID)
}
