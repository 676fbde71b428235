package services

import (
	"errors"
	"strings"

	"github.com/shashiranjanraj/bloom/app/models"
	"github.com/shashiranjanraj/bloom/app/repositories"
	"github.com/shashiranjanraj/bloom/pkg/auth"
	"github.com/shashiranjanraj/bloom/pkg/event"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AuthService handles registration, login and profiles.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService() *AuthService {
	return &AuthService{users: repositories.NewUserRepository()}
}

// RegisterInput is the registration payload, validated at the controller.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone" validate:"nullable,min=5"`
	Address  string `json:"address" validate:"nullable"`
}

// Register creates the user, hashes the password, and fires
// "user.registered" for the welcome-mail listener. Returns the user and a
// fresh JWT.
func (s *AuthService) Register(in RegisterInput) (models.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := s.users.FindByEmail(email); err == nil {
		return models.User{}, "", ErrEmailTaken
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, "", err
	}

	user := models.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    email,
		Password: hash,
		Phone:    strings.TrimSpace(in.Phone),
		Address:  strings.TrimSpace(in.Address),
		Role:     "user",
	}
	if err := s.users.Create(&user); err != nil {
		return models.User{}, "", err
	}

	event.Fire("user.registered", user)

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Login verifies credentials and returns a JWT.
func (s *AuthService) Login(email, password string) (models.User, string, error) {
	user, err := s.users.FindByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return models.User{}, "", ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.Password, password) {
		return models.User{}, "", ErrInvalidCredentials
	}
	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return models.User{}, "", err
	}
	return user, token, nil
}

// Profile fetches a user by id.
func (s *AuthService) Profile(id uint) (models.User, error) {
	return s.users.FindByID(id)
}

// UpdateProfileInput carries the editable profile fields.
type UpdateProfileInput struct {
	Name    string `json:"name" validate:"nullable,min=2"`
	Phone   string `json:"phone" validate:"nullable,min=5"`
	Address string `json:"address" validate:"nullable"`
}

// UpdateProfile applies the non-empty fields to the user.
func (s *AuthService) UpdateProfile(id uint, in UpdateProfileInput) (models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		return models.User{}, err
	}
	if v := strings.TrimSpace(in.Name); v != "" {
		user.Name = v
	}
	if v := strings.TrimSpace(in.Phone); v != "" {
		user.Phone = v
	}
	if v := strings.TrimSpace(in.Address); v != "" {
		user.Address = v
	}
	if err := s.users.Update(&user); err != nil {
		return models.User{}, err
	}
	return user, nil
}
