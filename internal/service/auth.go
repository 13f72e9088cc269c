package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shenikar/incident_reporting_system/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth.go -destination=../handler/http/v1/mocks/auth_mock.go -package=mocks

// RegisterInput - данные для регистрации пользователя
type RegisterInput struct {
	FullName string
	Email    string
	Password string
	Phone    string
	Role     models.Role
}

// AuthResult - выпущенный токен и пользователь, которому он принадлежит
type AuthResult struct {
	Token string
	User  *models.User
}

// AuthService определяет контракт регистрации и входа
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Me(ctx context.Context, email string) (*models.User, error)
	UpdatePushToken(ctx context.Context, email, token string) error
}

type authService struct {
	users  UserRepository
	tokens TokenIssuer
	logger *logrus.Logger
}

func NewAuthService(users UserRepository, tokens TokenIssuer, logger *logrus.Logger) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Register создает активного пользователя и выпускает для него токен
func (s *authService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	log := s.logger.WithFields(logrus.Fields{
		"service": "auth",
		"method":  "Register",
		"role":    input.Role,
	})
	log.Info("Attempting to register a new user")

	if !input.Role.Valid() {
		return nil, fmt.Errorf("service: unknown role %q: %w", input.Role, ErrValidation)
	}

	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		log.Warn("Email already registered")
		return nil, fmt.Errorf("service: email already registered: %w", ErrConflict)
	case !errors.Is(err, ErrNotFound):
		log.WithError(err).Error("Failed to check existing user")
		return nil, fmt.Errorf("service: could not check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("service: could not hash password: %w", err)
	}

	user := &models.User{
		FullName:     input.FullName,
		Email:        email,
		PasswordHash: string(hash),
		Phone:        input.Phone,
		Role:         input.Role,
		Active:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		log.WithError(err).Error("Failed to create user in repository")
		return nil, fmt.Errorf("service: could not create user: %w", err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("service: could not issue token: %w", err)
	}

	log.WithField("user_id", user.ID).Info("User registered successfully")
	return &AuthResult{Token: token, User: user}, nil
}

// Login проверяет учетные данные и выпускает токен
func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "auth",
		"method":  "Login",
	})

	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Warn("Login attempt for unknown email")
			return nil, fmt.Errorf("service: invalid credentials: %w", ErrUnauthorized)
		}
		return nil, fmt.Errorf("service: could not load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.WithField("user_id", user.ID).Warn("Login attempt with wrong password")
		return nil, fmt.Errorf("service: invalid credentials: %w", ErrUnauthorized)
	}
	if !user.Active {
		log.WithField("user_id", user.ID).Warn("Login attempt for inactive user")
		return nil, fmt.Errorf("service: user is inactive: %w", ErrUnauthorized)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("service: could not issue token: %w", err)
	}
	return &AuthResult{Token: token, User: user}, nil
}

func (s *authService) Me(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("service: user not found: %w", err)
	}
	return user, nil
}

// UpdatePushToken регистрирует токен устройства. Пустой токен отключает push.
func (s *authService) UpdatePushToken(ctx context.Context, email, token string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("service: user not found: %w", err)
	}

	var value *string
	if token = strings.TrimSpace(token); token != "" {
		value = &token
	}
	if err := s.users.UpdatePushToken(ctx, user.ID, value); err != nil {
		return fmt.Errorf("service: could not update push token: %w", err)
	}
	return nil
}
