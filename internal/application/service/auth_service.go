package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sangkips/nota-perusahaan/internal/domain/entity"
	"github.com/sangkips/nota-perusahaan/internal/domain/repository"
	"github.com/sangkips/nota-perusahaan/pkg/apperror"
	"github.com/sangkips/nota-perusahaan/pkg/utils"
	"go.uber.org/zap"
)

const (
	minUsernameLength = 3
	minPasswordLength = 6
)

// AuthService handles account registration and sessions
type AuthService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
	log        *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtManager *utils.JWTManager, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
		log:        log,
	}
}

// RegisterInput represents the registration input
type RegisterInput struct {
	FullName        string
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
}

// Register creates a new user account
func (s *AuthService) Register(ctx context.Context, input *RegisterInput) (*entity.User, error) {
	fullName := strings.TrimSpace(input.FullName)
	username := strings.TrimSpace(input.Username)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	var errs []apperror.FieldError
	if fullName == "" {
		errs = append(errs, apperror.FieldError{Field: "full_name", Message: "Full name is required"})
	}
	if len(username) < minUsernameLength {
		errs = append(errs, apperror.FieldError{Field: "username", Message: "Username must be at least 3 characters"})
	}
	if _, err := mail.ParseAddress(email); err != nil {
		errs = append(errs, apperror.FieldError{Field: "email", Message: "A valid email is required"})
	}
	if len(input.Password) < minPasswordLength {
		errs = append(errs, apperror.FieldError{Field: "password", Message: "Password must be at least 6 characters"})
	}
	if input.ConfirmPassword != "" && input.ConfirmPassword != input.Password {
		errs = append(errs, apperror.FieldError{Field: "confirm_password", Message: "Passwords do not match"})
	}
	if len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Username already taken")
	}
	existing, err = s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		FullName: fullName,
		Username: username,
		Email:    email,
		Password: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("user registered", zap.String("username", username))
	return user, nil
}

// LoginInput represents the login input. Login accepts the username or the
// email address.
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput represents the login output
type LoginOutput struct {
	User  *entity.User
	Token string
}

// Login checks the credentials and issues a session token
func (s *AuthService) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	login := strings.TrimSpace(input.Username)
	if login == "" || input.Password == "" {
		return nil, apperror.NewFieldError("username", "Username and password are required")
	}

	user, err := s.userRepo.GetByUsername(ctx, login)
	if err != nil {
		return nil, err
	}
	if user == nil && strings.Contains(login, "@") {
		user, err = s.userRepo.GetByEmail(ctx, strings.ToLower(login))
		if err != nil {
			return nil, err
		}
	}
	if user == nil || !utils.CheckPasswordHash(input.Password, user.Password) {
		return nil, apperror.ErrInvalidCredentials
	}

	token, err := s.jwtManager.GenerateSessionToken(user.ID, user.Username, user.FullName)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{User: user, Token: token}, nil
}

// Authenticate validates a session token and returns its claims
func (s *AuthService) Authenticate(token string) (*utils.SessionClaims, error) {
	claims, err := s.jwtManager.ValidateSessionToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperror.ErrTokenExpired
		}
		return nil, apperror.ErrInvalidToken
	}
	return claims, nil
}

// CurrentUser gets the signed-in user
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// SessionTTLSeconds is the cookie lifetime matching issued tokens.
func (s *AuthService) SessionTTLSeconds() int {
	return int(s.jwtManager.Expiry().Seconds())
}
