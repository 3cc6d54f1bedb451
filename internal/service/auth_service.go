package service

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskboard/internal/auth"
	apperrors "taskboard/internal/errors"
	"taskboard/internal/model"
	"taskboard/internal/repository"
)

const bcryptCost = 10

const passwordPolicyMessage = "Password must be at least 8 characters long, contain at least one uppercase letter, one lowercase letter, and one number."

var (
	// ErrInvalidCredentials is returned when email or password is incorrect.
	// Nonexistent user and wrong password are indistinguishable on purpose.
	ErrInvalidCredentials = errors.New("Invalid credentials")
)

// AuthService handles registration, login and token revocation.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, err error)
	Logout(ctx context.Context, tokenID string, ttl time.Duration) error
	Me(ctx context.Context, userID string) (*model.User, *model.Profile, error)
}

type authService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	jwtService  *auth.JWTService
	denylist    auth.TokenDenylist
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, jwtService *auth.JWTService, denylist auth.TokenDenylist) AuthService {
	return &authService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		jwtService:  jwtService,
		denylist:    denylist,
	}
}

// Register creates a credential record and its application profile. The
// password policy runs before any store access.
func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.NewInvalidInput("Registration failed",
			fmt.Sprintf("Email '%s' is already taken.", email))
	}
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
	}
	// Credential and profile land in one transaction so a failed profile
	// write never leaves an orphaned credential behind.
	err = s.userRepo.WithTransaction(ctx, func(ctx context.Context, users repository.UserRepository, profiles repository.ProfileRepository) error {
		if err := users.Create(ctx, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		if err := profiles.Create(ctx, &model.Profile{UserID: user.ID, Name: name}); err != nil {
			return fmt.Errorf("create profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Login authenticates a user and returns a signed access token whose
// subject claim is the user id.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	var name string
	var admin bool
	if profile, err := s.profileRepo.FindByUserID(ctx, user.ID); err == nil {
		name = profile.Name
		admin = profile.IsAdmin
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email, name, admin)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

// Logout revokes the presented token id until its natural expiry.
func (s *authService) Logout(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return apperrors.ErrUnauthorized
	}
	return s.denylist.Revoke(ctx, tokenID, ttl)
}

// Me returns the caller's credential and profile records.
func (s *authService) Me(ctx context.Context, userID string) (*model.User, *model.Profile, error) {
	if userID == "" {
		return nil, nil, apperrors.ErrUnauthorized
	}
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, apperrors.ErrNotFound
		}
		return nil, nil, err
	}
	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			// A credential without a profile is still a valid caller,
			// same as in Login.
			return user, &model.Profile{UserID: userID}, nil
		}
		return nil, nil, err
	}
	return user, profile, nil
}

// validatePassword enforces the registration password policy: minimum 8
// characters with at least one digit, one uppercase and one lowercase letter.
func validatePassword(password string) error {
	var hasDigit, hasUpper, hasLower bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		}
	}
	if len(password) < 8 || !hasDigit || !hasUpper || !hasLower {
		return apperrors.NewInvalidInput(passwordPolicyMessage)
	}
	return nil
}
