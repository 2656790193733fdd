package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/cleanit/cleanit_admin/internal/apperrors"
	"github.com/cleanit/cleanit_admin/internal/core/domain"
	portsrepo "github.com/cleanit/cleanit_admin/internal/core/ports/repositories"
	portssvc "github.com/cleanit/cleanit_admin/internal/core/ports/services"
	"github.com/cleanit/cleanit_admin/internal/dto"
	"github.com/cleanit/cleanit_admin/internal/platform/config"
	"github.com/cleanit/cleanit_admin/internal/utils"
)

var ErrWeakPassword = errors.New("password is too weak")

const systemUserID = "system"

// authService issues console access tokens to managers.
type authService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	cfg      *config.Config
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, cfg *config.Config) portssvc.AuthSvc {
	return &authService{userRepo: userRepo, cfg: cfg}
}

var _ portssvc.AuthSvc = (*authService)(nil)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	email := normalizeEmail(req.Email)
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Login attempt for unknown email")
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to look up user for login")
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user.PasswordHash == "" || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.LogWarn(ctx, "Login attempt with wrong password", slog.String("user_id", user.UserID))
		return nil, apperrors.ErrUnauthorized
	}
	return s.issueToken(ctx, user)
}

func (s *authService) LoginWithIdentity(ctx context.Context, identity domain.ExternalIdentity) (*dto.LoginResponse, error) {
	if !identity.EmailVerified || identity.Email == "" {
		s.LogWarn(ctx, "External sign-in with unverified email", slog.String("provider", string(identity.Provider)))
		return nil, fmt.Errorf("%w: email not verified by %s", apperrors.ErrUnauthorized, identity.Provider)
	}
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(identity.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "External sign-in for unknown email", slog.String("provider", string(identity.Provider)))
			return nil, apperrors.ErrUnauthorized
		}
		s.LogError(ctx, err, "Failed to look up user for external sign-in")
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return s.issueToken(ctx, user)
}

// issueToken checks that user may use the console and signs its access token.
func (s *authService) issueToken(ctx context.Context, user *domain.User) (*dto.LoginResponse, error) {
	if user.Role() != domain.RoleManager || !user.IsActive {
		s.LogWarn(ctx, "Login refused for non-manager account",
			slog.String("user_id", user.UserID),
			slog.String("role", string(user.Role())))
		return nil, apperrors.ErrForbidden
	}

	token, expiresAt, err := utils.GenerateJWT(user.UserID, string(domain.RoleManager), s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	s.LogInfo(ctx, "Manager logged in", slog.String("user_id", user.UserID))
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.ToUserResponse(*user),
	}, nil
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest, creatorID string) (*domain.User, error) {
	if utils.PasswordStrength(req.Password) < utils.MinPasswordStrength {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrWeakPassword)
	}
	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "Failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         strings.TrimSpace(req.Name),
		Email:        normalizeEmail(req.Email),
		IsActive:     true,
		IsVerified:   true,
		Profile:      domain.ManagerProfile{Department: req.Department},
		PasswordHash: hash,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorID,
		},
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			s.LogWarn(ctx, "Manager email already registered")
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save manager")
		return nil, fmt.Errorf("failed to save manager: %w", err)
	}

	s.LogInfo(ctx, "Manager registered",
		slog.String("user_id", user.UserID),
		slog.String("created_by", creatorID))
	return &user, nil
}

func (s *authService) EnsureManager(ctx context.Context, name, email, password string) error {
	if email == "" {
		return nil
	}
	_, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to look up bootstrap manager: %w", err)
	}
	if name == "" {
		name = "Administrator"
	}
	_, err = s.Register(ctx, dto.RegisterRequest{Name: name, Email: email, Password: password}, systemUserID)
	return err
}
