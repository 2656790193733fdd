package services

import (
	"context"

	"github.com/cleanit/cleanit_admin/internal/core/domain"
	"github.com/cleanit/cleanit_admin/internal/dto"
)

// AuthSvc authenticates console managers.
type AuthSvc interface {
	// Login returns apperrors.ErrUnauthorized for bad credentials and
	// apperrors.ErrForbidden for accounts that may not use the console.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	// LoginWithIdentity signs in the existing manager whose email an external provider
	// verified. Unknown or unverified emails fail with apperrors.ErrUnauthorized.
	LoginWithIdentity(ctx context.Context, identity domain.ExternalIdentity) (*dto.LoginResponse, error)
	// Register creates a manager account; weak passwords fail with apperrors.ErrValidation.
	Register(ctx context.Context, req dto.RegisterRequest, creatorID string) (*domain.User, error)
	// EnsureManager creates the bootstrap manager when no account uses email yet.
	EnsureManager(ctx context.Context, name, email, password string) error
}

// GoogleSignInSvc runs the Google OAuth authorization code flow.
type GoogleSignInSvc interface {
	// Enabled reports whether Google client credentials are configured.
	Enabled() bool
	// LoginURL returns the Google consent URL carrying state.
	LoginURL(state string) string
	// Exchange trades an authorization code for the identity in Google's ID token.
	// Rejected codes and invalid ID tokens fail with apperrors.ErrUnauthorized.
	Exchange(ctx context.Context, code string) (domain.ExternalIdentity, error)
}
