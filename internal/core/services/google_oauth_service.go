package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"

	"github.com/cleanit/cleanit_admin/internal/apperrors"
	"github.com/cleanit/cleanit_admin/internal/core/domain"
	portssvc "github.com/cleanit/cleanit_admin/internal/core/ports/services"
	"github.com/cleanit/cleanit_admin/internal/platform/config"
)

// IDTokenValidator verifies a Google ID token for audience.
type IDTokenValidator func(ctx context.Context, idToken, audience string) (*idtoken.Payload, error)

// googleSignInService implements the GoogleSignInSvc.
type googleSignInService struct {
	BaseService
	oauth2Config *oauth2.Config
	validate     IDTokenValidator
}

// GoogleSignInOption configures the Google sign-in service.
type GoogleSignInOption func(*googleSignInService)

// WithGoogleEndpoint replaces Google's OAuth endpoints.
func WithGoogleEndpoint(endpoint oauth2.Endpoint) GoogleSignInOption {
	return func(s *googleSignInService) {
		s.oauth2Config.Endpoint = endpoint
	}
}

// WithIDTokenValidator replaces idtoken.Validate.
func WithIDTokenValidator(v IDTokenValidator) GoogleSignInOption {
	return func(s *googleSignInService) {
		s.validate = v
	}
}

// NewGoogleSignInService creates a new Google sign-in service from the Google client settings in cfg.
func NewGoogleSignInService(cfg *config.Config, opts ...GoogleSignInOption) portssvc.GoogleSignInSvc {
	s := &googleSignInService{
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		validate: idtoken.Validate,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ portssvc.GoogleSignInSvc = (*googleSignInService)(nil)

func (s *googleSignInService) Enabled() bool {
	c := s.oauth2Config
	return c.ClientID != "" && c.ClientSecret != "" && c.RedirectURL != ""
}

func (s *googleSignInService) LoginURL(state string) string {
	return s.oauth2Config.AuthCodeURL(state, oauth2.SetAuthURLParam("prompt", "select_account"))
}

func (s *googleSignInService) Exchange(ctx context.Context, code string) (domain.ExternalIdentity, error) {
	if !s.Enabled() {
		return domain.ExternalIdentity{}, errors.New("google sign-in is not configured")
	}

	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && (retrieveErr.ErrorCode == "invalid_grant" ||
			(retrieveErr.Response != nil && retrieveErr.Response.StatusCode == http.StatusBadRequest)) {
			s.LogWarn(ctx, "Google rejected authorization code", slog.String("error_code", retrieveErr.ErrorCode))
			return domain.ExternalIdentity{}, apperrors.NewAppError(http.StatusUnauthorized,
				"Invalid or expired authorization code", fmt.Errorf("%w: %w", apperrors.ErrUnauthorized, err))
		}
		s.LogError(ctx, err, "Failed to exchange authorization code with Google")
		return domain.ExternalIdentity{}, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return domain.ExternalIdentity{}, errors.New("id_token missing from google token response")
	}

	payload, err := s.validate(ctx, rawIDToken, s.oauth2Config.ClientID)
	if err != nil {
		s.LogWarn(ctx, "Google ID token validation failed", slog.String("error", err.Error()))
		return domain.ExternalIdentity{}, fmt.Errorf("%w: invalid google id token: %w", apperrors.ErrUnauthorized, err)
	}

	email, _ := payload.Claims["email"].(string)
	name, _ := payload.Claims["name"].(string)
	verified, _ := payload.Claims["email_verified"].(bool)
	if email == "" || payload.Subject == "" {
		return domain.ExternalIdentity{}, fmt.Errorf("%w: google id token lacks email or subject", apperrors.ErrUnauthorized)
	}

	return domain.ExternalIdentity{
		Provider:      domain.ProviderGoogle,
		Subject:       payload.Subject,
		Email:         email,
		Name:          name,
		EmailVerified: verified,
	}, nil
}
