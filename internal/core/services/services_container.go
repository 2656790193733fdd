package services

import (
	"fmt"

	"github.com/cleanit/cleanit_admin/internal/core/metrics"
	portsrepo "github.com/cleanit/cleanit_admin/internal/core/ports/repositories"
	portssvc "github.com/cleanit/cleanit_admin/internal/core/ports/services"
	"github.com/cleanit/cleanit_admin/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) (*portssvc.ServiceContainer, error) {
	// Every metric shares one calculator so pricing and time zone stay consistent.
	calc, err := metrics.NewCalculator(cfg.Metrics)
	if err != nil {
		return nil, fmt.Errorf("invalid metrics configuration: %w", err)
	}

	loader := NewSnapshotLoader(repos)

	container := &portssvc.ServiceContainer{}
	container.Analytics = NewAnalyticsService(loader, calc)
	container.Job = NewJobService(repos.JobRepo, calc)
	container.Review = NewReviewService(repos.ReviewRepo, calc)
	container.Directory = NewDirectoryService(repos.BuildingRepo, repos.UserRepo)
	container.Auth = NewAuthService(repos.UserRepo, cfg)
	container.GoogleSignIn = NewGoogleSignInService(cfg)
	container.Notification = NewNotificationService(repos.UserRepo, repos.NotificationRepo, calc)
	container.Live = NewLiveService(loader, repos.ChangeFeed, cfg.LiveDebounce)

	return container, nil
}
