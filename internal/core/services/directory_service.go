package services

import (
	"context"
	"fmt"

	"github.com/cleanit/cleanit_admin/internal/core/domain"
	portsrepo "github.com/cleanit/cleanit_admin/internal/core/ports/repositories"
	portssvc "github.com/cleanit/cleanit_admin/internal/core/ports/services"
)

type directoryService struct {
	BaseService
	buildingRepo portsrepo.BuildingReader
	userRepo     portsrepo.UserReader
}

// NewDirectoryService creates a read-only view over buildings and users.
func NewDirectoryService(buildingRepo portsrepo.BuildingReader, userRepo portsrepo.UserReader) portssvc.DirectorySvc {
	return &directoryService{buildingRepo: buildingRepo, userRepo: userRepo}
}

var _ portssvc.DirectorySvc = (*directoryService)(nil)

func (s *directoryService) ListBuildings(ctx context.Context) ([]domain.Building, error) {
	buildings, err := s.buildingRepo.FindBuildings(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list buildings")
		return nil, fmt.Errorf("failed to list buildings: %w", err)
	}
	return buildings, nil
}

func (s *directoryService) ListUsers(ctx context.Context, role domain.Role) ([]domain.User, error) {
	users, err := s.userRepo.FindUsers(ctx, role)
	if err != nil {
		s.LogError(ctx, err, "Failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
