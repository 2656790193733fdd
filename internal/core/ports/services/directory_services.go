package services

import (
	"context"

	"github.com/cleanit/cleanit_admin/internal/core/domain"
)

// DirectorySvc lists the reference collections.
type DirectorySvc interface {
	ListBuildings(ctx context.Context) ([]domain.Building, error)
	// ListUsers returns every user when role is empty.
	ListUsers(ctx context.Context, role domain.Role) ([]domain.User, error)
}
