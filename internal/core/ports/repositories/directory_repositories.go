package repositories

import (
	"context"

	"github.com/cleanit/cleanit_admin/internal/core/domain"
)

// BuildingReader defines read operations for building data
type BuildingReader interface {
	FindBuildings(ctx context.Context) ([]domain.Building, error)
}

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a user, or apperrors.ErrNotFound.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by login email, or apperrors.ErrNotFound.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUsers retrieves all users, optionally restricted to one role.
	FindUsers(ctx context.Context, role domain.Role) ([]domain.User, error)
}

// UserWriter defines write operations for user data
type UserWriter interface {
	// SaveUser persists a new user; apperrors.ErrDuplicate when the email is taken.
	SaveUser(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines all user-related repository interfaces
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
