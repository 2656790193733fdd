package dto

import (
	"time"

	"github.com/cleanit/cleanit_admin/internal/core/domain"
)

// ListUsersParams filters the user directory.
type ListUsersParams struct {
	Role string `form:"role" binding:"omitempty,oneof=client worker manager"`
}

// BuildingResponse defines the data returned for a building.
type BuildingResponse struct {
	BuildingID   string  `json:"buildingID"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	OwnerID      string  `json:"ownerID"`
	Floors       int     `json:"floors"`
	AreaSqm      float64 `json:"areaSqm"`
	BuildingType string  `json:"buildingType,omitempty"`
	IsActive     bool    `json:"isActive"`
}

// UserResponse defines the data returned for a user. Profile holds the fields of the
// variant named by Role.
type UserResponse struct {
	UserID     string             `json:"userID"`
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	Role       string             `json:"role"`
	IsActive   bool               `json:"isActive"`
	IsVerified bool               `json:"isVerified"`
	Profile    domain.Profile     `json:"profile"`
	QuietHours *domain.QuietHours `json:"quietHours,omitempty"`
	CreatedAt  time.Time          `json:"createdAt"`
}

func ToBuildingResponses(bs []domain.Building) []BuildingResponse {
	out := make([]BuildingResponse, len(bs))
	for i, b := range bs {
		out[i] = BuildingResponse{
			BuildingID:   b.BuildingID,
			Name:         b.Name,
			Address:      b.Address,
			OwnerID:      b.OwnerID,
			Floors:       b.Floors,
			AreaSqm:      b.AreaSqm,
			BuildingType: b.BuildingType,
			IsActive:     b.IsActive,
		}
	}
	return out
}

func ToUserResponse(u domain.User) UserResponse {
	return UserResponse{
		UserID:     u.UserID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       string(u.Role()),
		IsActive:   u.IsActive,
		IsVerified: u.IsVerified,
		Profile:    u.Profile,
		QuietHours: u.QuietHours,
		CreatedAt:  u.CreatedAt,
	}
}

func ToUserResponses(us []domain.User) []UserResponse {
	out := make([]UserResponse, len(us))
	for i, u := range us {
		out[i] = ToUserResponse(u)
	}
	return out
}
