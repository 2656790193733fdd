package domain

import (
	"fmt"
	"time"
)

// Role identifies which kind of marketplace participant a user is.
type Role string

const (
	RoleClient  Role = "client"
	RoleWorker  Role = "worker"
	RoleManager Role = "manager"
)

// ParseRole validates a raw role string.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleClient, RoleWorker, RoleManager:
		return Role(s), nil
	}
	return "", fmt.Errorf("unknown role %q", s)
}

// Profile is the role-specific part of a user. The set of implementations is closed:
// ClientProfile, WorkerProfile and ManagerProfile.
type Profile interface {
	Role() Role
	isProfile()
}

// ClientProfile belongs to building owners who book cleanings.
type ClientProfile struct {
	CompanyName string `json:"companyName"`
	Phone       string `json:"phone"`
}

// WorkerProfile belongs to cleaners who are assigned jobs.
type WorkerProfile struct {
	Skills     []string   `json:"skills"`
	HourlyRate float64    `json:"hourlyRate"`
	HiredAt    *time.Time `json:"hiredAt,omitempty"`
}

// ManagerProfile belongs to console operators.
type ManagerProfile struct {
	Department string `json:"department"`
}

func (ClientProfile) Role() Role { return RoleClient }
func (WorkerProfile) Role() Role { return RoleWorker }
func (ManagerProfile) Role() Role { return RoleManager }

func (ClientProfile) isProfile() {}
func (WorkerProfile) isProfile() {}
func (ManagerProfile) isProfile() {}

// EmptyProfile returns the zero profile variant for a role.
func EmptyProfile(r Role) (Profile, error) {
	switch r {
	case RoleClient:
		return ClientProfile{}, nil
	case RoleWorker:
		return WorkerProfile{}, nil
	case RoleManager:
		return ManagerProfile{}, nil
	}
	return nil, fmt.Errorf("unknown role %q", r)
}

// User represents a marketplace participant.
type User struct {
	UserID       string      `json:"userID"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	IsActive     bool        `json:"isActive"`
	IsVerified   bool        `json:"isVerified"`
	Profile      Profile     `json:"profile"`
	QuietHours   *QuietHours `json:"quietHours,omitempty"`
	PasswordHash string      `json:"-"`
	AuditFields
}

// Role returns the role carried by the user's profile, or "" when none is set.
func (u User) Role() Role {
	if u.Profile == nil {
		return ""
	}
	return u.Profile.Role()
}

// AuthProvider names an external identity provider.
type AuthProvider string

const ProviderGoogle AuthProvider = "google"

// ExternalIdentity is the verified identity an external provider vouches for.
type ExternalIdentity struct {
	Provider      AuthProvider
	Subject       string
	Email         string
	Name          string
	EmailVerified bool
}

// QuietHours is a daily window, in minutes after local midnight, during which a user
// does not want to be messaged. A window whose end is before its start wraps midnight.
type QuietHours struct {
	StartMinute int `json:"startMinute" validate:"min=0,max=1439"`
	EndMinute   int `json:"endMinute" validate:"min=0,max=1439"`
}

// Contains reports whether t falls inside the window, evaluated in t's location.
func (q QuietHours) Contains(t time.Time) bool {
	if q.StartMinute == q.EndMinute {
		return false
	}
	m := t.Hour()*60 + t.Minute()
	if q.StartMinute < q.EndMinute {
		return m >= q.StartMinute && m < q.EndMinute
	}
	return m >= q.StartMinute || m < q.EndMinute
}

// WindowEnd returns the first instant at or after t when the window is over.
// It returns t unchanged when t is outside the window.
func (q QuietHours) WindowEnd(t time.Time) time.Time {
	if !q.Contains(t) {
		return t
	}
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := midnight.Add(time.Duration(q.EndMinute) * time.Minute)
	if !end.After(t) {
		end = end.AddDate(0, 0, 1)
	}
	return end
}
