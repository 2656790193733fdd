package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/cleanit/cleanit_admin/internal/core/domain"
	"github.com/cleanit/cleanit_admin/internal/models"
)

// DecodeProfile decodes the JSONB profile column into the variant named by role.
// An empty document yields the zero variant.
func DecodeProfile(role string, raw []byte) (domain.Profile, error) {
	r, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return domain.EmptyProfile(r)
	}
	switch r {
	case domain.RoleClient:
		var p domain.ClientProfile
		err = json.Unmarshal(raw, &p)
		return p, err
	case domain.RoleWorker:
		var p domain.WorkerProfile
		err = json.Unmarshal(raw, &p)
		return p, err
	default:
		var p domain.ManagerProfile
		err = json.Unmarshal(raw, &p)
		return p, err
	}
}

// EncodeProfile returns the role discriminator and JSONB document for a profile.
func EncodeProfile(p domain.Profile) (string, []byte, error) {
	if p == nil {
		return "", nil, fmt.Errorf("user has no profile")
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return "", nil, fmt.Errorf("failed to encode %s profile: %w", p.Role(), err)
	}
	return string(p.Role()), raw, nil
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) (domain.User, error) {
	profile, err := DecodeProfile(m.Role, m.Profile)
	if err != nil {
		return domain.User{}, fmt.Errorf("user %s: %w", m.UserID, err)
	}
	u := domain.User{
		UserID:       m.UserID,
		Name:         m.Name,
		Email:        m.Email,
		IsActive:     m.IsActive,
		IsVerified:   m.IsVerified,
		Profile:      profile,
		PasswordHash: derefString(m.PasswordHash),
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
	if m.QuietStartMinute != nil && m.QuietEndMinute != nil {
		u.QuietHours = &domain.QuietHours{StartMinute: *m.QuietStartMinute, EndMinute: *m.QuietEndMinute}
	}
	return u, nil
}

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) (models.User, error) {
	role, raw, err := EncodeProfile(d.Profile)
	if err != nil {
		return models.User{}, err
	}
	m := models.User{
		UserID:       d.UserID,
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: stringPtr(d.PasswordHash),
		Role:         role,
		Profile:      raw,
		IsActive:     d.IsActive,
		IsVerified:   d.IsVerified,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
	if d.QuietHours != nil {
		start, end := d.QuietHours.StartMinute, d.QuietHours.EndMinute
		m.QuietStartMinute, m.QuietEndMinute = &start, &end
	}
	return m, nil
}

// ToDomainUserSlice converts a slice of model Users to a slice of domain Users
func ToDomainUserSlice(ms []models.User) ([]domain.User, error) {
	ds := make([]domain.User, len(ms))
	for i, m := range ms {
		u, err := ToDomainUser(m)
		if err != nil {
			return nil, err
		}
		ds[i] = u
	}
	return ds, nil
}
