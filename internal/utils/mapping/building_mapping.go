package mapping

import (
	"github.com/cleanit/cleanit_admin/internal/core/domain"
	"github.com/cleanit/cleanit_admin/internal/models"
)

// ToDomainBuilding converts a model Building to a domain Building
func ToDomainBuilding(m models.Building) domain.Building {
	b := domain.Building{
		BuildingID:   m.BuildingID,
		Name:         m.Name,
		Address:      m.Address,
		OwnerID:      m.OwnerID,
		AreaSqm:      derefFloat(m.AreaSqm),
		BuildingType: derefString(m.BuildingType),
		IsActive:     m.IsActive,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
	if m.Floors != nil {
		b.Floors = *m.Floors
	}
	return b
}

func ToDomainBuildingSlice(ms []models.Building) []domain.Building {
	ds := make([]domain.Building, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBuilding(m)
	}
	return ds
}
