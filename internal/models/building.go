package models

// Building is a row of the buildings table.
type Building struct {
	BuildingID   string   `db:"building_id"`
	Name         string   `db:"name"`
	Address      string   `db:"address"`
	OwnerID      string   `db:"owner_id"`
	Floors       *int     `db:"floors"`
	AreaSqm      *float64 `db:"area_sqm"`
	BuildingType *string  `db:"building_type"`
	IsActive     bool     `db:"is_active"`
	AuditFields
}
