package domain

// Building is a site registered by a client where cleaning jobs take place.
type Building struct {
	BuildingID   string  `json:"buildingID"`
	Name         string  `json:"name"`
	Address      string  `json:"address"`
	OwnerID      string  `json:"ownerID"` // client user id
	Floors       int     `json:"floors"`
	AreaSqm      float64 `json:"areaSqm"`
	BuildingType string  `json:"buildingType"`
	IsActive     bool    `json:"isActive"`
	AuditFields
}
