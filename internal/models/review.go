package models

import "time"

// Review is a row of the reviews table. Category scores are nullable columns.
type Review struct {
	ReviewID        string    `db:"review_id"`
	JobID           string    `db:"job_id"`
	BuildingID      string    `db:"building_id"`
	WorkerID        string    `db:"worker_id"`
	Rating          float64   `db:"rating"`
	Cleanliness     *float64  `db:"cleanliness"`
	Punctuality     *float64  `db:"punctuality"`
	Communication   *float64  `db:"communication"`
	Overall         *float64  `db:"overall"`
	Comment         *string   `db:"comment"`
	ImprovementTags []string  `db:"improvement_tags"`
	IsVisible       bool      `db:"is_visible"`
	CreatedAt       time.Time `db:"created_at"`
}
