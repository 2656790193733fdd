package domain

import "time"

// ReviewCategory names one of the sub-scores a client can give.
type ReviewCategory string

const (
	CategoryCleanliness   ReviewCategory = "cleanliness"
	CategoryPunctuality   ReviewCategory = "punctuality"
	CategoryCommunication ReviewCategory = "communication"
	CategoryOverall       ReviewCategory = "overall"
)

// ReviewCategories lists the categories in display order.
var ReviewCategories = []ReviewCategory{CategoryCleanliness, CategoryPunctuality, CategoryCommunication, CategoryOverall}

// CategoryScores holds optional 1-5 sub-scores; 0 means the client left it blank.
type CategoryScores struct {
	Cleanliness   float64 `json:"cleanliness"`
	Punctuality   float64 `json:"punctuality"`
	Communication float64 `json:"communication"`
	Overall       float64 `json:"overall"`
}

// Score returns the sub-score for a category and whether it was given.
func (c CategoryScores) Score(cat ReviewCategory) (float64, bool) {
	var v float64
	switch cat {
	case CategoryCleanliness:
		v = c.Cleanliness
	case CategoryPunctuality:
		v = c.Punctuality
	case CategoryCommunication:
		v = c.Communication
	case CategoryOverall:
		v = c.Overall
	}
	return v, v > 0
}

// Review is a client's rating of a completed job.
type Review struct {
	ReviewID        string         `json:"reviewID"`
	JobID           string         `json:"jobID"`
	BuildingID      string         `json:"buildingID"`
	WorkerID        string         `json:"workerID"`
	Rating          float64        `json:"rating"` // 1-5
	Categories      CategoryScores `json:"categories"`
	Comment         string         `json:"comment"`
	ImprovementTags []string       `json:"improvementTags"`
	IsVisible       bool           `json:"isVisible"`
	CreatedAt       time.Time      `json:"createdAt"`
}
