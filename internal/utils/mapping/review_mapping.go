package mapping

import (
	"github.com/cleanit/cleanit_admin/internal/core/domain"
	"github.com/cleanit/cleanit_admin/internal/models"
)

// ToDomainReview converts a model Review to a domain Review. Missing category scores
// become 0, which the metrics layer treats as absent.
func ToDomainReview(m models.Review) domain.Review {
	tags := m.ImprovementTags
	if tags == nil {
		tags = []string{}
	}
	return domain.Review{
		ReviewID:   m.ReviewID,
		JobID:      m.JobID,
		BuildingID: m.BuildingID,
		WorkerID:   m.WorkerID,
		Rating:     m.Rating,
		Categories: domain.CategoryScores{
			Cleanliness:   derefFloat(m.Cleanliness),
			Punctuality:   derefFloat(m.Punctuality),
			Communication: derefFloat(m.Communication),
			Overall:       derefFloat(m.Overall),
		},
		Comment:         derefString(m.Comment),
		ImprovementTags: tags,
		IsVisible:       m.IsVisible,
		CreatedAt:       m.CreatedAt,
	}
}

func ToDomainReviewSlice(ms []models.Review) []domain.Review {
	ds := make([]domain.Review, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainReview(m)
	}
	return ds
}
