package metrics

import (
	"math"

	"github.com/cleanit/cleanit_admin/internal/core/domain"
)

// SatisfactionLevel is the banded label of a mean rating.
type SatisfactionLevel string

const (
	Excellent SatisfactionLevel = "Excellent"
	Good      SatisfactionLevel = "Good"
	Fair      SatisfactionLevel = "Fair"
	Poor      SatisfactionLevel = "Poor"
)

// SatisfactionLevelFor bands a mean rating: >=4.5 Excellent, >=3.5 Good, >=2.5 Fair, else Poor.
func SatisfactionLevelFor(avg float64) SatisfactionLevel {
	switch {
	case avg >= 4.5:
		return Excellent
	case avg >= 3.5:
		return Good
	case avg >= 2.5:
		return Fair
	default:
		return Poor
	}
}

// SatisfactionReport summarizes client reviews.
type SatisfactionReport struct {
	TotalReviews       int                               `json:"totalReviews"`
	AverageRating      float64                           `json:"averageRating"`
	CategoryAverages   map[domain.ReviewCategory]float64 `json:"categoryAverages"`
	SatisfactionLevel  SatisfactionLevel                 `json:"satisfactionLevel"`
	RatingDistribution [5]int                            `json:"ratingDistribution"` // index 0 is one star
}

func validRating(r float64) bool {
	return r >= 1 && r <= 5
}

// Satisfaction aggregates visible reviews with a rating between 1 and 5. Category
// averages only use reviews where that category was scored.
func Satisfaction(reviews []domain.Review) SatisfactionReport {
	report := SatisfactionReport{
		CategoryAverages: make(map[domain.ReviewCategory]float64, len(domain.ReviewCategories)),
	}
	catSums := make(map[domain.ReviewCategory]float64, len(domain.ReviewCategories))
	catCounts := make(map[domain.ReviewCategory]int, len(domain.ReviewCategories))

	var sum float64
	for _, r := range reviews {
		if !r.IsVisible || !validRating(r.Rating) {
			continue
		}
		report.TotalReviews++
		sum += r.Rating
		star := int(math.Round(r.Rating))
		report.RatingDistribution[star-1]++

		for _, cat := range domain.ReviewCategories {
			if v, ok := r.Categories.Score(cat); ok {
				catSums[cat] += v
				catCounts[cat]++
			}
		}
	}

	report.AverageRating = safeDiv(sum, float64(report.TotalReviews))
	for _, cat := range domain.ReviewCategories {
		report.CategoryAverages[cat] = safeDiv(catSums[cat], float64(catCounts[cat]))
	}
	report.SatisfactionLevel = SatisfactionLevelFor(report.AverageRating)
	return report
}
