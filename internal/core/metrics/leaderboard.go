package metrics

import (
	"sort"

	"github.com/cleanit/cleanit_admin/internal/core/domain"
)

// LeaderboardEntry is one ranked worker or client.
type LeaderboardEntry struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	AverageRating float64 `json:"averageRating"`
	Reviews       int     `json:"reviews"`
}

// WorkerLeaderboard ranks workers by the mean rating of their visible reviews.
func WorkerLeaderboard(reviews []domain.Review, dir Directory) []LeaderboardEntry {
	return leaderboard(reviews, dir, func(r domain.Review) string { return r.WorkerID })
}

// ClientLeaderboard ranks clients by the mean rating they gave, joining reviews to
// clients through the reviewed building's owner. Reviews of unknown buildings are skipped.
func ClientLeaderboard(reviews []domain.Review, dir Directory) []LeaderboardEntry {
	return leaderboard(reviews, dir, func(r domain.Review) string { return dir.OwnerOf(r.BuildingID) })
}

func leaderboard(reviews []domain.Review, dir Directory, key func(domain.Review) string) []LeaderboardEntry {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, r := range reviews {
		if !r.IsVisible || !validRating(r.Rating) {
			continue
		}
		id := key(r)
		if id == "" {
			continue
		}
		sums[id] += r.Rating
		counts[id]++
	}

	out := make([]LeaderboardEntry, 0, len(counts))
	for id, n := range counts {
		out = append(out, LeaderboardEntry{
			ID:            id,
			Name:          dir.UserName(id),
			AverageRating: safeDiv(sums[id], float64(n)),
			Reviews:       n,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AverageRating != out[j].AverageRating {
			return out[i].AverageRating > out[j].AverageRating
		}
		if out[i].Reviews != out[j].Reviews {
			return out[i].Reviews > out[j].Reviews
		}
		return out[i].ID < out[j].ID
	})
	return out
}
