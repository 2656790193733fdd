package metrics

import (
	"strings"
	"time"

	"github.com/cleanit/cleanit_admin/internal/core/domain"
)

// Directory indexes the reference collections that filters and leaderboards join through.
type Directory struct {
	Buildings map[string]domain.Building
	Users     map[string]domain.User
}

// NewDirectory builds a Directory from raw collections.
func NewDirectory(buildings []domain.Building, users []domain.User) Directory {
	dir := Directory{
		Buildings: make(map[string]domain.Building, len(buildings)),
		Users:     make(map[string]domain.User, len(users)),
	}
	for _, b := range buildings {
		dir.Buildings[b.BuildingID] = b
	}
	for _, u := range users {
		dir.Users[u.UserID] = u
	}
	return dir
}

// OwnerOf returns the client id that owns a building, or "" when the building is unknown.
func (d Directory) OwnerOf(buildingID string) string {
	return d.Buildings[buildingID].OwnerID
}

// UserName returns the display name of a user, falling back to the id.
func (d Directory) UserName(userID string) string {
	if u, ok := d.Users[userID]; ok && u.Name != "" {
		return u.Name
	}
	return userID
}

// DateRange is an inclusive calendar-day range. Either bound may be nil.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// JobFilter narrows a job collection. Zero-valued fields are ignored.
type JobFilter struct {
	Status     domain.JobStatus
	Range      DateRange
	ClientID   string
	BuildingID string
	WorkerID   string
	Search     string
}

// ReviewFilter narrows a review collection. Zero-valued fields are ignored.
type ReviewFilter struct {
	BuildingID string
	WorkerID   string
	ClientID   string
	MinRating  float64
	Range      DateRange
	Search     string
}

// window resolves a DateRange into absolute bounds in the calculator's location.
// The end bound is pushed to 23:59:59.999 of its day. ok is false when From is
// after To, compared before either bound is widened.
func (c *Calculator) window(r DateRange) (from, to time.Time, hasFrom, hasTo, ok bool) {
	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		return from, to, false, false, false
	}
	loc := c.cfg.Location
	if r.From != nil {
		f := r.From.In(loc)
		from = time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, loc)
		hasFrom = true
	}
	if r.To != nil {
		t := r.To.In(loc)
		to = time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), loc)
		hasTo = true
	}
	return from, to, hasFrom, hasTo, true
}

func inWindow(t, from, to time.Time, hasFrom, hasTo bool) bool {
	if hasFrom && t.Before(from) {
		return false
	}
	if hasTo && t.After(to) {
		return false
	}
	return true
}

// FilterJobs returns the visible jobs that match every active field of f.
func (c *Calculator) FilterJobs(jobs []domain.Job, f JobFilter, dir Directory) []domain.Job {
	from, to, hasFrom, hasTo, ok := c.window(f.Range)
	if !ok {
		return []domain.Job{}
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]domain.Job, 0, len(jobs))
	for _, j := range jobs {
		if !j.IsVisible {
			continue
		}
		if f.Status != "" && j.Status != f.Status {
			continue
		}
		if f.BuildingID != "" && j.BuildingID != f.BuildingID {
			continue
		}
		if f.WorkerID != "" && j.WorkerID != f.WorkerID {
			continue
		}
		if f.ClientID != "" && dir.OwnerOf(j.BuildingID) != f.ClientID {
			continue
		}
		if !inWindow(j.ScheduledAt, from, to, hasFrom, hasTo) {
			continue
		}
		if search != "" && !strings.Contains(jobSearchText(j, dir), search) {
			continue
		}
		out = append(out, j)
	}
	return out
}

// FilterReviews returns the visible reviews that match every active field of f.
func (c *Calculator) FilterReviews(reviews []domain.Review, f ReviewFilter, dir Directory) []domain.Review {
	from, to, hasFrom, hasTo, ok := c.window(f.Range)
	if !ok {
		return []domain.Review{}
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]domain.Review, 0, len(reviews))
	for _, r := range reviews {
		if !r.IsVisible {
			continue
		}
		if f.BuildingID != "" && r.BuildingID != f.BuildingID {
			continue
		}
		if f.WorkerID != "" && r.WorkerID != f.WorkerID {
			continue
		}
		if f.ClientID != "" && dir.OwnerOf(r.BuildingID) != f.ClientID {
			continue
		}
		if f.MinRating > 0 && r.Rating < f.MinRating {
			continue
		}
		if !inWindow(r.CreatedAt, from, to, hasFrom, hasTo) {
			continue
		}
		if search != "" && !strings.Contains(reviewSearchText(r, dir), search) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func jobSearchText(j domain.Job, dir Directory) string {
	b := dir.Buildings[j.BuildingID]
	parts := []string{b.Name, b.Address, dir.Users[j.WorkerID].Name, string(j.Status)}
	parts = append(parts, j.Areas...)
	return strings.ToLower(strings.Join(parts, " "))
}

func reviewSearchText(r domain.Review, dir Directory) string {
	parts := []string{r.Comment, dir.Buildings[r.BuildingID].Name, dir.Users[r.WorkerID].Name}
	parts = append(parts, r.ImprovementTags...)
	return strings.ToLower(strings.Join(parts, " "))
}
