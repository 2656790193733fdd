// Package charts reshapes metric results into the label/dataset layout the console's
// chart component consumes.
package charts

import (
	"fmt"

	"github.com/cleanit/cleanit_admin/internal/apperrors"
	"github.com/cleanit/cleanit_admin/internal/core/domain"
	"github.com/cleanit/cleanit_admin/internal/core/metrics"
)

// Kind is the chart type requested by the console.
type Kind string

const (
	Line     Kind = "line"
	Bar      Kind = "bar"
	Pie      Kind = "pie"
	Doughnut Kind = "doughnut"
)

// ParseKind validates a raw chart type. An empty string means fallback.
func ParseKind(s string, fallback Kind) (Kind, error) {
	if s == "" {
		return fallback, nil
	}
	switch k := Kind(s); k {
	case Line, Bar, Pie, Doughnut:
		return k, nil
	}
	return "", fmt.Errorf("%w: unknown chart type %q", apperrors.ErrValidation, s)
}

// IsProportion reports whether each label is a slice of a whole.
func (k Kind) IsProportion() bool {
	return k == Pie || k == Doughnut
}

// Palette is the fixed categorical palette. Proportion charts color slices by position
// and wrap around when there are more slices than colors.
var Palette = []string{
	"#4F46E5", // indigo
	"#10B981", // emerald
	"#F59E0B", // amber
	"#EF4444", // red
	"#3B82F6", // blue
	"#8B5CF6", // violet
	"#EC4899", // pink
	"#14B8A6", // teal
}

// PaletteColor returns the palette entry for position i.
func PaletteColor(i int) string {
	return Palette[i%len(Palette)]
}

// Dataset is one data series.
type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor []string  `json:"backgroundColor,omitempty"`
	BorderColor     string    `json:"borderColor,omitempty"`
}

// Data is the payload handed to the chart component.
type Data struct {
	Kind     Kind      `json:"type"`
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// New assembles chart data and assigns colors. Labels are used in the order given;
// every dataset must already be aligned with them.
func New(kind Kind, labels []string, datasets ...Dataset) Data {
	if labels == nil {
		labels = []string{}
	}
	for i := range datasets {
		if datasets[i].Data == nil {
			datasets[i].Data = []float64{}
		}
		if kind.IsProportion() {
			colors := make([]string, len(labels))
			for j := range labels {
				colors[j] = PaletteColor(j)
			}
			datasets[i].BackgroundColor = colors
			continue
		}
		datasets[i].BorderColor = PaletteColor(i)
		datasets[i].BackgroundColor = []string{PaletteColor(i)}
	}
	if datasets == nil {
		datasets = []Dataset{}
	}
	return Data{Kind: kind, Labels: labels, Datasets: datasets}
}

// RevenueTrend charts revenue and job count per period.
func RevenueTrend(kind Kind, buckets []metrics.RevenueBucket) Data {
	labels := make([]string, len(buckets))
	revenue := make([]float64, len(buckets))
	jobs := make([]float64, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Label
		revenue[i] = b.Revenue.InexactFloat64()
		jobs[i] = float64(b.Jobs)
	}
	if kind.IsProportion() {
		return New(kind, labels, Dataset{Label: "Revenue", Data: revenue})
	}
	return New(kind, labels,
		Dataset{Label: "Revenue", Data: revenue},
		Dataset{Label: "Jobs", Data: jobs},
	)
}

// RatingTrend charts the mean rating per period.
func RatingTrend(kind Kind, buckets []metrics.RatingBucket) Data {
	labels := make([]string, len(buckets))
	avg := make([]float64, len(buckets))
	count := make([]float64, len(buckets))
	for i, b := range buckets {
		labels[i] = b.Label
		avg[i] = b.AverageRating
		count[i] = float64(b.Reviews)
	}
	if kind.IsProportion() {
		return New(kind, labels, Dataset{Label: "Reviews", Data: count})
	}
	return New(kind, labels,
		Dataset{Label: "Average rating", Data: avg},
		Dataset{Label: "Reviews", Data: count},
	)
}

// Leaderboard charts mean rating per ranked entry, keeping the ranking order.
func Leaderboard(kind Kind, entries []metrics.LeaderboardEntry) Data {
	labels := make([]string, len(entries))
	data := make([]float64, len(entries))
	for i, e := range entries {
		labels[i] = e.Name
		data[i] = e.AverageRating
	}
	return New(kind, labels, Dataset{Label: "Average rating", Data: data})
}

// Categories charts the per-category averages of a satisfaction report.
func Categories(kind Kind, report metrics.SatisfactionReport) Data {
	labels := make([]string, len(domain.ReviewCategories))
	data := make([]float64, len(domain.ReviewCategories))
	for i, cat := range domain.ReviewCategories {
		labels[i] = string(cat)
		data[i] = report.CategoryAverages[cat]
	}
	return New(kind, labels, Dataset{Label: "Category average", Data: data})
}

// RatingDistribution charts how many reviews gave each star count.
func RatingDistribution(kind Kind, report metrics.SatisfactionReport) Data {
	labels := make([]string, len(report.RatingDistribution))
	data := make([]float64, len(report.RatingDistribution))
	for i, n := range report.RatingDistribution {
		labels[i] = fmt.Sprintf("%d★", i+1)
		data[i] = float64(n)
	}
	return New(kind, labels, Dataset{Label: "Reviews", Data: data})
}

// Statuses charts job counts per status.
func Statuses(kind Kind, counts []metrics.StatusCount) Data {
	labels := make([]string, len(counts))
	data := make([]float64, len(counts))
	for i, c := range counts {
		labels[i] = string(c.Status)
		data[i] = float64(c.Count)
	}
	return New(kind, labels, Dataset{Label: "Jobs", Data: data})
}

// Productivity charts the composite score per worker.
func Productivity(kind Kind, reports []metrics.ProductivityReport) Data {
	labels := make([]string, len(reports))
	data := make([]float64, len(reports))
	for i, r := range reports {
		labels[i] = r.WorkerName
		if labels[i] == "" {
			labels[i] = r.WorkerID
		}
		data[i] = r.ProductivityScore
	}
	return New(kind, labels, Dataset{Label: "Productivity score", Data: data})
}
