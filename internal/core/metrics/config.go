package metrics

import (
	"fmt"
	"math"
	"time"

	"github.com/cleanit/cleanit_admin/internal/apperrors"
	"github.com/shopspring/decimal"
)

// ProductivityWeights are the fixed weights of the productivity composite. They must sum to 1.
type ProductivityWeights struct {
	Efficiency  float64
	Consistency float64
	Quality     float64
	OnTime      float64
}

func (w ProductivityWeights) sum() float64 {
	return w.Efficiency + w.Consistency + w.Quality + w.OnTime
}

// Config holds the business constants used by the calculator.
type Config struct {
	// Pricing
	BasePrice       decimal.Decimal
	AreaMultipliers map[string]decimal.Decimal

	// Cost
	HourlyLaborRate   decimal.Decimal
	DefaultJobHours   float64
	OperatingCostRate float64

	// Productivity
	Weights                 ProductivityWeights
	QualityCompletionWeight float64
	QualityRatingWeight     float64
	TargetJobsPerHour       float64
	OnTimeTolerance         time.Duration

	// Location used for day and month boundaries.
	Location *time.Location
}

// DefaultAreaMultipliers is the standard pricing table keyed by area tag.
func DefaultAreaMultipliers() map[string]decimal.Decimal {
	return map[string]decimal.Decimal{
		"화장실": decimal.NewFromFloat(1.5), // bathroom
		"주방":  decimal.NewFromFloat(1.3), // kitchen
		"거실":  decimal.NewFromFloat(1.2), // living room
		"침실":  decimal.NewFromFloat(1.1), // bedroom
		"사무실": decimal.NewFromFloat(1.2), // office
		"로비":  decimal.NewFromFloat(1.3), // lobby
		"계단":  decimal.NewFromFloat(1.2), // stairs
		"복도":  decimal.NewFromFloat(1.1), // hallway
		"주차장": decimal.NewFromFloat(1.4), // parking lot
		"창문":  decimal.NewFromFloat(1.2), // windows
	}
}

// DefaultConfig returns the constants the console has always shipped with.
func DefaultConfig() Config {
	loc, err := time.LoadLocation("Asia/Seoul")
	if err != nil {
		loc = time.FixedZone("KST", 9*60*60)
	}
	return Config{
		BasePrice:         decimal.NewFromInt(50000),
		AreaMultipliers:   DefaultAreaMultipliers(),
		HourlyLaborRate:   decimal.NewFromInt(15000),
		DefaultJobHours:   2,
		OperatingCostRate: 0.2,
		Weights: ProductivityWeights{
			Efficiency:  0.3,
			Consistency: 0.2,
			Quality:     0.3,
			OnTime:      0.2,
		},
		QualityCompletionWeight: 0.6,
		QualityRatingWeight:     0.4,
		TargetJobsPerHour:       0.5,
		OnTimeTolerance:         15 * time.Minute,
		Location:                loc,
	}
}

// Validate checks the constants for values that would make the metrics meaningless.
func (c Config) Validate() error {
	if c.BasePrice.IsNegative() {
		return fmt.Errorf("%w: base price must not be negative", apperrors.ErrValidation)
	}
	for area, m := range c.AreaMultipliers {
		if !m.IsPositive() {
			return fmt.Errorf("%w: multiplier for area %q must be positive", apperrors.ErrValidation, area)
		}
	}
	if c.HourlyLaborRate.IsNegative() {
		return fmt.Errorf("%w: hourly labor rate must not be negative", apperrors.ErrValidation)
	}
	if c.DefaultJobHours <= 0 {
		return fmt.Errorf("%w: default job hours must be positive", apperrors.ErrValidation)
	}
	if c.OperatingCostRate < 0 {
		return fmt.Errorf("%w: operating cost rate must not be negative", apperrors.ErrValidation)
	}
	if math.Abs(c.Weights.sum()-1) > 0.001 {
		return fmt.Errorf("%w: productivity weights must sum to 1, got %.3f", apperrors.ErrValidation, c.Weights.sum())
	}
	if math.Abs(c.QualityCompletionWeight+c.QualityRatingWeight-1) > 0.001 {
		return fmt.Errorf("%w: quality weights must sum to 1", apperrors.ErrValidation)
	}
	if c.TargetJobsPerHour <= 0 {
		return fmt.Errorf("%w: target jobs per hour must be positive", apperrors.ErrValidation)
	}
	if c.OnTimeTolerance < 0 {
		return fmt.Errorf("%w: on-time tolerance must not be negative", apperrors.ErrValidation)
	}
	if c.Location == nil {
		return fmt.Errorf("%w: location is required", apperrors.ErrValidation)
	}
	return nil
}

// Calculator runs the filter and aggregation stages with a fixed Config.
// It holds no mutable state and is safe for concurrent use.
type Calculator struct {
	cfg Config
}

// NewCalculator validates cfg and returns a calculator bound to it.
func NewCalculator(cfg Config) (*Calculator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Calculator{cfg: cfg}, nil
}

// Config returns the constants the calculator was built with.
func (c *Calculator) Config() Config {
	return c.cfg
}

// Location returns the location used for calendar bucketing.
func (c *Calculator) Location() *time.Location {
	return c.cfg.Location
}
