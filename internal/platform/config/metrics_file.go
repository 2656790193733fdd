package config

import (
	"fmt"
	"time"

	"github.com/cleanit/cleanit_admin/internal/apperrors"
	"github.com/cleanit/cleanit_admin/internal/core/metrics"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

// MetricsFile is the "metrics" section of the YAML config file. Unset fields keep the
// built-in defaults.
//
//	metrics:
//	  base_price: 50000
//	  area_multipliers:
//	    화장실: 1.5
//	  weights: {efficiency: 0.3, consistency: 0.2, quality: 0.3, on_time: 0.2}
//	  on_time_tolerance: 15m
type MetricsFile struct {
	BasePrice               *float64           `mapstructure:"base_price" validate:"omitempty,gte=0"`
	AreaMultipliers         map[string]float64 `mapstructure:"area_multipliers" validate:"omitempty,dive,keys,required,endkeys,gt=0"`
	ReplaceAreaMultipliers  bool               `mapstructure:"replace_area_multipliers"`
	HourlyLaborRate         *float64           `mapstructure:"hourly_labor_rate" validate:"omitempty,gte=0"`
	DefaultJobHours         *float64           `mapstructure:"default_job_hours" validate:"omitempty,gt=0"`
	OperatingCostRate       *float64           `mapstructure:"operating_cost_rate" validate:"omitempty,gte=0,lt=1"`
	Weights                 *WeightsFile       `mapstructure:"weights"`
	QualityCompletionWeight *float64           `mapstructure:"quality_completion_weight" validate:"omitempty,gte=0,lte=1"`
	QualityRatingWeight     *float64           `mapstructure:"quality_rating_weight" validate:"omitempty,gte=0,lte=1"`
	TargetJobsPerHour       *float64           `mapstructure:"target_jobs_per_hour" validate:"omitempty,gt=0"`
	OnTimeTolerance         string             `mapstructure:"on_time_tolerance"`
}

// WeightsFile holds the productivity composite weights.
type WeightsFile struct {
	Efficiency  float64 `mapstructure:"efficiency" validate:"gte=0,lte=1"`
	Consistency float64 `mapstructure:"consistency" validate:"gte=0,lte=1"`
	Quality     float64 `mapstructure:"quality" validate:"gte=0,lte=1"`
	OnTime      float64 `mapstructure:"on_time" validate:"gte=0,lte=1"`
}

// Apply validates the section and overlays it onto cfg.
func (f MetricsFile) Apply(cfg *metrics.Config) error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("%w: metrics config: %v", apperrors.ErrValidation, err)
	}

	if f.BasePrice != nil {
		cfg.BasePrice = decimal.NewFromFloat(*f.BasePrice)
	}
	if len(f.AreaMultipliers) > 0 {
		if f.ReplaceAreaMultipliers || cfg.AreaMultipliers == nil {
			cfg.AreaMultipliers = make(map[string]decimal.Decimal, len(f.AreaMultipliers))
		}
		for area, m := range f.AreaMultipliers {
			cfg.AreaMultipliers[area] = decimal.NewFromFloat(m)
		}
	}
	if f.HourlyLaborRate != nil {
		cfg.HourlyLaborRate = decimal.NewFromFloat(*f.HourlyLaborRate)
	}
	if f.DefaultJobHours != nil {
		cfg.DefaultJobHours = *f.DefaultJobHours
	}
	if f.OperatingCostRate != nil {
		cfg.OperatingCostRate = *f.OperatingCostRate
	}
	if f.Weights != nil {
		cfg.Weights = metrics.ProductivityWeights{
			Efficiency:  f.Weights.Efficiency,
			Consistency: f.Weights.Consistency,
			Quality:     f.Weights.Quality,
			OnTime:      f.Weights.OnTime,
		}
	}
	if f.QualityCompletionWeight != nil {
		cfg.QualityCompletionWeight = *f.QualityCompletionWeight
	}
	if f.QualityRatingWeight != nil {
		cfg.QualityRatingWeight = *f.QualityRatingWeight
	}
	if f.TargetJobsPerHour != nil {
		cfg.TargetJobsPerHour = *f.TargetJobsPerHour
	}
	if f.OnTimeTolerance != "" {
		d, err := time.ParseDuration(f.OnTimeTolerance)
		if err != nil {
			return fmt.Errorf("%w: on_time_tolerance: %v", apperrors.ErrValidation, err)
		}
		cfg.OnTimeTolerance = d
	}
	return nil
}
