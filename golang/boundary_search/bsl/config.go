package bsl

import (
	"fmt"
	"math"
)

//Config controls a boundary search. Start with DefaultConfig and override the fields you need.
type Config struct {
	// Method estimates a boundary point inside small mixed cells: "none" or "weighted".
	Method string `json:"method"`

	// PointsPerDim sets the small-cell limit PointsPerDim^N. Must be > 0. Default: 5.
	PointsPerDim float64 `json:"ppdim"`

	// Purity is the label agreement threshold in (0, 1]; 1 means every label must agree.
	Purity float64 `json:"purity"`

	// RndSplit is the half-width of the split ratio range around 0.5, in [0, 0.25].
	// 0 always bisects. Default: 0.2.
	RndSplit float64 `json:"rnd_split"`

	// Relabel maps the two raw label values to -1/+1. Default: true.
	Relabel bool `json:"relabel"`

	// Repeat is the number of full descents from the global box. Default: 1.
	Repeat int `json:"repeat"`

	// Xmin and Xmax bound the global box. Empty means the data's own bounds.
	Xmin []float64 `json:"xmin,omitempty"`
	Xmax []float64 `json:"xmax,omitempty"`

	// Seed seeds the split randomness. 0 picks a seed from the clock.
	Seed uint64 `json:"seed"`

	// MaxDepth bounds the recursion. Mixed cells at this depth are not split. Default: 50.
	MaxDepth int `json:"max_depth"`

	// Workers is the number of goroutines filtering the orthants of one split. Default: 1.
	Workers int `json:"workers"`

	// Trace records every descent so the partition can be rendered.
	Trace bool `json:"trace"`

	// MaxOrthantWork is the 2^N * M threshold above which a scale warning is logged.
	MaxOrthantWork float64 `json:"max_orthant_work"`

	// Verbose logs a line per repeat.
	Verbose bool `json:"verbose"`
}

//DefaultConfig returns a Config with the documented defaults.
func DefaultConfig() Config {
	return Config{
		Method:         MethodNone,
		PointsPerDim:   5,
		Purity:         1.0,
		RndSplit:       0.2,
		Relabel:        true,
		Repeat:         1,
		MaxDepth:       50,
		Workers:        1,
		MaxOrthantWork: 1 << 24,
	}
}

//applyDefaults fills in zero-valued fields whose zero value is never meaningful.
func applyDefaults(cfg *Config) {
	if cfg.Method == "" {
		cfg.Method = MethodNone
	}
	if cfg.PointsPerDim == 0 {
		cfg.PointsPerDim = 5
	}
	if cfg.Purity == 0 {
		cfg.Purity = 1.0
	}
	if cfg.Repeat == 0 {
		cfg.Repeat = 1
	}
	if cfg.MaxDepth == 0 {
		cfg.MaxDepth = 50
	}
	if cfg.Workers == 0 {
		cfg.Workers = 1
	}
	if cfg.MaxOrthantWork == 0 {
		cfg.MaxOrthantWork = 1 << 24
	}
}

//validateConfig checks that cfg fields are valid and returns a descriptive error if not.
func validateConfig(cfg *Config) error {
	if _, err := MethodByName(cfg.Method); err != nil {
		return err
	}
	if !(cfg.PointsPerDim > 0) {
		return fmt.Errorf("bsl: ppdim must be > 0, got %g: %w", cfg.PointsPerDim, ErrInvalidConfig)
	}
	if !(cfg.Purity > 0 && cfg.Purity <= 1) {
		return fmt.Errorf("bsl: purity must be in (0, 1], got %g: %w", cfg.Purity, ErrInvalidConfig)
	}
	if !(cfg.RndSplit >= 0 && cfg.RndSplit <= 0.25) {
		return fmt.Errorf("bsl: rnd_split must be in [0, 0.25], got %g: %w", cfg.RndSplit, ErrInvalidConfig)
	}
	if cfg.Repeat < 1 {
		return fmt.Errorf("bsl: repeat must be >= 1, got %d: %w", cfg.Repeat, ErrInvalidConfig)
	}
	if cfg.MaxDepth < 1 {
		return fmt.Errorf("bsl: max_depth must be >= 1, got %d: %w", cfg.MaxDepth, ErrInvalidConfig)
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("bsl: workers must be >= 1, got %d: %w", cfg.Workers, ErrInvalidConfig)
	}
	if len(cfg.Xmin) != len(cfg.Xmax) && len(cfg.Xmin) > 0 && len(cfg.Xmax) > 0 {
		return fmt.Errorf("bsl: xmin has %d values, xmax has %d: %w", len(cfg.Xmin), len(cfg.Xmax), ErrDimensionMismatch)
	}
	return nil
}

//CheckScale estimates the per-level orthant work 2^dims * points and returns a wrapped
//ErrScaleWarning when it exceeds limit.
func CheckScale(dims, points int, limit float64) error {
	work := math.Ldexp(float64(points), dims)
	if work > limit {
		return fmt.Errorf("bsl: 2^%d orthants x %d points = %g per level exceeds %g: %w", dims, points, work, limit, ErrScaleWarning)
	}
	return nil
}
