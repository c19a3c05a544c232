package factor

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/glucodoc/glucodoc/internal/util"
)

// Period is one time-bounded entry of the carbohydrate factor schedule.
// Begin is a "HH:MM" clock string; Factor is insulin units per bread unit.
type Period struct {
	Begin  string  `yaml:"begin"`
	Factor float64 `yaml:"factor"`
}

// Schedule is the day's ordered list of carbohydrate factor periods.
// It is read-only after construction and safe to share across workers.
type Schedule struct {
	periods []Period
}

// New builds a schedule from periods in file order. The lookup is
// order-dependent, so the caller must not re-sort them.
func New(periods []Period) *Schedule {
	return &Schedule{periods: periods}
}

// Load reads a schedule from a YAML file of the form:
//
//	periods:
//	  - begin: "06:00"
//	    factor: 1.0
//
// A missing file yields an empty schedule (factor 0 everywhere) rather
// than an error; the engine degrades to correction-only derivation.
func Load(path string) (*Schedule, error) {
	if path == "" {
		return New(nil), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			util.LogWarnf("carb factor schedule %s not found, using factor 0", path)
			return New(nil), nil
		}
		return nil, fmt.Errorf("read carb factor schedule: %w", err)
	}
	var file struct {
		Periods []Period `yaml:"periods"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse carb factor schedule %s: %w", path, err)
	}
	return New(file.Periods), nil
}

// FactorAt returns the carbohydrate insulin factor applicable at the given
// clock time: the factor of the last period in file order whose boundary
// has already passed, or 0 before the first boundary (and on an empty or
// nil schedule).
func (s *Schedule) FactorAt(clock string) float64 {
	if s == nil {
		return 0
	}
	factor := 0.0
	for _, p := range s.periods {
		if util.MinutesBetween(clock, p.Begin) < 0 {
			factor = p.Factor
		}
	}
	return factor
}

// Len returns the number of periods.
func (s *Schedule) Len() int {
	if s == nil {
		return 0
	}
	return len(s.periods)
}
