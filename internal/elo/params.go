package elo

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNonFinite is returned for NaN or infinite inputs and for updates
	// that overflow.
	ErrNonFinite = errors.New("value is not finite")
	// ErrNegativeGoals is returned for a negative goal count.
	ErrNegativeGoals = errors.New("goals must not be negative")
)

// Params are the model constants shared by every match of a run.
type Params struct {
	Sensitivity   float64 `json:"sensitivity"`
	HomeAdvantage float64 `json:"home_advantage"`
}

// DefaultParams returns K=20 and a 65 point home advantage.
func DefaultParams() Params {
	return Params{Sensitivity: 20, HomeAdvantage: 65}
}

// Validate rejects non-finite model constants.
func (p Params) Validate() error {
	if err := finite("sensitivity", p.Sensitivity); err != nil {
		return err
	}
	return finite("home_advantage", p.HomeAdvantage)
}

// MatchResult is one observed match.
type MatchResult struct {
	HomeRating float64 `json:"home_rating"`
	AwayRating float64 `json:"away_rating"`
	HomeGoals  float64 `json:"home_goals"`
	AwayGoals  float64 `json:"away_goals"`
}

// Validate rejects non-finite ratings or goals and negative goal counts.
func (m MatchResult) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"home_rating", m.HomeRating},
		{"away_rating", m.AwayRating},
		{"home_goals", m.HomeGoals},
		{"away_goals", m.AwayGoals},
	}
	for _, f := range fields {
		if err := finite(f.name, f.value); err != nil {
			return err
		}
	}
	if m.HomeGoals < 0 {
		return fmt.Errorf("home_goals %v: %w", m.HomeGoals, ErrNegativeGoals)
	}
	if m.AwayGoals < 0 {
		return fmt.Errorf("away_goals %v: %w", m.AwayGoals, ErrNegativeGoals)
	}
	return nil
}

// Validate checks a full argument set of UpdateRatingsAfterMatch.
func Validate(ratingHome, ratingAway, goalsHome, goalsAway float64, p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return MatchResult{
		HomeRating: ratingHome,
		AwayRating: ratingAway,
		HomeGoals:  goalsHome,
		AwayGoals:  goalsAway,
	}.Validate()
}

// Update validates m and rates it with p. Finite inputs can still
// overflow, e.g. a huge sensitivity; such results fail with ErrNonFinite.
func (p Params) Update(m MatchResult) (Result, error) {
	if err := Validate(m.HomeRating, m.AwayRating, m.HomeGoals, m.AwayGoals, p); err != nil {
		return Result{}, err
	}
	res := UpdateRatingsAfterMatch(m.HomeRating, m.AwayRating, m.HomeGoals, m.AwayGoals, p.Sensitivity, p.HomeAdvantage)
	if err := res.Validate(); err != nil {
		return Result{}, err
	}
	return res, nil
}

// Validate reports ratings that overflowed during the update.
func (r Result) Validate() error {
	if err := finite("home_rating", r.HomeRating); err != nil {
		return fmt.Errorf("updated %w", err)
	}
	if err := finite("away_rating", r.AwayRating); err != nil {
		return fmt.Errorf("updated %w", err)
	}
	return nil
}

func finite(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s %v: %w", name, v, ErrNonFinite)
	}
	return nil
}
