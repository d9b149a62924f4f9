// Package elo implements the football Elo update: a logistic expectancy
// with a home-advantage offset, a clamped rating gap and a goal-difference
// weight on the rating change.
package elo

import "math"

const (
	// ClampLimit bounds the effective rating gap before the logistic.
	ClampLimit = 400.0
	// Scale is the rating difference that multiplies the odds by ten.
	Scale = 400.0
)

// Result is the outcome of rating a single match.
type Result struct {
	HomeRating     float64 `json:"home_rating"`
	AwayRating     float64 `json:"away_rating"`
	HomeGoals      float64 `json:"home_goals"`
	AwayGoals      float64 `json:"away_goals"`
	HomeExpectancy float64 `json:"home_expectancy"`

	delta float64
}

// Tuple returns the result in its positional form: new home rating, new
// away rating, home goals, away goals, home expectancy.
func (r Result) Tuple() [5]float64 {
	return [5]float64{r.HomeRating, r.AwayRating, r.HomeGoals, r.AwayGoals, r.HomeExpectancy}
}

// Delta is the rating moved from the away side to the home side.
func (r Result) Delta() float64 {
	return r.delta
}

// UpdateRatingsAfterMatch rates one match. It is total: any finite input
// produces a result and the sum of the two ratings is preserved.
func UpdateRatingsAfterMatch(ratingHome, ratingAway, goalsHome, goalsAway, sensitivity, homeAdvantage float64) Result {
	p := Expectancy(ratingHome, ratingAway, homeAdvantage)
	delta := (Outcome(goalsHome, goalsAway) - p) * GoalWeight(goalsHome, goalsAway) * sensitivity

	return Result{
		HomeRating:     ratingHome + delta,
		AwayRating:     ratingAway - delta,
		HomeGoals:      goalsHome,
		AwayGoals:      goalsAway,
		HomeExpectancy: p,
		delta:          delta,
	}
}

// Expectancy is the home side's expected score. The gap is clamped to
// ±ClampLimit, so the value stays within [1/11, 10/11].
func Expectancy(ratingHome, ratingAway, homeAdvantage float64) float64 {
	gap := ratingAway - ratingHome - homeAdvantage
	gap = math.Min(math.Max(gap, -ClampLimit), ClampLimit)
	return 1 / (1 + math.Pow(10, gap/Scale))
}

// Outcome is the observed home score: 1 for a win, 0.5 for a draw, 0 for
// a loss.
func Outcome(goalsHome, goalsAway float64) float64 {
	d := goalDiff(goalsHome, goalsAway)
	switch {
	case d > 0:
		return 1
	case d < 0:
		return 0
	default:
		return 0.5
	}
}

// GoalWeight scales the update by the square root of the margin. Draws
// and one-goal results weigh 1.
func GoalWeight(goalsHome, goalsAway float64) float64 {
	return math.Sqrt(math.Max(math.Abs(goalDiff(goalsHome, goalsAway)), 1))
}

// goalDiff rounds each side first so that near-integer inputs difference
// as integers.
func goalDiff(goalsHome, goalsAway float64) float64 {
	return math.Round(goalsHome) - math.Round(goalsAway)
}
