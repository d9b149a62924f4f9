// internal/league/logic.go
package league

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/utakatalp/league-elo/internal/elo"
	"gonum.org/v1/gonum/stat/distuv"
)

// minGoalMean keeps the Poisson mean positive against hopeless mismatches.
const minGoalMean = 0.001

// MaxGoals caps a simulated score.
const MaxGoals = math.MaxInt32

func (m *Match) ScoreLine() string {
	return fmt.Sprintf("%s %d - %d %s",
		m.Home.Name, m.HomeGoals,
		m.AwayGoals, m.Away.Name,
	)
}

// GoalModel maps the rating gap linearly to an expected goal count.
type GoalModel struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// DefaultGoalModel is the fit used for German top-flight football.
func DefaultGoalModel() GoalModel {
	return GoalModel{
		Slope:     0.0017854953143549,
		Intercept: 1.3218390804597700,
	}
}

// Means returns the expected goals of each side.
func (g GoalModel) Means(homeElo, awayElo, homeAdvantage float64) (home, away float64) {
	delta := homeElo + homeAdvantage - awayElo
	home = math.Max(delta*g.Slope+g.Intercept, minGoalMean)
	away = math.Max(-delta*g.Slope+g.Intercept, minGoalMean)
	return
}

// PoissonQuantile returns the smallest k with P(X <= k) >= p for
// X ~ Poisson(lambda). The search is capped at min(3*lambda+20, MaxGoals).
func PoissonQuantile(p, lambda float64) int {
	if p <= 0 || math.IsNaN(lambda) || lambda <= 0 {
		return 0
	}
	high := int(math.Min(lambda*3+20, MaxGoals))
	if p >= 1 {
		return high
	}

	dist := distuv.Poisson{Lambda: lambda}
	low := 0
	for low < high {
		mid := (low + high) / 2
		if !(dist.CDF(float64(mid)) >= p) {
			low = mid + 1
		} else {
			high = mid
		}
	}
	return low
}

// SimulateMatch draws the score of an unplayed match from the uniforms
// uHome and uAway, rates the result and writes goals and ratings back.
// A played match keeps its score and is only rated.
func SimulateMatch(m *Match, params elo.Params, goals GoalModel, uHome, uAway float64) elo.Result {
	if !m.Played {
		lambdaHome, lambdaAway := goals.Means(m.Home.ELO, m.Away.ELO, params.HomeAdvantage)
		m.HomeGoals = PoissonQuantile(uHome, lambdaHome)
		m.AwayGoals = PoissonQuantile(uAway, lambdaAway)
		m.Played = true
	}

	res := elo.UpdateRatingsAfterMatch(
		m.Home.ELO, m.Away.ELO,
		float64(m.HomeGoals), float64(m.AwayGoals),
		params.Sensitivity, params.HomeAdvantage,
	)
	m.Home.ELO = res.HomeRating
	m.Away.ELO = res.AwayRating
	return res
}

// SimulateMatchRand is SimulateMatch with uniforms drawn from rng.
func SimulateMatchRand(m *Match, params elo.Params, goals GoalModel, rng *rand.Rand) elo.Result {
	uHome := rng.Float64()
	uAway := rng.Float64()
	return SimulateMatch(m, params, goals, uHome, uAway)
}
