package league

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/utakatalp/league-elo/internal/elo"
)

func TestPoissonQuantile(t *testing.T) {
	tests := []struct {
		name     string
		p        float64
		lambda   float64
		expected int
	}{
		{"zero probability", 0, 1, 0},
		{"below first mass", 0.3, 1, 0},
		{"median", 0.5, 1, 1},
		{"upper tail", 0.9, 1, 2},
		{"far tail", 0.95, 1, 3},
		{"tiny mean", 0.99, 0.001, 0},
		{"certain is capped", 1, 2, 26},
		{"no mean", 0.5, 0, 0},
		{"mean above the goal cap", 0.5, 1e17, MaxGoals},
		{"huge mean", 0.5, 1e300, MaxGoals},
		{"certain with huge mean", 1, 1e300, MaxGoals},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, PoissonQuantile(test.p, test.lambda))
		})
	}
}

func TestGoalModelMeans(t *testing.T) {
	g := DefaultGoalModel()

	home, away := g.Means(1500, 1500, 0)
	assert.Equal(t, g.Intercept, home)
	assert.Equal(t, g.Intercept, away)

	home, away = g.Means(1500, 1500, 65)
	assert.Greater(t, home, away)
	assert.InDelta(t, 2*g.Intercept, home+away, 1e-12)

	home, away = g.Means(1000, 2000, 0)
	assert.Equal(t, minGoalMean, home)
	assert.Greater(t, away, 3.0)
}

func TestSimulateMatch(t *testing.T) {
	home := &Team{ID: 1, Name: "Bayern Munich", ELO: 1500}
	away := &Team{ID: 2, Name: "Borussia Dortmund", ELO: 1500}
	m := &Match{ID: 7, Week: 1, Home: home, Away: away}

	res := SimulateMatch(m, elo.DefaultParams(), DefaultGoalModel(), 0.5, 0.5)

	assert.True(t, m.Played)
	assert.Equal(t, 1, m.HomeGoals)
	assert.Equal(t, 1, m.AwayGoals)
	assert.Equal(t, "Bayern Munich 1 - 1 Borussia Dortmund", m.ScoreLine())
	assert.InDelta(t, 1498.150675388, home.ELO, 1e-6)
	assert.InDelta(t, 1501.849324612, away.ELO, 1e-6)
	assert.Equal(t, res.HomeRating, home.ELO)
	assert.Equal(t, res.AwayRating, away.ELO)
}

func TestSimulateMatchOverwhelmingFavourite(t *testing.T) {
	home := &Team{Name: "Giants", ELO: 1e300}
	away := &Team{Name: "Minnows", ELO: 1500}
	m := &Match{Home: home, Away: away}

	res := SimulateMatch(m, elo.DefaultParams(), DefaultGoalModel(), 0.5, 0.5)

	assert.Equal(t, MaxGoals, m.HomeGoals)
	assert.Equal(t, 0, m.AwayGoals)
	assert.InDelta(t, 10.0/11, res.HomeExpectancy, 1e-12)
	assert.Greater(t, res.Delta(), 0.0)
	require.NoError(t, res.Validate())
}

func TestSimulateMatchKeepsRecordedScore(t *testing.T) {
	home := &Team{Name: "Leipzig", ELO: 1600}
	away := &Team{Name: "Freiburg", ELO: 1500}
	m := &Match{Home: home, Away: away, HomeGoals: 2, AwayGoals: 1, Played: true}

	res := SimulateMatch(m, elo.DefaultParams(), DefaultGoalModel(), 0.99, 0.99)

	assert.Equal(t, 2, m.HomeGoals)
	assert.Equal(t, 1, m.AwayGoals)
	assert.Equal(t, elo.UpdateRatingsAfterMatch(1600, 1500, 2, 1, 20, 65), res)
	assert.Equal(t, res.HomeRating, home.ELO)
}

func TestSimulateMatchRandIsReproducible(t *testing.T) {
	run := func() (int, int, float64) {
		home := &Team{Name: "A", ELO: 1550}
		away := &Team{Name: "B", ELO: 1480}
		m := &Match{Home: home, Away: away}
		SimulateMatchRand(m, elo.DefaultParams(), DefaultGoalModel(), rand.New(rand.NewSource(42)))
		return m.HomeGoals, m.AwayGoals, home.ELO
	}

	h1, a1, e1 := run()
	h2, a2, e2 := run()
	require.Equal(t, h1, h2)
	require.Equal(t, a1, a2)
	assert.Equal(t, e1, e2)
	assert.GreaterOrEqual(t, h1, 0)
	assert.GreaterOrEqual(t, a1, 0)
}

func TestSimulatedSeasonConservesRatingPool(t *testing.T) {
	teams := []*Team{
		{ID: 1, Name: "A", ELO: 1700},
		{ID: 2, Name: "B", ELO: 1550},
		{ID: 3, Name: "C", ELO: 1420},
	}
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 50; i++ {
		m := &Match{Home: teams[i%3], Away: teams[(i+1)%3]}
		SimulateMatchRand(m, elo.DefaultParams(), DefaultGoalModel(), rng)
	}

	total := 0.0
	for _, team := range teams {
		total += team.ELO
	}
	assert.InDelta(t, 1700+1550+1420, total, 1e-6)
}

func BenchmarkSimulateMatch(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	params := elo.DefaultParams()
	goals := DefaultGoalModel()
	home := &Team{Name: "A", ELO: 1600}
	away := &Team{Name: "B", ELO: 1500}

	for i := 0; i < b.N; i++ {
		m := &Match{Home: home, Away: away}
		SimulateMatchRand(m, params, goals, rng)
	}
}

func BenchmarkPoissonQuantile(b *testing.B) {
	for i := 0; i < b.N; i++ {
		PoissonQuantile(float64(i%100)/100, 1.4)
	}
}
