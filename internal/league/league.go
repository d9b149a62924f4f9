package league

// Team represents a club and its current rating.
type Team struct {
	ID   int     `json:"id"`
	Name string  `json:"name"`
	ELO  float64 `json:"elo"`
}

// Match represents a fixture between two teams. Played marks a recorded
// result that must not be simulated again.
type Match struct {
	ID        int   `json:"id"`
	Week      int   `json:"week"`
	Home      *Team `json:"home"`
	Away      *Team `json:"away"`
	HomeGoals int   `json:"home_goals"`
	AwayGoals int   `json:"away_goals"`
	Played    bool  `json:"played"`
}
