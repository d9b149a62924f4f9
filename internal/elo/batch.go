package elo

import "fmt"

// BatchError reports the first invalid element of a batch.
type BatchError struct {
	Index int
	Err   error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("match %d: %v", e.Index, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }

// UpdateBatch rates every match independently with the same params.
// Ratings are not carried from one element to the next. Nothing is
// returned if any element is invalid or overflows.
func UpdateBatch(matches []MatchResult, p Params) ([]Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	for i, m := range matches {
		if err := m.Validate(); err != nil {
			return nil, &BatchError{Index: i, Err: err}
		}
	}

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = UpdateRatingsAfterMatch(m.HomeRating, m.AwayRating, m.HomeGoals, m.AwayGoals, p.Sensitivity, p.HomeAdvantage)
		if err := results[i].Validate(); err != nil {
			return nil, &BatchError{Index: i, Err: err}
		}
	}
	return results, nil
}
