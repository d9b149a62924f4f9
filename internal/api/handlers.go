package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"net/http"

	"github.com/utakatalp/league-elo/internal/elo"
	"github.com/utakatalp/league-elo/internal/league"
	"github.com/utakatalp/league-elo/pkg/logging"
	"go.uber.org/zap"
)

var errMissingField = errors.New("missing field")

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// paramsRequest carries optional per-request overrides of the configured
// model constants.
type paramsRequest struct {
	Sensitivity   *float64 `json:"sensitivity"`
	HomeAdvantage *float64 `json:"home_advantage"`
}

func (p paramsRequest) resolve(defaults elo.Params) elo.Params {
	if p.Sensitivity != nil {
		defaults.Sensitivity = *p.Sensitivity
	}
	if p.HomeAdvantage != nil {
		defaults.HomeAdvantage = *p.HomeAdvantage
	}
	return defaults
}

type matchRequest struct {
	HomeRating *float64 `json:"home_rating"`
	AwayRating *float64 `json:"away_rating"`
	HomeGoals  *float64 `json:"home_goals"`
	AwayGoals  *float64 `json:"away_goals"`
}

func (m matchRequest) toMatch() (elo.MatchResult, error) {
	fields := []struct {
		name  string
		value *float64
	}{
		{"home_rating", m.HomeRating},
		{"away_rating", m.AwayRating},
		{"home_goals", m.HomeGoals},
		{"away_goals", m.AwayGoals},
	}
	for _, f := range fields {
		if f.value == nil {
			return elo.MatchResult{}, fmt.Errorf("%s: %w", f.name, errMissingField)
		}
	}
	return elo.MatchResult{
		HomeRating: *m.HomeRating,
		AwayRating: *m.AwayRating,
		HomeGoals:  *m.HomeGoals,
		AwayGoals:  *m.AwayGoals,
	}, nil
}

type updateRequest struct {
	matchRequest
	paramsRequest
}

type resultResponse struct {
	elo.Result
	Tuple [5]float64 `json:"tuple"`
}

func newResultResponse(r elo.Result) resultResponse {
	return resultResponse{Result: r, Tuple: r.Tuple()}
}

type batchRequest struct {
	paramsRequest
	Matches []matchRequest `json:"matches"`
}

type batchResponse struct {
	Results []resultResponse `json:"results"`
}

type simulateRequest struct {
	HomeRating *float64 `json:"home_rating"`
	AwayRating *float64 `json:"away_rating"`
	Seed       *int64   `json:"seed"`
	paramsRequest
}

type simulateResponse struct {
	HomeGoals int            `json:"home_goals"`
	AwayGoals int            `json:"away_goals"`
	Result    resultResponse `json:"result"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: Version})
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if !decode(w, r, &req) {
		return
	}

	m, err := req.toMatch()
	if err != nil {
		writeError(w, err)
		return
	}
	res, err := req.resolve(s.cfg.Elo).Update(m)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newResultResponse(res))
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if !decode(w, r, &req) {
		return
	}

	matches := make([]elo.MatchResult, len(req.Matches))
	for i, mr := range req.Matches {
		m, err := mr.toMatch()
		if err != nil {
			writeError(w, &elo.BatchError{Index: i, Err: err})
			return
		}
		matches[i] = m
	}

	results, err := elo.UpdateBatch(matches, req.resolve(s.cfg.Elo))
	if err != nil {
		writeError(w, err)
		return
	}

	resp := batchResponse{Results: make([]resultResponse, len(results))}
	for i, res := range results {
		resp.Results[i] = newResultResponse(res)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if !decode(w, r, &req) {
		return
	}
	if req.HomeRating == nil || req.AwayRating == nil {
		writeError(w, fmt.Errorf("home_rating and away_rating: %w", errMissingField))
		return
	}

	params := req.resolve(s.cfg.Elo)
	if err := elo.Validate(*req.HomeRating, *req.AwayRating, 0, 0, params); err != nil {
		writeError(w, err)
		return
	}

	seed := s.now().UnixNano()
	if req.Seed != nil {
		seed = *req.Seed
	}

	m := &league.Match{
		Home: &league.Team{Name: "home", ELO: *req.HomeRating},
		Away: &league.Team{Name: "away", ELO: *req.AwayRating},
	}
	res := league.SimulateMatchRand(m, params, s.cfg.Goals, rand.New(rand.NewSource(seed)))
	if err := res.Validate(); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, simulateResponse{
		HomeGoals: m.HomeGoals,
		AwayGoals: m.AwayGoals,
		Result:    newResultResponse(res),
	})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("decoding request: %v", err)})
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, errMissingField) || errors.Is(err, elo.ErrNonFinite) || errors.Is(err, elo.ErrNegativeGoals) {
		status = http.StatusBadRequest
	} else {
		logging.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// writeJSON encodes before writing the header so an encoding failure
// still reaches the client as a 500.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		logging.Error("encoding response", zap.Error(err))
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(errorResponse{Error: fmt.Sprintf("encoding response: %v", err)})
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logging.Warn("writing response", zap.Error(err))
	}
}
