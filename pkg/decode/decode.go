// Package decode implements the sequence decoder: the state machine that
// drives candidate generation and routing across an LRP sequence, with
// tail-first backtracking when a pair fails to verify against its DNP.
package decode

import (
	"math"

	"openlr/pkg/candidate"
	"openlr/pkg/config"
	"openlr/pkg/decodeerr"
	"openlr/pkg/mapreader"
	"openlr/pkg/model"
	"openlr/pkg/observer"
	"openlr/pkg/router"
)

// Routes resolves a verified per-pair route for every consecutive LRP pair
// in lrps, using tail-first depth-first backtracking over ranked candidate
// lists. The returned slice has len(lrps)-1 entries.
func Routes(lrps []model.LRP, reader mapreader.Reader, cfg config.Config, obs observer.Observer) ([]model.Route, error) {
	obs = observer.OrNoop(obs)
	n := len(lrps)
	if n < 2 {
		return nil, &decodeerr.InvalidReference{Reason: "fewer than two LRPs"}
	}

	candidates := make([][]model.Candidate, n)
	for idx, lrp := range lrps {
		cands, err := candidate.Generate(reader, lrp, cfg, idx == n-1)
		if err != nil {
			return nil, &decodeerr.MapReaderError{Cause: err}
		}
		obs.CandidatesGenerated(idx, cands)
		if len(cands) == 0 {
			return nil, &decodeerr.NoCandidates{LRPIndex: idx}
		}
		candidates[idx] = cands
	}

	routes := make([]model.Route, n-1)
	cursor := make([]int, n)
	i := 0

	for {
		if i < 0 {
			return nil, &decodeerr.NoMatch{}
		}
		if cursor[i] >= len(candidates[i]) {
			cursor[i] = 0
			i--
			if i < 0 {
				return nil, &decodeerr.NoMatch{}
			}
			cursor[i]++
			continue
		}
		if i == n-1 {
			break
		}
		if cursor[i+1] >= len(candidates[i+1]) {
			// Every candidate for LRP i+1 has failed against the current
			// candidate for LRP i: LRP i's choice itself must change. Since
			// that cursor is also the right-hand candidate of pair i-1 (when
			// one exists), re-verifying that earlier pair is required; pair
			// 0's left cursor has no earlier pair to re-verify.
			cursor[i+1] = 0
			obs.Backtrack(i)
			cursor[i]++
			if i > 0 {
				i--
			}
			continue
		}

		a := candidates[i][cursor[i]]
		b := candidates[i+1][cursor[i+1]]
		ceiling := cfg.EffectiveLFRCCeiling(lrps[i].LFRCNP)

		route, ok, err := router.Route(reader, a.Line, a.Offset, b.Line, b.Offset, ceiling)
		if err != nil {
			return nil, &decodeerr.MapReaderError{Cause: err}
		}
		if !ok {
			obs.RouteRejected(i, (&decodeerr.RouteNotFound{PairIndex: i}).Error())
			cursor[i+1]++
			continue
		}

		tolerance := math.Max(cfg.MaxDNPDeviationAbs, cfg.MaxDNPDeviationRel*lrps[i].DNP)
		if math.Abs(route.Length()-lrps[i].DNP) > tolerance {
			obs.RouteRejected(i, (&decodeerr.LengthMismatch{
				PairIndex:      i,
				ExpectedMeters: lrps[i].DNP,
				ActualMeters:   route.Length(),
			}).Error())
			cursor[i+1]++
			continue
		}

		obs.RouteFound(i, route)
		obs.CandidateChosen(i, a)
		routes[i] = route
		i++
	}

	obs.CandidateChosen(n-1, candidates[n-1][cursor[n-1]])
	return routes, nil
}
