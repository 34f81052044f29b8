package observer

import "openlr/pkg/model"

// Funcs adapts a set of optional callback functions into an Observer. Any
// nil field is treated as a no-op for that event.
type Funcs struct {
	OnCandidatesGenerated func(lrpIndex int, candidates []model.Candidate)
	OnCandidateChosen     func(lrpIndex int, candidate model.Candidate)
	OnRouteFound          func(pairIndex int, route model.Route)
	OnRouteRejected       func(pairIndex int, reason string)
	OnBacktrack           func(fromPairIndex int)
	OnDecodeFinished      func(success bool, err error)
}

func (f Funcs) CandidatesGenerated(lrpIndex int, candidates []model.Candidate) {
	if f.OnCandidatesGenerated != nil {
		f.OnCandidatesGenerated(lrpIndex, candidates)
	}
}

func (f Funcs) CandidateChosen(lrpIndex int, candidate model.Candidate) {
	if f.OnCandidateChosen != nil {
		f.OnCandidateChosen(lrpIndex, candidate)
	}
}

func (f Funcs) RouteFound(pairIndex int, route model.Route) {
	if f.OnRouteFound != nil {
		f.OnRouteFound(pairIndex, route)
	}
}

func (f Funcs) RouteRejected(pairIndex int, reason string) {
	if f.OnRouteRejected != nil {
		f.OnRouteRejected(pairIndex, reason)
	}
}

func (f Funcs) Backtrack(fromPairIndex int) {
	if f.OnBacktrack != nil {
		f.OnBacktrack(fromPairIndex)
	}
}

func (f Funcs) DecodeFinished(success bool, err error) {
	if f.OnDecodeFinished != nil {
		f.OnDecodeFinished(success, err)
	}
}

// Multi fans a single event stream out to several observers in order.
type Multi []Observer

func (m Multi) CandidatesGenerated(lrpIndex int, candidates []model.Candidate) {
	for _, o := range m {
		o.CandidatesGenerated(lrpIndex, candidates)
	}
}

func (m Multi) CandidateChosen(lrpIndex int, candidate model.Candidate) {
	for _, o := range m {
		o.CandidateChosen(lrpIndex, candidate)
	}
}

func (m Multi) RouteFound(pairIndex int, route model.Route) {
	for _, o := range m {
		o.RouteFound(pairIndex, route)
	}
}

func (m Multi) RouteRejected(pairIndex int, reason string) {
	for _, o := range m {
		o.RouteRejected(pairIndex, reason)
	}
}

func (m Multi) Backtrack(fromPairIndex int) {
	for _, o := range m {
		o.Backtrack(fromPairIndex)
	}
}

func (m Multi) DecodeFinished(success bool, err error) {
	for _, o := range m {
		o.DecodeFinished(success, err)
	}
}
