// Package observer defines the decoder's non-blocking telemetry hooks.
// Observers are purely observational external collaborators -- they must
// never influence decoding decisions.
package observer

import "openlr/pkg/model"

// Observer receives notifications at the six events the decoder can
// report. Every method must return promptly; implementations that need to
// do real work should hand off to a goroutine or buffered channel.
type Observer interface {
	CandidatesGenerated(lrpIndex int, candidates []model.Candidate)
	CandidateChosen(lrpIndex int, candidate model.Candidate)
	RouteFound(pairIndex int, route model.Route)
	RouteRejected(pairIndex int, reason string)
	Backtrack(fromPairIndex int)
	DecodeFinished(success bool, err error)
}

// noop implements Observer with empty methods.
type noop struct{}

// Noop is an Observer that does nothing; it is the default when the caller
// passes a nil observer.
var Noop Observer = noop{}

func (noop) CandidatesGenerated(int, []model.Candidate) {}
func (noop) CandidateChosen(int, model.Candidate)        {}
func (noop) RouteFound(int, model.Route)                 {}
func (noop) RouteRejected(int, string)                   {}
func (noop) Backtrack(int)                               {}
func (noop) DecodeFinished(bool, error)                  {}

// OrNoop returns o, or Noop if o is nil, so call sites never need a nil
// check before invoking an Observer method.
func OrNoop(o Observer) Observer {
	if o == nil {
		return Noop
	}
	return o
}
