package observer

import (
	"go.uber.org/zap"

	"openlr/pkg/model"
)

// ZapObserver logs each decode event at debug level via a structured zap
// logger, the way the corpus's service layer logs request lifecycle events.
type ZapObserver struct {
	log *zap.Logger
}

// NewZapObserver wraps log. A nil logger falls back to zap.NewNop().
func NewZapObserver(log *zap.Logger) *ZapObserver {
	if log == nil {
		log = zap.NewNop()
	}
	return &ZapObserver{log: log}
}

func (z *ZapObserver) CandidatesGenerated(lrpIndex int, candidates []model.Candidate) {
	z.log.Debug("candidates generated", zap.Int("lrp_index", lrpIndex), zap.Int("count", len(candidates)))
}

func (z *ZapObserver) CandidateChosen(lrpIndex int, candidate model.Candidate) {
	z.log.Debug("candidate chosen",
		zap.Int("lrp_index", lrpIndex),
		zap.String("line_id", string(candidate.Line.ID())),
		zap.Float64("score", candidate.TotalScore()),
	)
}

func (z *ZapObserver) RouteFound(pairIndex int, route model.Route) {
	z.log.Debug("route found", zap.Int("pair_index", pairIndex), zap.Int("lines", len(route.Lines)), zap.Float64("length_m", route.Length()))
}

func (z *ZapObserver) RouteRejected(pairIndex int, reason string) {
	z.log.Debug("route rejected", zap.Int("pair_index", pairIndex), zap.String("reason", reason))
}

func (z *ZapObserver) Backtrack(fromPairIndex int) {
	z.log.Debug("backtrack", zap.Int("from_pair_index", fromPairIndex))
}

func (z *ZapObserver) DecodeFinished(success bool, err error) {
	if success {
		z.log.Debug("decode finished", zap.Bool("success", true))
		return
	}
	z.log.Debug("decode finished", zap.Bool("success", false), zap.Error(err))
}
