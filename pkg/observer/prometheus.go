package observer

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"openlr/pkg/model"
)

// prometheus metrics for the decoder, named and shaped the way the corpus's
// own OSM-tooling service exposes them (counters labeled by outcome,
// registered once via promauto).
var (
	candidatesGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "openlr_candidates_generated_total",
			Help: "Total number of candidates generated per LRP.",
		},
		[]string{"lrp_index"},
	)

	routesFoundTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "openlr_routes_found_total",
			Help: "Total number of pair-routes, labeled by outcome (found or rejected).",
		},
		[]string{"outcome"},
	)

	backtracksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "openlr_backtracks_total",
			Help: "Total number of backtrack events during decoding.",
		},
	)

	decodesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "openlr_decodes_total",
			Help: "Total number of completed decode calls.",
		},
		[]string{"outcome"},
	)
)

// PrometheusObserver records decode events as Prometheus metrics. It never
// reads the counters it writes, keeping it a write-only external
// collaborator.
type PrometheusObserver struct{}

func (PrometheusObserver) CandidatesGenerated(lrpIndex int, candidates []model.Candidate) {
	candidatesGeneratedTotal.WithLabelValues(strconv.Itoa(lrpIndex)).Add(float64(len(candidates)))
}

func (PrometheusObserver) CandidateChosen(int, model.Candidate) {}

func (PrometheusObserver) RouteFound(int, model.Route) {
	routesFoundTotal.WithLabelValues("found").Inc()
}

func (PrometheusObserver) RouteRejected(int, string) {
	routesFoundTotal.WithLabelValues("rejected").Inc()
}

func (PrometheusObserver) Backtrack(int) {
	backtracksTotal.Inc()
}

func (PrometheusObserver) DecodeFinished(success bool, _ error) {
	if success {
		decodesTotal.WithLabelValues("success").Inc()
		return
	}
	decodesTotal.WithLabelValues("failure").Inc()
}
