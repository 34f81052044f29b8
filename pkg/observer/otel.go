package observer

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"openlr/pkg/model"
)

const tracerName = "openlr/pkg/decode"

// tracer is the package-wide OpenTelemetry tracer used by TracingObserver.
// Callers that never configure a TracerProvider get otel's default no-op
// tracer, matching the corpus's tracing package's fallback.
var tracer = otel.Tracer(tracerName)

// TracingObserver records each decode event as a span event on a single
// span covering the whole decode call. StartDecodeSpan must be used to
// create the span; the zero value is inert.
type TracingObserver struct {
	span trace.Span
}

// StartDecodeSpan begins a span named "openlr.decode" and returns a
// TracingObserver bound to it, plus a context carrying the span. Callers
// must end the span themselves (the observer never calls span.End, since
// DecodeFinished fires before the caller's own cleanup would run).
func StartDecodeSpan(ctx context.Context) (context.Context, *TracingObserver, trace.Span) {
	ctx, span := tracer.Start(ctx, "openlr.decode")
	return ctx, &TracingObserver{span: span}, span
}

func (t *TracingObserver) CandidatesGenerated(lrpIndex int, candidates []model.Candidate) {
	if t.span == nil {
		return
	}
	t.span.AddEvent("candidates_generated", trace.WithAttributes(
		attribute.Int("lrp_index", lrpIndex),
		attribute.Int("count", len(candidates)),
	))
}

func (t *TracingObserver) CandidateChosen(lrpIndex int, candidate model.Candidate) {
	if t.span == nil {
		return
	}
	t.span.AddEvent("candidate_chosen", trace.WithAttributes(
		attribute.Int("lrp_index", lrpIndex),
		attribute.String("line_id", string(candidate.Line.ID())),
		attribute.Float64("score", candidate.TotalScore()),
	))
}

func (t *TracingObserver) RouteFound(pairIndex int, route model.Route) {
	if t.span == nil {
		return
	}
	t.span.AddEvent("route_found", trace.WithAttributes(
		attribute.Int("pair_index", pairIndex),
		attribute.Float64("length_m", route.Length()),
	))
}

func (t *TracingObserver) RouteRejected(pairIndex int, reason string) {
	if t.span == nil {
		return
	}
	t.span.AddEvent("route_rejected", trace.WithAttributes(
		attribute.Int("pair_index", pairIndex),
		attribute.String("reason", reason),
	))
}

func (t *TracingObserver) Backtrack(fromPairIndex int) {
	if t.span == nil {
		return
	}
	t.span.AddEvent("backtrack", trace.WithAttributes(attribute.Int("from_pair_index", fromPairIndex)))
}

func (t *TracingObserver) DecodeFinished(success bool, err error) {
	if t.span == nil {
		return
	}
	t.span.AddEvent("decode_finished", trace.WithAttributes(attribute.Bool("success", success)))
	if !success && err != nil {
		t.span.RecordError(err)
	}
}
