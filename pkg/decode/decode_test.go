package decode_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"openlr/pkg/config"
	"openlr/pkg/decode"
	"openlr/pkg/decodeerr"
	"openlr/pkg/mapreader"
	"openlr/pkg/model"
	"openlr/pkg/observer"
)

func straight(lon0, lat0, lon1, lat1 float64) model.Polyline {
	return model.Polyline{{lon0, lat0}, {lon1, lat1}}
}

// berlinSingleLineMap builds a two-node, one-line map approximating
// scenario A: two LRPs ~464m apart connected by a single frc3 line.
func berlinSingleLineMap(t *testing.T) (*mapreader.Memory, model.Line) {
	t.Helper()
	nodes := []mapreader.NodeRecord{
		{ID: "n1", Coordinate: model.Coordinate{13.410, 52.523}},
		{ID: "n2", Coordinate: model.Coordinate{13.416, 52.525}},
	}
	lines := []mapreader.LineRecord{
		{
			ID: "l1", StartNode: "n1", EndNode: "n2",
			FRC: model.FRC3, FOW: model.FOWSingleCarriageway,
			Coordinates: straight(13.410, 52.523, 13.416, 52.525),
		},
	}
	m := mapreader.Build(lines, nodes)
	l1, err := m.GetLine("l1")
	require.NoError(t, err)
	return m, l1
}

func TestDecodeLineTrivialTwoLRP(t *testing.T) {
	m, l1 := berlinSingleLineMap(t)
	cfg := config.Default()

	lrps := []model.LRP{
		{Coordinate: model.Coordinate{13.410, 52.523}, FRC: model.FRC3, FOW: model.FOWSingleCarriageway, Bearing: model.Bearing(0), LFRCNP: model.FRC7, DNP: l1.Length()},
		{Coordinate: model.Coordinate{13.416, 52.525}, FRC: model.FRC3, FOW: model.FOWSingleCarriageway, Bearing: model.Bearing(180), Last: true},
	}

	loc, err := decode.Line(model.LineLocationReference{Points: lrps}, m, cfg, nil)
	require.NoError(t, err)
	require.Len(t, loc.Route.Lines, 1)
	require.Equal(t, l1.ID(), loc.Route.Lines[0].ID())
	require.Zero(t, loc.PositiveOffset)
	require.Zero(t, loc.NegativeOffset)
}

func TestDecodeLineNoCandidatesFarFromMap(t *testing.T) {
	m, _ := berlinSingleLineMap(t)
	cfg := config.Default()
	cfg.SearchRadiusMeters = 100

	lrps := []model.LRP{
		{Coordinate: model.Coordinate{20.0, 60.0}, FRC: model.FRC3, FOW: model.FOWSingleCarriageway, LFRCNP: model.FRC7, DNP: 300},
		{Coordinate: model.Coordinate{13.416, 52.525}, FRC: model.FRC3, FOW: model.FOWSingleCarriageway, Last: true},
	}

	_, err := decode.Line(model.LineLocationReference{Points: lrps}, m, cfg, nil)
	require.Error(t, err)
	var noCands *decodeerr.NoCandidates
	require.ErrorAs(t, err, &noCands)
	require.Equal(t, 0, noCands.LRPIndex)
}

func TestDecodeLineLFRCNPFiltersHighFRCLines(t *testing.T) {
	// l23 (frc5) is a purely interior edge on the direct n2->n3 path --
	// never itself a candidate endpoint -- so the lfrcnp=3 ceiling must
	// force the detour via l25/l53 even though the direct path is shorter.
	nodes := []mapreader.NodeRecord{
		{ID: "n1", Coordinate: model.Coordinate{13.400, 52.500}},
		{ID: "n2", Coordinate: model.Coordinate{13.410, 52.500}},
		{ID: "n3", Coordinate: model.Coordinate{13.420, 52.500}},
		{ID: "n4", Coordinate: model.Coordinate{13.430, 52.500}},
		{ID: "n5", Coordinate: model.Coordinate{13.410, 52.510}},
	}
	lines := []mapreader.LineRecord{
		{ID: "l12", StartNode: "n1", EndNode: "n2", FRC: model.FRC3, FOW: model.FOWSingleCarriageway,
			Coordinates: straight(13.400, 52.500, 13.410, 52.500)},
		{ID: "l23", StartNode: "n2", EndNode: "n3", FRC: model.FRC5, FOW: model.FOWSingleCarriageway,
			Coordinates: straight(13.410, 52.500, 13.420, 52.500)},
		{ID: "l34", StartNode: "n3", EndNode: "n4", FRC: model.FRC3, FOW: model.FOWSingleCarriageway,
			Coordinates: straight(13.420, 52.500, 13.430, 52.500)},
		{ID: "l25", StartNode: "n2", EndNode: "n5", FRC: model.FRC3, FOW: model.FOWSingleCarriageway,
			Coordinates: straight(13.410, 52.500, 13.410, 52.510)},
		{ID: "l53", StartNode: "n5", EndNode: "n3", FRC: model.FRC3, FOW: model.FOWSingleCarriageway,
			Coordinates: straight(13.410, 52.510, 13.420, 52.500)},
	}
	m := mapreader.Build(lines, nodes)
	l12, err := m.GetLine("l12")
	require.NoError(t, err)
	l34, err := m.GetLine("l34")
	require.NoError(t, err)
	l25, err := m.GetLine("l25")
	require.NoError(t, err)
	l53, err := m.GetLine("l53")
	require.NoError(t, err)

	detourLength := l12.Length() + l25.Length() + l53.Length() + l34.Length()

	cfg := config.Default()
	cfg.MaxDNPDeviationAbs = 50

	lrps := []model.LRP{
		{Coordinate: model.Coordinate{13.400, 52.500}, FRC: model.FRC3, FOW: model.FOWSingleCarriageway, LFRCNP: model.FRC3, DNP: detourLength},
		{Coordinate: model.Coordinate{13.430, 52.500}, FRC: model.FRC3, FOW: model.FOWSingleCarriageway, Last: true},
	}

	loc, err := decode.Line(model.LineLocationReference{Points: lrps}, m, cfg, nil)
	require.NoError(t, err)
	for _, l := range loc.Route.Lines {
		require.NotEqual(t, model.LineID("l23"), l.ID(), "frc5 interior line must be excluded by the lfrcnp ceiling")
	}
}

func TestDecodeLineBacktracksWhenFirstCandidateFails(t *testing.T) {
	// n1 has two outgoing lines to two far-apart junctions; only the one
	// via n3 connects onward to the destination near n4. A low-scoring
	// (but present) parallel candidate at n1 forces at least one backtrack
	// event once the top candidate's routing dead-ends.
	nodes := []mapreader.NodeRecord{
		{ID: "n1", Coordinate: model.Coordinate{13.400, 52.500}},
		{ID: "n2", Coordinate: model.Coordinate{13.401, 52.510}}, // dead-end branch
		{ID: "n3", Coordinate: model.Coordinate{13.410, 52.500}},
		{ID: "n4", Coordinate: model.Coordinate{13.420, 52.500}},
	}
	lines := []mapreader.LineRecord{
		{ID: "dead_end", StartNode: "n1", EndNode: "n2", FRC: model.FRC3, FOW: model.FOWSingleCarriageway,
			Coordinates: straight(13.400, 52.500, 13.401, 52.510)},
		{ID: "through", StartNode: "n1", EndNode: "n3", FRC: model.FRC4, FOW: model.FOWSingleCarriageway,
			Coordinates: straight(13.400, 52.500, 13.410, 52.500)},
		{ID: "onward", StartNode: "n3", EndNode: "n4", FRC: model.FRC3, FOW: model.FOWSingleCarriageway,
			Coordinates: straight(13.410, 52.500, 13.420, 52.500)},
	}
	m := mapreader.Build(lines, nodes)
	through, err := m.GetLine("through")
	require.NoError(t, err)
	onward, err := m.GetLine("onward")
	require.NoError(t, err)

	cfg := config.Default()
	cfg.MaxDNPDeviationAbs = 50

	lrps := []model.LRP{
		{Coordinate: model.Coordinate{13.400, 52.500}, FRC: model.FRC3, FOW: model.FOWSingleCarriageway, LFRCNP: model.FRC7, DNP: through.Length() + onward.Length()},
		{Coordinate: model.Coordinate{13.420, 52.500}, FRC: model.FRC3, FOW: model.FOWSingleCarriageway, Last: true},
	}

	var backtracks int
	obs := observer.Funcs{OnBacktrack: func(int) { backtracks++ }}

	loc, err := decode.Line(model.LineLocationReference{Points: lrps}, m, cfg, obs)
	require.NoError(t, err)
	require.Equal(t, []model.LineID{"through", "onward"}, lineIDsOf(loc.Route))
	require.GreaterOrEqual(t, backtracks, 1)
}

func TestDecodeLineOffsetTrimming(t *testing.T) {
	nodes := []mapreader.NodeRecord{
		{ID: "n1", Coordinate: model.Coordinate{13.400, 52.500}},
		{ID: "n2", Coordinate: model.Coordinate{13.410, 52.500}},
	}
	lines := []mapreader.LineRecord{
		{ID: "l1", StartNode: "n1", EndNode: "n2", FRC: model.FRC3, FOW: model.FOWSingleCarriageway,
			Coordinates: straight(13.400, 52.500, 13.410, 52.500)},
	}
	m := mapreader.Build(lines, nodes)
	l1, err := m.GetLine("l1")
	require.NoError(t, err)

	cfg := config.Default()
	lrps := []model.LRP{
		{Coordinate: model.Coordinate{13.400, 52.500}, FRC: model.FRC3, FOW: model.FOWSingleCarriageway, LFRCNP: model.FRC7, DNP: l1.Length()},
		{Coordinate: model.Coordinate{13.410, 52.500}, FRC: model.FRC3, FOW: model.FOWSingleCarriageway, Last: true},
	}

	loc, err := decode.Line(model.LineLocationReference{Points: lrps, PositiveOffset: 100, NegativeOffset: 50}, m, cfg, nil)
	require.NoError(t, err)
	require.InDelta(t, 100, loc.PositiveOffset, 1e-6)
	require.InDelta(t, 50, loc.NegativeOffset, 1e-6)
	require.InDelta(t, l1.Length()-150, loc.TrimmedLength(), 1e-6)
}

func TestDecodeLineInvalidOffsetsRejected(t *testing.T) {
	nodes := []mapreader.NodeRecord{
		{ID: "n1", Coordinate: model.Coordinate{13.400, 52.500}},
		{ID: "n2", Coordinate: model.Coordinate{13.410, 52.500}},
	}
	lines := []mapreader.LineRecord{
		{ID: "l1", StartNode: "n1", EndNode: "n2", FRC: model.FRC3, FOW: model.FOWSingleCarriageway,
			Coordinates: straight(13.400, 52.500, 13.410, 52.500)},
	}
	m := mapreader.Build(lines, nodes)
	l1, err := m.GetLine("l1")
	require.NoError(t, err)

	cfg := config.Default()
	lrps := []model.LRP{
		{Coordinate: model.Coordinate{13.400, 52.500}, FRC: model.FRC3, FOW: model.FOWSingleCarriageway, LFRCNP: model.FRC7, DNP: l1.Length()},
		{Coordinate: model.Coordinate{13.410, 52.500}, FRC: model.FRC3, FOW: model.FOWSingleCarriageway, Last: true},
	}

	_, err = decode.Line(model.LineLocationReference{Points: lrps, PositiveOffset: l1.Length(), NegativeOffset: 10}, m, cfg, nil)
	require.Error(t, err)
	var invalid *decodeerr.InvalidOffsets
	require.ErrorAs(t, err, &invalid)
}

func lineIDsOf(route model.Route) []model.LineID {
	ids := make([]model.LineID, len(route.Lines))
	for i, l := range route.Lines {
		ids[i] = l.ID()
	}
	return ids
}
