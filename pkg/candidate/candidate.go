// Package candidate generates scored candidate projections of an LRP onto
// nearby lines in the target map, including endpoint promotion to
// successor lines.
package candidate

import (
	"sort"

	"openlr/pkg/config"
	"openlr/pkg/geo"
	"openlr/pkg/mapreader"
	"openlr/pkg/model"
	"openlr/pkg/score"
)

// Generate returns scored candidates for lrp, sorted by score descending.
// isLast controls last-LRP-specific handling: end-of-line projections are
// kept rather than promoted, and bearing is measured over the incoming
// line's final segment reversed.
func Generate(reader mapreader.Reader, lrp model.LRP, cfg config.Config, isLast bool) ([]model.Candidate, error) {
	lines, err := reader.FindLinesCloseTo(lrp.Coordinate, cfg.SearchRadiusMeters)
	if err != nil {
		return nil, err
	}

	var out []model.Candidate
	for _, line := range lines {
		offset, projected, dist := geo.ProjectPoint(line.Coordinates(), lrp.Coordinate)
		if dist > cfg.SearchRadiusMeters {
			continue
		}

		if !isLast && offset >= line.Length() {
			promoted, err := promote(reader, line, lrp, cfg)
			if err != nil {
				return nil, err
			}
			out = append(out, promoted...)
			continue
		}

		c, ok := scoreCandidate(line, offset, projected, dist, lrp, cfg, !isLast)
		if ok {
			out = append(out, c)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score.Total > out[j].Score.Total })
	return out, nil
}

// promote emits start-of-line candidates on every line outgoing from the
// node at the end of line: a projection landing exactly on a line's
// terminal node is a zero-length fragment and is replaced by its
// successors.
func promote(reader mapreader.Reader, line model.Line, lrp model.LRP, cfg config.Config) ([]model.Candidate, error) {
	node, err := reader.GetNode(line.EndNode())
	if err != nil {
		return nil, err
	}

	var out []model.Candidate
	for _, next := range node.OutgoingLines() {
		dist := geo.Distance(lrp.Coordinate[1], lrp.Coordinate[0], next.Coordinates()[0][1], next.Coordinates()[0][0])
		if dist > cfg.SearchRadiusMeters {
			continue
		}
		c, ok := scoreCandidate(next, 0, next.Coordinates()[0], dist, lrp, cfg, true)
		if ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func scoreCandidate(line model.Line, offset float64, projected model.Coordinate, dist float64, lrp model.LRP, cfg config.Config, forward bool) (model.Candidate, bool) {
	bearing := model.Bearing(geo.BearingAtOffset(line.Coordinates(), offset, cfg.BearDistMeters, forward))
	breakdown := score.Breakdown(cfg, dist, lrp.FRC, line.FRC(), lrp.FOW, line.FOW(), lrp.Bearing, bearing)
	if breakdown.Total < cfg.MinScore {
		return model.Candidate{}, false
	}
	return model.Candidate{
		Line:       line,
		Offset:     offset,
		Projected:  projected,
		Score:      breakdown,
		AtEndpoint: offset == 0 || offset == line.Length(),
	}, true
}
