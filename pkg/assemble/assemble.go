// Package assemble concatenates per-pair routes into a single decoded path
// and projects point-along-line and POI-with-access-point locations onto
// it.
package assemble

import (
	"openlr/pkg/decodeerr"
	"openlr/pkg/model"
)

// Concatenate joins consecutive per-pair routes into one ordered line
// sequence, collapsing an exact line repeat at a join: when the last line
// of one route equals the first line of the next (the pair boundary sits
// on the same line from both sides), the duplicate is dropped.
func Concatenate(routes []model.Route) []model.Line {
	var lines []model.Line
	for _, route := range routes {
		if len(lines) > 0 && len(route.Lines) > 0 && lines[len(lines)-1].ID() == route.Lines[0].ID() {
			lines = append(lines, route.Lines[1:]...)
			continue
		}
		lines = append(lines, route.Lines...)
	}
	return lines
}

func totalLength(lines []model.Line) float64 {
	var total float64
	for _, l := range lines {
		total += l.Length()
	}
	return total
}

// Line assembles a DecodedLineLocation from per-pair routes and the
// reference's positive/negative offsets, dropping leading/trailing lines
// fully consumed by an offset and keeping the residual offset on the
// retained boundary line.
func Line(routes []model.Route, positiveOffset, negativeOffset float64) (model.DecodedLineLocation, error) {
	lines := Concatenate(routes)
	total := totalLength(lines)

	if positiveOffset+negativeOffset >= total {
		return model.DecodedLineLocation{}, &decodeerr.InvalidOffsets{
			PositiveOffset: positiveOffset,
			NegativeOffset: negativeOffset,
			TotalLength:    total,
		}
	}

	start := 0
	remainingP := positiveOffset
	for start < len(lines) && remainingP >= lines[start].Length() {
		remainingP -= lines[start].Length()
		start++
	}

	end := len(lines) - 1
	remainingN := negativeOffset
	for end >= start && remainingN >= lines[end].Length() {
		remainingN -= lines[end].Length()
		end--
	}

	return model.DecodedLineLocation{
		Route:          model.Route{Lines: lines[start : end+1]},
		PositiveOffset: remainingP,
		NegativeOffset: remainingN,
	}, nil
}

// PointAlongLine decodes the underlying line location's route without
// applying its offsets (points do not trim), then locates the coordinate
// at fraction of the total route length.
func PointAlongLine(routes []model.Route, fraction float64) (model.PointAlongLine, error) {
	lines := Concatenate(routes)
	total := totalLength(lines)
	if len(lines) == 0 {
		return model.PointAlongLine{}, &decodeerr.NoMatch{}
	}

	absolute := total * fraction
	var cumulative float64
	for _, line := range lines {
		next := cumulative + line.Length()
		if next >= absolute || line == lines[len(lines)-1] {
			return model.PointAlongLine{
				Route:       model.Route{Lines: lines},
				Line:        line,
				Offset:      absolute - cumulative,
				Side:        model.SideUndefined,
				Orientation: model.OrientationUndefined,
			}, nil
		}
		cumulative = next
	}

	last := lines[len(lines)-1]
	return model.PointAlongLine{
		Route:       model.Route{Lines: lines},
		Line:        last,
		Offset:      last.Length(),
		Side:        model.SideUndefined,
		Orientation: model.OrientationUndefined,
	}, nil
}

// POIWithAccessPoint computes the access point exactly as PointAlongLine
// and pairs it with the POI's own coordinate, carried through unchanged.
func POIWithAccessPoint(routes []model.Route, fraction float64, poiCoordinate model.Coordinate) (model.PoiWithAccessPoint, error) {
	accessPoint, err := PointAlongLine(routes, fraction)
	if err != nil {
		return model.PoiWithAccessPoint{}, err
	}
	return model.PoiWithAccessPoint{
		AccessPoint:   accessPoint,
		POICoordinate: poiCoordinate,
	}, nil
}
