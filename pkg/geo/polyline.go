package geo

import "github.com/paulmach/orb"

// Length returns the total geodesic length of a polyline in meters.
func Length(line orb.LineString) float64 {
	var total float64
	for i := 0; i+1 < len(line); i++ {
		total += Distance(line[i][1], line[i][0], line[i+1][1], line[i+1][0])
	}
	return total
}

// InterpolateAlong returns the coordinate at the given meter offset along
// the polyline, clamped to [0, Length(line)].
func InterpolateAlong(line orb.LineString, meters float64) orb.Point {
	if len(line) == 0 {
		return orb.Point{}
	}
	if len(line) == 1 || meters <= 0 {
		return line[0]
	}

	remaining := meters
	for i := 0; i+1 < len(line); i++ {
		a, b := line[i], line[i+1]
		segLen := Distance(a[1], a[0], b[1], b[0])
		if remaining <= segLen || i == len(line)-2 {
			if segLen == 0 {
				return a
			}
			frac := remaining / segLen
			if frac > 1 {
				frac = 1
			}
			if frac < 0 {
				frac = 0
			}
			bearing := InitialBearing(a[1], a[0], b[1], b[0])
			lat, lon := Destination(a[1], a[0], bearing, frac*segLen)
			return orb.Point{lon, lat}
		}
		remaining -= segLen
	}
	return line[len(line)-1]
}

// ProjectPoint projects p onto the polyline, returning the meter offset of
// the closest point along the line, the projected coordinate, and the
// perpendicular distance in meters.
func ProjectPoint(line orb.LineString, p orb.Point) (offset float64, projected orb.Point, perpDist float64) {
	if len(line) == 0 {
		return 0, orb.Point{}, 0
	}
	if len(line) == 1 {
		return 0, line[0], Distance(p[1], p[0], line[0][1], line[0][0])
	}

	bestDist := Distance(p[1], p[0], line[0][1], line[0][0])
	bestOffset := 0.0
	bestProjected := line[0]
	cumulative := 0.0

	for i := 0; i+1 < len(line); i++ {
		a, b := line[i], line[i+1]
		segLen := Distance(a[1], a[0], b[1], b[0])

		// Coarse planar projection ratio along this segment (cheap), then
		// re-derive the exact ellipsoidal offset/distance at that ratio.
		_, ratio := PointToSegmentDist(p[1], p[0], a[1], a[0], b[1], b[0])
		bearing := InitialBearing(a[1], a[0], b[1], b[0])
		candLat, candLon := a[1], a[0]
		if segLen > 0 {
			candLat, candLon = Destination(a[1], a[0], bearing, ratio*segLen)
		}
		d := Distance(p[1], p[0], candLat, candLon)

		if d < bestDist {
			bestDist = d
			bestOffset = cumulative + ratio*segLen
			bestProjected = orb.Point{candLon, candLat}
		}
		cumulative += segLen
	}

	return bestOffset, bestProjected, bestDist
}

// BearingOfPrefix returns the initial bearing measured over the first
// distMeters of the polyline (or its full length if shorter).
func BearingOfPrefix(line orb.LineString, distMeters float64) Bearing {
	if len(line) < 2 {
		return 0
	}
	end := InterpolateAlong(line, distMeters)
	return Bearing(InitialBearing(line[0][1], line[0][0], end[1], end[0]))
}

// BearingOfSuffix returns the bearing of the final distMeters of the
// polyline, as if traversed in reverse. Candidate scoring does not call it;
// it measures the last LRP's reversed bearing with BearingAtOffset.
func BearingOfSuffix(line orb.LineString, distMeters float64) Bearing {
	if len(line) < 2 {
		return 0
	}
	total := Length(line)
	start := total - distMeters
	if start < 0 {
		start = 0
	}
	startPt := InterpolateAlong(line, start)
	end := line[len(line)-1]
	return Bearing(InitialBearing(end[1], end[0], startPt[1], startPt[0]))
}

// BearingAtOffset returns the bearing measured over distMeters of the
// polyline starting at offsetM. When forward is true, the segment runs from
// offsetM to offsetM+distMeters (clamped to the line's length) in the
// line's own direction -- the shape used for a regular LRP's outgoing-line
// bearing. When forward is false, the segment runs from offsetM back to
// offsetM-distMeters (clamped to 0), reporting the bearing of that reversed
// traversal -- the shape the last LRP's incoming-line bearing uses.
func BearingAtOffset(line orb.LineString, offsetM, distMeters float64, forward bool) Bearing {
	if len(line) < 2 {
		return 0
	}
	if forward {
		start := InterpolateAlong(line, offsetM)
		end := InterpolateAlong(line, offsetM+distMeters)
		return Bearing(InitialBearing(start[1], start[0], end[1], end[0]))
	}
	end := InterpolateAlong(line, offsetM)
	start := InterpolateAlong(line, offsetM-distMeters)
	return Bearing(InitialBearing(end[1], end[0], start[1], start[0]))
}

// Bearing is a local alias avoiding a model import cycle; geo is a leaf
// package callers convert to model.Bearing at the boundary.
type Bearing = float64
