package geo

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

func TestDistanceBerlinSegment(t *testing.T) {
	// Scenario A from the decoder test suite: a ~464m segment in Berlin.
	d := Distance(52.523, 13.41, 52.525, 13.416)
	if math.Abs(d-500) > 300 {
		t.Fatalf("Distance = %f, want roughly a few hundred meters", d)
	}
}

func TestDistanceSamePoint(t *testing.T) {
	if d := Distance(52.5, 13.4, 52.5, 13.4); d != 0 {
		t.Errorf("Distance(same point) = %f, want 0", d)
	}
}

func TestDestinationRoundTrip(t *testing.T) {
	lat1, lon1 := 52.523, 13.41
	bearing := 47.0
	dist := 1000.0

	lat2, lon2 := Destination(lat1, lon1, bearing, dist)
	back := Distance(lat1, lon1, lat2, lon2)
	if math.Abs(back-dist) > 0.5 {
		t.Errorf("round trip distance = %f, want ~%f", back, dist)
	}

	fwdBearing := InitialBearing(lat1, lon1, lat2, lon2)
	if math.Abs(fwdBearing-bearing) > 0.1 {
		t.Errorf("InitialBearing = %f, want ~%f", fwdBearing, bearing)
	}
}

func TestInterpolateAlongMidpoint(t *testing.T) {
	line := orb.LineString{
		{13.41, 52.523},
		{13.416, 52.525},
	}
	total := Length(line)
	mid := InterpolateAlong(line, total/2)

	offsetBack := Distance(line[0][1], line[0][0], mid[1], mid[0])
	if math.Abs(offsetBack-total/2) > 1 {
		t.Errorf("midpoint offset = %f, want ~%f", offsetBack, total/2)
	}
}

func TestInterpolateAlongEndpoints(t *testing.T) {
	line := orb.LineString{
		{13.41, 52.523},
		{13.416, 52.525},
	}
	start := InterpolateAlong(line, 0)
	if start != line[0] {
		t.Errorf("InterpolateAlong(0) = %v, want %v", start, line[0])
	}

	total := Length(line)
	end := InterpolateAlong(line, total)
	if d := Distance(end[1], end[0], line[len(line)-1][1], line[len(line)-1][0]); d > 1 {
		t.Errorf("InterpolateAlong(total) off by %f meters", d)
	}
}

func TestProjectPointOnSegment(t *testing.T) {
	line := orb.LineString{
		{13.41, 52.523},
		{13.416, 52.525},
	}
	mid := InterpolateAlong(line, Length(line)/2)

	offset, projected, perp := ProjectPoint(line, mid)
	if perp > 1 {
		t.Errorf("perpendicular distance = %f, want ~0", perp)
	}
	if math.Abs(offset-Length(line)/2) > 2 {
		t.Errorf("offset = %f, want ~%f", offset, Length(line)/2)
	}
	if d := Distance(projected[1], projected[0], mid[1], mid[0]); d > 1 {
		t.Errorf("projected point off by %f meters", d)
	}
}
