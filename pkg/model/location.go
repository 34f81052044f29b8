package model

// DecodedLineLocation is a concatenated Route trimmed by positive/negative
// offsets.
type DecodedLineLocation struct {
	Route          Route
	PositiveOffset float64 // meters clipped from the start
	NegativeOffset float64 // meters clipped from the end
}

// TrimmedLength returns the route length minus both offsets.
func (d DecodedLineLocation) TrimmedLength() float64 {
	return d.Route.Length() - d.PositiveOffset - d.NegativeOffset
}

// PointAlongLine is a point projected onto a decoded route at a given
// fractional offset.
type PointAlongLine struct {
	Route     Route
	Line      Line
	Offset    float64 // meters along Line
	Side      Side
	Orientation Orientation
}

// PoiWithAccessPoint pairs a PointAlongLine access point with the POI's own
// coordinate.
type PoiWithAccessPoint struct {
	AccessPoint   PointAlongLine
	POICoordinate Coordinate
}

// Side describes which side of the referenced road a POI lies on.
type Side int

const (
	SideUndefined Side = iota
	SideRight
	SideLeft
	SideBoth
)

// Orientation describes the direction of travel relevant to a point.
type Orientation int

const (
	OrientationUndefined Orientation = iota
	OrientationWithLineDirection
	OrientationAgainstLineDirection
	OrientationBothDirections
)
