// Package model defines the immutable value types the decoder operates on:
// coordinates, road attributes, location reference points, and the map-side
// line/node vocabulary.
package model

import (
	"fmt"

	"github.com/paulmach/orb"
)

// Coordinate is a WGS84 (longitude, latitude) pair in degrees, matching
// orb's [lon, lat] point convention.
type Coordinate = orb.Point

// Polyline is an ordered sequence of coordinates.
type Polyline = orb.LineString

// FRC is the Functional Road Class, 0 (most important) through 7.
type FRC int

const (
	FRC0 FRC = iota
	FRC1
	FRC2
	FRC3
	FRC4
	FRC5
	FRC6
	FRC7
)

// Valid reports whether f is one of the eight defined FRC values.
func (f FRC) Valid() bool { return f >= FRC0 && f <= FRC7 }

func (f FRC) String() string {
	if !f.Valid() {
		return fmt.Sprintf("FRC(%d)", int(f))
	}
	return fmt.Sprintf("FRC%d", int(f))
}

// FOW is the Form of Way enumeration.
type FOW int

const (
	FOWUndefined FOW = iota
	FOWMotorway
	FOWMultipleCarriageway
	FOWSingleCarriageway
	FOWRoundabout
	FOWTrafficSquare
	FOWSliproad
	FOWOther
)

func (f FOW) String() string {
	switch f {
	case FOWUndefined:
		return "UNDEFINED"
	case FOWMotorway:
		return "MOTORWAY"
	case FOWMultipleCarriageway:
		return "MULTIPLE_CARRIAGEWAY"
	case FOWSingleCarriageway:
		return "SINGLE_CARRIAGEWAY"
	case FOWRoundabout:
		return "ROUNDABOUT"
	case FOWTrafficSquare:
		return "TRAFFIC_SQUARE"
	case FOWSliproad:
		return "SLIPROAD"
	case FOWOther:
		return "OTHER"
	default:
		return fmt.Sprintf("FOW(%d)", int(f))
	}
}

// Bearing is a clockwise-from-north angle in degrees, normalized to [0, 360).
type Bearing float64

// Normalize wraps b into [0, 360).
func (b Bearing) Normalize() Bearing {
	v := float64(b)
	for v < 0 {
		v += 360
	}
	for v >= 360 {
		v -= 360
	}
	return Bearing(v)
}

// AngleDiff returns the smaller angular difference between two bearings, in
// [0, 180].
func AngleDiff(a, b Bearing) float64 {
	d := float64(a.Normalize() - b.Normalize())
	if d < 0 {
		d = -d
	}
	if d > 180 {
		d = 360 - d
	}
	return d
}

// LRP is an immutable Location Reference Point, the reference-side
// description of one point along an OpenLR location plus the road leaving
// it. The last LRP in a sequence carries the bearing of the incoming line
// (reversed) and has no DNP/LFRCNP.
type LRP struct {
	Coordinate Coordinate
	FRC        FRC
	FOW        FOW
	Bearing    Bearing
	LFRCNP     FRC     // lowest FRC permitted to the next LRP; meaningless on the last LRP
	DNP        float64 // distance to next point in meters; meaningless on the last LRP
	Last       bool
}

// LineLocationReference is the parsed wire-format input to decode.Line: an
// ordered sequence of LRPs plus positive/negative trim offsets in meters.
type LineLocationReference struct {
	Points         []LRP
	PositiveOffset float64
	NegativeOffset float64
}

// PointAlongLineReference decodes an underlying line location (its own
// offsets are ignored) and locates a point at a fraction of its length.
type PointAlongLineReference struct {
	Line             LineLocationReference
	PositiveFraction float64 // in [0, 1]
}

// PoiWithAccessPointReference is a PointAlongLineReference plus the POI's
// own coordinate, carried through unchanged.
type PoiWithAccessPointReference struct {
	Line             LineLocationReference
	PositiveFraction float64
	POICoordinate    Coordinate
}
