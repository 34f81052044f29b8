package decode

import (
	"openlr/pkg/assemble"
	"openlr/pkg/config"
	"openlr/pkg/decodeerr"
	"openlr/pkg/mapreader"
	"openlr/pkg/model"
	"openlr/pkg/observer"
)

// Line decodes a line location reference into a concrete, offset-trimmed
// path through reader's map.
func Line(ref model.LineLocationReference, reader mapreader.Reader, cfg config.Config, obs observer.Observer) (location model.DecodedLineLocation, err error) {
	obs = observer.OrNoop(obs)
	defer func() { obs.DecodeFinished(err == nil, err) }()

	if len(ref.Points) < 2 {
		err = &decodeerr.InvalidReference{Reason: "fewer than two LRPs"}
		return
	}

	routes, rErr := Routes(ref.Points, reader, cfg, obs)
	if rErr != nil {
		err = rErr
		return
	}

	location, err = assemble.Line(routes, ref.PositiveOffset, ref.NegativeOffset)
	return
}

// PointAlongLine decodes the underlying line location (ignoring its own
// offsets) and projects a point at PositiveFraction of its length.
func PointAlongLine(ref model.PointAlongLineReference, reader mapreader.Reader, cfg config.Config, obs observer.Observer) (point model.PointAlongLine, err error) {
	obs = observer.OrNoop(obs)
	defer func() { obs.DecodeFinished(err == nil, err) }()

	if len(ref.Line.Points) < 2 {
		err = &decodeerr.InvalidReference{Reason: "fewer than two LRPs"}
		return
	}
	if ref.PositiveFraction < 0 || ref.PositiveFraction > 1 {
		err = &decodeerr.InvalidReference{Reason: "positive fraction out of [0,1]"}
		return
	}

	routes, rErr := Routes(ref.Line.Points, reader, cfg, obs)
	if rErr != nil {
		err = rErr
		return
	}

	point, err = assemble.PointAlongLine(routes, ref.PositiveFraction)
	return
}

// POIWithAccessPoint decodes the underlying line location and projects the
// access point exactly as PointAlongLine, pairing it with the POI's own
// coordinate.
func POIWithAccessPoint(ref model.PoiWithAccessPointReference, reader mapreader.Reader, cfg config.Config, obs observer.Observer) (poi model.PoiWithAccessPoint, err error) {
	obs = observer.OrNoop(obs)
	defer func() { obs.DecodeFinished(err == nil, err) }()

	if len(ref.Line.Points) < 2 {
		err = &decodeerr.InvalidReference{Reason: "fewer than two LRPs"}
		return
	}
	if ref.PositiveFraction < 0 || ref.PositiveFraction > 1 {
		err = &decodeerr.InvalidReference{Reason: "positive fraction out of [0,1]"}
		return
	}

	routes, rErr := Routes(ref.Line.Points, reader, cfg, obs)
	if rErr != nil {
		err = rErr
		return
	}

	poi, err = assemble.POIWithAccessPoint(routes, ref.PositiveFraction, ref.POICoordinate)
	return
}
