// Package score computes the four weighted sub-scores used to rank
// candidate projections against an LRP: geographic proximity, FRC match,
// FOW match, and bearing alignment.
package score

import (
	"math"

	"openlr/pkg/config"
	"openlr/pkg/model"
)

// fowCompatibility is the fixed 8x8 FOW compatibility matrix, indexed by
// model.FOW (UNDEFINED=0 .. OTHER=7). A faithful-intent reconstruction:
// symmetric, diagonal 1.0, UNDEFINED pinned to 0.5 against everything,
// since no reference implementation was retrievable to transcribe
// verbatim from (see DESIGN.md Open Questions).
var fowCompatibility = [8][8]float64{
	{1.00, 0.50, 0.50, 0.50, 0.50, 0.50, 0.50, 0.50},
	{0.50, 1.00, 0.75, 0.50, 0.30, 0.30, 0.40, 0.50},
	{0.50, 0.75, 1.00, 0.75, 0.50, 0.40, 0.50, 0.50},
	{0.50, 0.50, 0.75, 1.00, 0.70, 0.50, 0.60, 0.50},
	{0.50, 0.30, 0.50, 0.70, 1.00, 0.60, 0.50, 0.50},
	{0.50, 0.30, 0.40, 0.50, 0.60, 1.00, 0.40, 0.50},
	{0.50, 0.40, 0.50, 0.60, 0.50, 0.40, 1.00, 0.50},
	{0.50, 0.50, 0.50, 0.50, 0.50, 0.50, 0.50, 1.00},
}

// Geo returns the geographic proximity sub-score for a perpendicular
// distance distM against a search radius radiusM, both in meters.
func Geo(distM, radiusM float64) float64 {
	if radiusM <= 0 {
		return 0
	}
	d := distM
	if d > radiusM {
		d = radiusM
	}
	return 1 - d/radiusM
}

// FRCMatch returns the FRC sub-score for an LRP's expected FRC against a
// candidate line's actual FRC.
func FRCMatch(lrpFRC, lineFRC model.FRC) float64 {
	diff := int(lrpFRC) - int(lineFRC)
	if diff < 0 {
		diff = -diff
	}
	v := 1 - float64(diff)/8
	if v < 0 {
		return 0
	}
	return v
}

// FOWMatch returns the FOW sub-score from the fixed compatibility matrix.
func FOWMatch(a, b model.FOW) float64 {
	if !validFOW(a) || !validFOW(b) {
		return 0.5
	}
	return fowCompatibility[a][b]
}

func validFOW(f model.FOW) bool {
	return f >= model.FOWUndefined && f <= model.FOWOther
}

// Bearing returns the bearing alignment sub-score for two bearings in
// degrees.
func Bearing(lrpBearing, lineBearing model.Bearing) float64 {
	diff := model.AngleDiff(lrpBearing, lineBearing)
	return 1 - diff/180
}

// Breakdown computes the full weighted score breakdown for a candidate
// projection against an LRP's expected attributes.
func Breakdown(cfg config.Config, distM float64, lrpFRC, lineFRC model.FRC, lrpFOW, lineFOW model.FOW, lrpBearing, lineBearing model.Bearing) model.ScoreBreakdown {
	geo := Geo(distM, cfg.SearchRadiusMeters)
	frc := FRCMatch(lrpFRC, lineFRC)
	fow := FOWMatch(lrpFOW, lineFOW)
	bear := Bearing(lrpBearing, lineBearing)

	total := cfg.GeoWeight*geo + cfg.FRCWeight*frc + cfg.FOWWeight*fow + cfg.BearWeight*bear
	total = math.Max(0, math.Min(1, total))

	return model.ScoreBreakdown{
		Geo:     geo,
		FRC:     frc,
		FOW:     fow,
		Bearing: bear,
		Total:   total,
	}
}
