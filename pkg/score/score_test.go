package score

import (
	"math"
	"testing"

	"openlr/pkg/config"
	"openlr/pkg/model"
)

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestGeoAtZeroDistance(t *testing.T) {
	if v := Geo(0, 100); v != 1 {
		t.Fatalf("expected 1, got %f", v)
	}
}

func TestGeoAtRadius(t *testing.T) {
	if v := Geo(100, 100); v != 0 {
		t.Fatalf("expected 0, got %f", v)
	}
}

func TestGeoClampsBeyondRadius(t *testing.T) {
	if v := Geo(500, 100); v != 0 {
		t.Fatalf("expected clamped 0, got %f", v)
	}
}

func TestFRCMatchExact(t *testing.T) {
	if v := FRCMatch(model.FRC3, model.FRC3); v != 1 {
		t.Fatalf("expected 1, got %f", v)
	}
}

func TestFRCMatchMaxDifference(t *testing.T) {
	if v := FRCMatch(model.FRC0, model.FRC7); v != 0.125 {
		t.Fatalf("expected 0.125, got %f", v)
	}
}

func TestFOWMatchIdentical(t *testing.T) {
	if v := FOWMatch(model.FOWMotorway, model.FOWMotorway); v != 1.0 {
		t.Fatalf("expected 1.0, got %f", v)
	}
}

func TestFOWMatchUndefinedIsHalf(t *testing.T) {
	if v := FOWMatch(model.FOWUndefined, model.FOWRoundabout); v != 0.5 {
		t.Fatalf("expected 0.5, got %f", v)
	}
}

func TestFOWMatchSymmetric(t *testing.T) {
	a, b := model.FOWMultipleCarriageway, model.FOWSingleCarriageway
	if FOWMatch(a, b) != FOWMatch(b, a) {
		t.Fatalf("expected symmetric matrix, got %f vs %f", FOWMatch(a, b), FOWMatch(b, a))
	}
}

func TestBearingAligned(t *testing.T) {
	if v := Bearing(90, 90); v != 1 {
		t.Fatalf("expected 1, got %f", v)
	}
}

func TestBearingOpposite(t *testing.T) {
	if v := Bearing(0, 180); v != 0 {
		t.Fatalf("expected 0, got %f", v)
	}
}

func TestBreakdownWithinBounds(t *testing.T) {
	cfg := config.Default()
	b := Breakdown(cfg, 10, model.FRC3, model.FRC3, model.FOWSingleCarriageway, model.FOWSingleCarriageway, 90, 92)
	if b.Total < 0 || b.Total > 1 {
		t.Fatalf("total out of [0,1]: %f", b.Total)
	}
	expected := cfg.GeoWeight*b.Geo + cfg.FRCWeight*b.FRC + cfg.FOWWeight*b.FOW + cfg.BearWeight*b.Bearing
	if !almostEqual(expected, b.Total) {
		t.Fatalf("total %f does not match weighted sum %f", b.Total, expected)
	}
}
