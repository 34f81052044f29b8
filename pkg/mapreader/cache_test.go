package mapreader

import (
	"testing"

	"openlr/pkg/model"
)

type countingReader struct {
	inner      Reader
	lineCalls  int
	spatial    int
}

func (c *countingReader) FindLinesCloseTo(coord model.Coordinate, radiusM float64) ([]model.Line, error) {
	c.spatial++
	return c.inner.FindLinesCloseTo(coord, radiusM)
}

func (c *countingReader) GetLine(id model.LineID) (model.Line, error) {
	c.lineCalls++
	return c.inner.GetLine(id)
}

func (c *countingReader) GetNode(id model.NodeID) (model.Node, error) {
	return c.inner.GetNode(id)
}

func TestCachedGetLineHitsCacheOnSecondCall(t *testing.T) {
	counting := &countingReader{inner: buildTestMemory()}
	cached, err := NewCached(counting, 16)
	if err != nil {
		t.Fatalf("NewCached: %v", err)
	}

	if _, err := cached.GetLine("l1"); err != nil {
		t.Fatalf("GetLine: %v", err)
	}
	if _, err := cached.GetLine("l1"); err != nil {
		t.Fatalf("GetLine: %v", err)
	}
	if counting.lineCalls != 1 {
		t.Fatalf("expected 1 underlying call, got %d", counting.lineCalls)
	}
}

func TestCachedFindLinesCloseToHitsCacheOnSecondCall(t *testing.T) {
	counting := &countingReader{inner: buildTestMemory()}
	cached, err := NewCached(counting, 16)
	if err != nil {
		t.Fatalf("NewCached: %v", err)
	}

	coord := model.Coordinate{13.405, 52.5}
	if _, err := cached.FindLinesCloseTo(coord, 200); err != nil {
		t.Fatalf("FindLinesCloseTo: %v", err)
	}
	if _, err := cached.FindLinesCloseTo(coord, 200); err != nil {
		t.Fatalf("FindLinesCloseTo: %v", err)
	}
	if counting.spatial != 1 {
		t.Fatalf("expected 1 underlying call, got %d", counting.spatial)
	}
}
