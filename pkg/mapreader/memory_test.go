package mapreader

import (
	"testing"

	"openlr/pkg/model"
)

func straightLine(lon0, lat0, lon1, lat1 float64) model.Polyline {
	return model.Polyline{{lon0, lat0}, {lon1, lat1}}
}

func buildTestMemory() *Memory {
	nodes := []NodeRecord{
		{ID: "n1", Coordinate: model.Coordinate{13.4, 52.5}},
		{ID: "n2", Coordinate: model.Coordinate{13.41, 52.5}},
		{ID: "n3", Coordinate: model.Coordinate{13.42, 52.5}},
	}
	lines := []LineRecord{
		{
			ID: "l1", StartNode: "n1", EndNode: "n2",
			FRC: model.FRC3, FOW: model.FOWMultipleCarriageway,
			Coordinates: straightLine(13.4, 52.5, 13.41, 52.5),
		},
		{
			ID: "l2", StartNode: "n2", EndNode: "n3",
			FRC: model.FRC3, FOW: model.FOWMultipleCarriageway,
			Coordinates: straightLine(13.41, 52.5, 13.42, 52.5),
		},
	}
	return Build(lines, nodes)
}

func TestBuildIndexesLinesAndAdjacency(t *testing.T) {
	m := buildTestMemory()

	l1, err := m.GetLine("l1")
	if err != nil {
		t.Fatalf("GetLine(l1): %v", err)
	}
	if l1.StartNode() != "n1" || l1.EndNode() != "n2" {
		t.Fatalf("unexpected endpoints: %v -> %v", l1.StartNode(), l1.EndNode())
	}

	n2, err := m.GetNode("n2")
	if err != nil {
		t.Fatalf("GetNode(n2): %v", err)
	}
	if len(n2.OutgoingLines()) != 1 || n2.OutgoingLines()[0].ID() != "l2" {
		t.Fatalf("expected n2 outgoing = [l2], got %v", n2.OutgoingLines())
	}
	if len(n2.IncomingLines()) != 1 || n2.IncomingLines()[0].ID() != "l1" {
		t.Fatalf("expected n2 incoming = [l1], got %v", n2.IncomingLines())
	}
}

func TestGetLineNotFound(t *testing.T) {
	m := buildTestMemory()
	if _, err := m.GetLine("missing"); err == nil {
		t.Fatal("expected error for unknown line id")
	}
}

func TestFindLinesCloseToFindsNearbyLine(t *testing.T) {
	m := buildTestMemory()

	results, err := m.FindLinesCloseTo(model.Coordinate{13.405, 52.5}, 200)
	if err != nil {
		t.Fatalf("FindLinesCloseTo: %v", err)
	}
	found := false
	for _, l := range results {
		if l.ID() == "l1" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected l1 among results, got %v", results)
	}
}

func TestFindLinesCloseToExcludesFarLine(t *testing.T) {
	m := buildTestMemory()

	results, err := m.FindLinesCloseTo(model.Coordinate{20.0, 60.0}, 500)
	if err != nil {
		t.Fatalf("FindLinesCloseTo: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no nearby lines far from map data, got %v", results)
	}
}

func TestBuildDropsDegenerateLines(t *testing.T) {
	nodes := []NodeRecord{
		{ID: "n1", Coordinate: model.Coordinate{13.4, 52.5}},
	}
	lines := []LineRecord{
		{
			ID: "zero", StartNode: "n1", EndNode: "n1",
			FRC: model.FRC3, FOW: model.FOWMultipleCarriageway,
			Coordinates: straightLine(13.4, 52.5, 13.4, 52.5),
		},
	}
	m := Build(lines, nodes)
	if _, err := m.GetLine("zero"); err == nil {
		t.Fatal("expected degenerate zero-length line to be dropped")
	}
}
