package mapreader

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/tidwall/rtree"

	"openlr/pkg/geo"
	"openlr/pkg/model"
)

// LineRecord is the input shape for building a Memory reader: a directed
// line plus its geometry and attributes. A two-way road is supplied as two
// opposing LineRecords.
type LineRecord struct {
	ID          model.LineID
	StartNode   model.NodeID
	EndNode     model.NodeID
	FRC         model.FRC
	FOW         model.FOW
	Coordinates model.Polyline
}

// NodeRecord supplies a node's coordinate; outgoing/incoming lines are
// derived from LineRecord.StartNode/EndNode during Build.
type NodeRecord struct {
	ID         model.NodeID
	Coordinate model.Coordinate
}

// memLine and memNode are the concrete Line/Node implementations backing
// the Memory reader. Unexported: callers only see the model.Line/model.Node
// capability sets, never these concrete types.
type memLine struct {
	id          model.LineID
	startNode   model.NodeID
	endNode     model.NodeID
	frc         model.FRC
	fow         model.FOW
	coordinates model.Polyline
	length      float64
}

func (l *memLine) ID() model.LineID          { return l.id }
func (l *memLine) StartNode() model.NodeID   { return l.startNode }
func (l *memLine) EndNode() model.NodeID     { return l.endNode }
func (l *memLine) FRC() model.FRC            { return l.frc }
func (l *memLine) FOW() model.FOW            { return l.fow }
func (l *memLine) Coordinates() model.Polyline { return l.coordinates }
func (l *memLine) Length() float64           { return l.length }

type memNode struct {
	id         model.NodeID
	coordinate model.Coordinate
	outgoing   []model.Line
	incoming   []model.Line
}

func (n *memNode) ID() model.NodeID            { return n.id }
func (n *memNode) Coordinate() model.Coordinate { return n.coordinate }
func (n *memNode) OutgoingLines() []model.Line  { return n.outgoing }
func (n *memNode) IncomingLines() []model.Line  { return n.incoming }

// Memory is an in-memory Reader backed by a flat R-tree spatial index over
// line bounding boxes, generalized to named ids and arbitrary-radius
// queries rather than a single nearest-neighbor snap.
type Memory struct {
	lines map[model.LineID]*memLine
	nodes map[model.NodeID]*memNode
	index rtree.RTreeG[*memLine]
}

// Build constructs a Memory reader from line and node records. Degenerate
// (zero-length) lines are dropped.
func Build(lineRecords []LineRecord, nodeRecords []NodeRecord) *Memory {
	m := &Memory{
		lines: make(map[model.LineID]*memLine, len(lineRecords)),
		nodes: make(map[model.NodeID]*memNode, len(nodeRecords)),
	}

	for _, nr := range nodeRecords {
		m.nodes[nr.ID] = &memNode{id: nr.ID, coordinate: nr.Coordinate}
	}

	for _, lr := range lineRecords {
		length := geo.Length(lr.Coordinates)
		if length <= 0 {
			continue
		}
		ml := &memLine{
			id:          lr.ID,
			startNode:   lr.StartNode,
			endNode:     lr.EndNode,
			frc:         lr.FRC,
			fow:         lr.FOW,
			coordinates: lr.Coordinates,
			length:      length,
		}
		m.lines[lr.ID] = ml

		if start, ok := m.nodes[lr.StartNode]; ok {
			start.outgoing = append(start.outgoing, ml)
		}
		if end, ok := m.nodes[lr.EndNode]; ok {
			end.incoming = append(end.incoming, ml)
		}

		min, max := boundingBox(lr.Coordinates)
		m.index.Insert(min, max, ml)
	}

	return m
}

// boundingBox returns the [lon,lat] min/max corners of a polyline.
func boundingBox(line orb.LineString) (min, max [2]float64) {
	if len(line) == 0 {
		return min, max
	}
	min = [2]float64{line[0][0], line[0][1]}
	max = min
	for _, pt := range line[1:] {
		if pt[0] < min[0] {
			min[0] = pt[0]
		}
		if pt[1] < min[1] {
			min[1] = pt[1]
		}
		if pt[0] > max[0] {
			max[0] = pt[0]
		}
		if pt[1] > max[1] {
			max[1] = pt[1]
		}
	}
	return min, max
}

// metersToDegreesBox returns a lon/lat padding, in degrees, that safely
// over-covers radiusM meters at the given latitude -- used to build a
// bounding-box query for the R-tree before exact geodesic filtering.
func metersToDegreesBox(lat, radiusM float64) (dLon, dLat float64) {
	const metersPerDegreeLat = 111_320.0
	dLat = radiusM / metersPerDegreeLat
	cos := cosDeg(lat)
	if cos < 0.01 {
		cos = 0.01
	}
	dLon = radiusM / (metersPerDegreeLat * cos)
	return dLon, dLat
}

func (m *Memory) FindLinesCloseTo(coord model.Coordinate, radiusM float64) ([]model.Line, error) {
	dLon, dLat := metersToDegreesBox(coord[1], radiusM)
	queryMin := [2]float64{coord[0] - dLon, coord[1] - dLat}
	queryMax := [2]float64{coord[0] + dLon, coord[1] + dLat}

	var result []model.Line
	m.index.Search(queryMin, queryMax, func(_, _ [2]float64, data *memLine) bool {
		_, _, dist := geo.ProjectPoint(data.coordinates, coord)
		if dist <= radiusM {
			result = append(result, data)
		}
		return true
	})
	return result, nil
}

func (m *Memory) GetLine(id model.LineID) (model.Line, error) {
	if l, ok := m.lines[id]; ok {
		return l, nil
	}
	return nil, &ErrLineNotFound{ID: id}
}

func (m *Memory) GetNode(id model.NodeID) (model.Node, error) {
	if n, ok := m.nodes[id]; ok {
		return n, nil
	}
	return nil, &ErrNodeNotFound{ID: id}
}

// NumLines returns the number of lines held in the reader.
func (m *Memory) NumLines() int { return len(m.lines) }

// NumNodes returns the number of nodes held in the reader.
func (m *Memory) NumNodes() int { return len(m.nodes) }

func cosDeg(deg float64) float64 {
	return math.Cos(deg * math.Pi / 180)
}
