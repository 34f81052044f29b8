// Package mapreader defines the abstract boundary the decoder core consumes
// to query the target map: spatial lookup, neighbor traversal, and
// geometric/attribute accessors. Any provider satisfying Reader can be
// substituted; this is a capability set, not a class hierarchy.
package mapreader

import "openlr/pkg/model"

// Reader is the map reader interface the decoder core requires. It is
// assumed safe for concurrent read, stateless across calls, and potentially
// backed by a costly store -- the core may query it many times per decode.
type Reader interface {
	// FindLinesCloseTo returns every line with any point within radiusM
	// meters of coord.
	FindLinesCloseTo(coord model.Coordinate, radiusM float64) ([]model.Line, error)

	// GetLine returns the line with the given id.
	GetLine(id model.LineID) (model.Line, error)

	// GetNode returns the node with the given id.
	GetNode(id model.NodeID) (model.Node, error)
}

// ErrLineNotFound and ErrNodeNotFound are returned by GetLine/GetNode when
// an id is unknown to the reader.
type ErrLineNotFound struct{ ID model.LineID }

func (e *ErrLineNotFound) Error() string { return "line not found: " + string(e.ID) }

type ErrNodeNotFound struct{ ID model.NodeID }

func (e *ErrNodeNotFound) Error() string { return "node not found: " + string(e.ID) }
