package mapreader

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"

	"openlr/pkg/model"
)

// frcByHighway maps an OSM highway tag value to a Functional Road Class,
// following the highway-to-FRC crosswalk road network tooling typically
// uses when bridging OSM tags into an OpenLR-style classification.
var frcByHighway = map[string]model.FRC{
	"motorway":       model.FRC0,
	"motorway_link":  model.FRC0,
	"trunk":          model.FRC1,
	"trunk_link":     model.FRC1,
	"primary":        model.FRC2,
	"primary_link":   model.FRC2,
	"secondary":      model.FRC3,
	"secondary_link": model.FRC3,
	"tertiary":       model.FRC4,
	"tertiary_link":  model.FRC4,
	"unclassified":   model.FRC5,
	"residential":    model.FRC5,
	"living_street":  model.FRC6,
	"service":        model.FRC7,
}

// fowByHighway maps an OSM highway tag value to a Form of Way.
var fowByHighway = map[string]model.FOW{
	"motorway":       model.FOWMotorway,
	"motorway_link":  model.FOWSliproad,
	"trunk":          model.FOWMultipleCarriageway,
	"trunk_link":     model.FOWSliproad,
	"primary":        model.FOWSingleCarriageway,
	"primary_link":   model.FOWSliproad,
	"secondary":      model.FOWSingleCarriageway,
	"secondary_link": model.FOWSliproad,
	"tertiary":       model.FOWSingleCarriageway,
	"tertiary_link":  model.FOWSliproad,
	"unclassified":   model.FOWSingleCarriageway,
	"residential":    model.FOWSingleCarriageway,
	"living_street":  model.FOWSingleCarriageway,
	"service":        model.FOWOther,
}

// isCarAccessible reports whether a way is drivable by car.
func isCarAccessible(tags osm.Tags) bool {
	hw := tags.Find("highway")
	if _, ok := frcByHighway[hw]; !ok {
		return false
	}
	if tags.Find("area") == "yes" {
		return false
	}
	access := tags.Find("access")
	if access == "no" || access == "private" {
		return false
	}
	if tags.Find("motor_vehicle") == "no" {
		return false
	}
	return true
}

// directionFlags reports which of the two travel directions a way permits.
func directionFlags(tags osm.Tags) (forward, backward bool) {
	forward, backward = true, true

	hw := tags.Find("highway")
	if hw == "motorway" || hw == "motorway_link" || tags.Find("junction") == "roundabout" {
		backward = false
	}

	switch tags.Find("oneway") {
	case "yes", "true", "1":
		forward, backward = true, false
	case "-1", "reverse":
		forward, backward = false, true
	case "no":
		forward, backward = true, true
	case "reversible":
		forward, backward = false, false
	}
	return forward, backward
}

type wayInfo struct {
	NodeIDs  []osm.NodeID
	Forward  bool
	Backward bool
	FRC      model.FRC
	FOW      model.FOW
}

// LoadOSM reads an OSM PBF file and returns a Memory reader covering its
// car-accessible road network. rs must support seeking, since the file is
// scanned twice: once for ways, once for the node coordinates they
// reference.
func LoadOSM(ctx context.Context, rs io.ReadSeeker, log *zap.Logger) (*Memory, error) {
	if log == nil {
		log = zap.NewNop()
	}

	referencedNodes := make(map[osm.NodeID]struct{})
	var ways []wayInfo

	scanner := osmpbf.New(ctx, rs, 1)
	scanner.SkipNodes = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		w, ok := scanner.Object().(*osm.Way)
		if !ok {
			continue
		}
		if !isCarAccessible(w.Tags) || len(w.Nodes) < 2 {
			continue
		}
		fwd, bwd := directionFlags(w.Tags)
		if !fwd && !bwd {
			continue
		}

		hw := w.Tags.Find("highway")
		nodeIDs := make([]osm.NodeID, len(w.Nodes))
		for i, wn := range w.Nodes {
			nodeIDs[i] = wn.ID
			referencedNodes[wn.ID] = struct{}{}
		}
		ways = append(ways, wayInfo{
			NodeIDs:  nodeIDs,
			Forward:  fwd,
			Backward: bwd,
			FRC:      frcByHighway[hw],
			FOW:      fowByHighway[hw],
		})
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("osm pass 1 (ways): %w", err)
	}
	scanner.Close()
	log.Debug("osm pass 1 complete", zap.Int("ways", len(ways)), zap.Int("referenced_nodes", len(referencedNodes)))

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek for osm pass 2: %w", err)
	}

	nodeCoord := make(map[osm.NodeID]model.Coordinate, len(referencedNodes))
	scanner = osmpbf.New(ctx, rs, 1)
	scanner.SkipWays = true
	scanner.SkipRelations = true

	for scanner.Scan() {
		n, ok := scanner.Object().(*osm.Node)
		if !ok {
			continue
		}
		if _, needed := referencedNodes[n.ID]; !needed {
			continue
		}
		nodeCoord[n.ID] = model.Coordinate{n.Lon, n.Lat}
	}
	if err := scanner.Err(); err != nil {
		scanner.Close()
		return nil, fmt.Errorf("osm pass 2 (nodes): %w", err)
	}
	scanner.Close()
	log.Debug("osm pass 2 complete", zap.Int("coordinates", len(nodeCoord)))

	nodeRecords := make([]NodeRecord, 0, len(nodeCoord))
	for id, coord := range nodeCoord {
		nodeRecords = append(nodeRecords, NodeRecord{ID: osmNodeID(id), Coordinate: coord})
	}

	var lineRecords []LineRecord
	var skipped int
	for _, w := range ways {
		for i := 0; i+1 < len(w.NodeIDs); i++ {
			fromID, toID := w.NodeIDs[i], w.NodeIDs[i+1]
			from, fromOK := nodeCoord[fromID]
			to, toOK := nodeCoord[toID]
			if !fromOK || !toOK {
				skipped++
				continue
			}
			shape := model.Polyline{from, to}
			if w.Forward {
				lineRecords = append(lineRecords, LineRecord{
					ID:          osmLineID(fromID, toID, i),
					StartNode:   osmNodeID(fromID),
					EndNode:     osmNodeID(toID),
					FRC:         w.FRC,
					FOW:         w.FOW,
					Coordinates: shape,
				})
			}
			if w.Backward {
				lineRecords = append(lineRecords, LineRecord{
					ID:          osmLineID(toID, fromID, i),
					StartNode:   osmNodeID(toID),
					EndNode:     osmNodeID(fromID),
					FRC:         w.FRC,
					FOW:         w.FOW,
					Coordinates: model.Polyline{to, from},
				})
			}
		}
	}
	if skipped > 0 {
		log.Debug("osm edges skipped: missing endpoint coordinates", zap.Int("count", skipped))
	}

	return Build(lineRecords, nodeRecords), nil
}

func osmNodeID(id osm.NodeID) model.NodeID {
	return model.NodeID(fmt.Sprintf("n%d", int64(id)))
}

func osmLineID(from, to osm.NodeID, wayOffset int) model.LineID {
	return model.LineID(fmt.Sprintf("l%d_%d_%d", int64(from), int64(to), wayOffset))
}
