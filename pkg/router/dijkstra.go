// Package router finds the shortest connected route between two candidate
// projections in the target map's directed line graph, constrained by an
// FRC ceiling.
package router

import (
	"sort"

	"openlr/pkg/mapreader"
	"openlr/pkg/model"
)

// heapItem is a min-heap entry: a node reached at dist meters via viaLine.
// Ties in dist are broken by lexicographic viaLine id, so routing is
// deterministic across runs.
type heapItem struct {
	node    model.NodeID
	dist    float64
	viaLine model.LineID
}

func less(a, b heapItem) bool {
	if a.dist != b.dist {
		return a.dist < b.dist
	}
	return a.viaLine < b.viaLine
}

// minHeap is a concrete-typed binary min-heap, avoiding the interface
// boxing overhead of container/heap for a structure popped on every relax.
type minHeap struct {
	items []heapItem
}

func (h *minHeap) Len() int { return len(h.items) }

func (h *minHeap) Push(it heapItem) {
	h.items = append(h.items, it)
	h.siftUp(len(h.items) - 1)
}

func (h *minHeap) Pop() heapItem {
	n := len(h.items)
	top := h.items[0]
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return top
}

func (h *minHeap) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if !less(h.items[i], h.items[parent]) {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *minHeap) siftDown(i int) {
	n := len(h.items)
	for {
		smallest := i
		left, right := 2*i+1, 2*i+2
		if left < n && less(h.items[left], h.items[smallest]) {
			smallest = left
		}
		if right < n && less(h.items[right], h.items[smallest]) {
			smallest = right
		}
		if smallest == i {
			break
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}

// Route computes the shortest connected route from startLine (at
// startOffset) to endLine (at endOffset), using only interior lines with
// FRC <= frcCeiling. startLine and endLine are always permitted regardless
// of their own FRC. Returns (route, false, nil) when the sink is
// unreachable.
func Route(reader mapreader.Reader, startLine model.Line, startOffset float64, endLine model.Line, endOffset float64, frcCeiling model.FRC) (model.Route, bool, error) {
	if startLine.ID() == endLine.ID() {
		if endOffset >= startOffset {
			return model.Route{Lines: []model.Line{startLine}}, true, nil
		}
		// Wrong-direction pairing on the same line: reject and let the
		// backtracker try another candidate rather than produce a negative-
		// length route.
		return model.Route{}, false, nil
	}

	source := startLine.EndNode()
	sink := endLine.StartNode()

	if source == sink {
		return model.Route{Lines: []model.Line{startLine, endLine}}, true, nil
	}

	dist := map[model.NodeID]float64{source: 0}
	predLine := map[model.NodeID]model.Line{}
	visited := map[model.NodeID]bool{}

	h := &minHeap{}
	h.Push(heapItem{node: source, dist: 0})

	for h.Len() > 0 {
		cur := h.Pop()
		if visited[cur.node] {
			continue
		}
		visited[cur.node] = true
		if cur.node == sink {
			break
		}

		node, err := reader.GetNode(cur.node)
		if err != nil {
			return model.Route{}, false, err
		}

		outgoing := append([]model.Line(nil), node.OutgoingLines()...)
		sort.Slice(outgoing, func(i, j int) bool { return outgoing[i].ID() < outgoing[j].ID() })

		for _, line := range outgoing {
			if line.FRC() > frcCeiling && line.ID() != startLine.ID() && line.ID() != endLine.ID() {
				continue
			}
			next := line.EndNode()
			if visited[next] {
				continue
			}
			candidate := cur.dist + line.Length()
			if d, ok := dist[next]; !ok || candidate < d {
				dist[next] = candidate
				predLine[next] = line
				h.Push(heapItem{node: next, dist: candidate, viaLine: line.ID()})
			}
		}
	}

	if !visited[sink] {
		return model.Route{}, false, nil
	}

	var lines []model.Line
	for n := sink; n != source; {
		line, ok := predLine[n]
		if !ok {
			return model.Route{}, false, nil
		}
		lines = append([]model.Line{line}, lines...)
		n = line.StartNode()
	}

	full := append([]model.Line{startLine}, lines...)
	full = append(full, endLine)
	return model.Route{Lines: full}, true, nil
}
