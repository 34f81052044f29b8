package mapreader

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"openlr/pkg/model"
)

// spatialQuery is the cache key for a FindLinesCloseTo lookup. Coordinates
// are rounded to a coarse grid so nearby repeated queries -- the decoder
// issues one per candidate LRP, often re-probing the same intersection --
// share a cache entry instead of missing on float jitter.
type spatialQuery struct {
	lonBucket int64
	latBucket int64
	radiusM   int64
}

const cacheGridDegrees = 0.0001 // ~11m at the equator

func bucketQuery(coord model.Coordinate, radiusM float64) spatialQuery {
	return spatialQuery{
		lonBucket: int64(coord[0] / cacheGridDegrees),
		latBucket: int64(coord[1] / cacheGridDegrees),
		radiusM:   int64(radiusM),
	}
}

// Cached wraps a Reader with bounded LRU caches: one for spatial queries,
// one each for line/node lookups by id.
type Cached struct {
	inner     Reader
	spatial   *lru.Cache[spatialQuery, []model.Line]
	lineByID  *lru.Cache[model.LineID, model.Line]
	nodeByID  *lru.Cache[model.NodeID, model.Node]
}

// NewCached returns a caching decorator over inner. size bounds the number
// of entries retained per internal cache.
func NewCached(inner Reader, size int) (*Cached, error) {
	if size <= 0 {
		size = 1024
	}
	spatial, err := lru.New[spatialQuery, []model.Line](size)
	if err != nil {
		return nil, err
	}
	lineByID, err := lru.New[model.LineID, model.Line](size)
	if err != nil {
		return nil, err
	}
	nodeByID, err := lru.New[model.NodeID, model.Node](size)
	if err != nil {
		return nil, err
	}
	return &Cached{inner: inner, spatial: spatial, lineByID: lineByID, nodeByID: nodeByID}, nil
}

func (c *Cached) FindLinesCloseTo(coord model.Coordinate, radiusM float64) ([]model.Line, error) {
	key := bucketQuery(coord, radiusM)
	if lines, ok := c.spatial.Get(key); ok {
		return lines, nil
	}
	lines, err := c.inner.FindLinesCloseTo(coord, radiusM)
	if err != nil {
		return nil, err
	}
	c.spatial.Add(key, lines)
	return lines, nil
}

func (c *Cached) GetLine(id model.LineID) (model.Line, error) {
	if l, ok := c.lineByID.Get(id); ok {
		return l, nil
	}
	l, err := c.inner.GetLine(id)
	if err != nil {
		return nil, err
	}
	c.lineByID.Add(id, l)
	return l, nil
}

func (c *Cached) GetNode(id model.NodeID) (model.Node, error) {
	if n, ok := c.nodeByID.Get(id); ok {
		return n, nil
	}
	n, err := c.inner.GetNode(id)
	if err != nil {
		return nil, err
	}
	c.nodeByID.Add(id, n)
	return n, nil
}
