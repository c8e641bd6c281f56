package randfield

import (
	"sort"

	vec2d "github.com/flywave/go3d/float64/vec2"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// indexedPoint is a location that remembers its position in the caller's slice.
type indexedPoint struct {
	pos   vec2d.T
	index int
}

func (p indexedPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(indexedPoint)
	return p.pos[d] - q.pos[d]
}

func (p indexedPoint) Dims() int { return 2 }

// Distance returns the squared Euclidean distance.
func (p indexedPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(indexedPoint)
	return pow2(p.pos[0]-q.pos[0]) + pow2(p.pos[1]-q.pos[1])
}

type indexedPoints []indexedPoint

func (p indexedPoints) Index(i int) kdtree.Comparable         { return p[i] }
func (p indexedPoints) Len() int                              { return len(p) }
func (p indexedPoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

func (p indexedPoints) Pivot(d kdtree.Dim) int {
	return kdtree.Partition(plane{indexedPoints: p, Dim: d}, kdtree.MedianOfRandoms(plane{indexedPoints: p, Dim: d}, 100))
}

type plane struct {
	indexedPoints
	kdtree.Dim
}

func (p plane) Less(i, j int) bool {
	return p.indexedPoints[i].pos[p.Dim] < p.indexedPoints[j].pos[p.Dim]
}

func (p plane) Slice(start, end int) kdtree.SortSlicer {
	return plane{indexedPoints: p.indexedPoints[start:end], Dim: p.Dim}
}

func (p plane) Swap(i, j int) {
	p.indexedPoints[i], p.indexedPoints[j] = p.indexedPoints[j], p.indexedPoints[i]
}

// NearDuplicates returns every pair of locations no further than tol apart,
// sorted by index.
func NearDuplicates(locs []vec2d.T, tol float64) PairList {
	if len(locs) < 2 || tol < 0 {
		return nil
	}
	pts := make(indexedPoints, len(locs))
	for i := range locs {
		pts[i] = indexedPoint{pos: locs[i], index: i}
	}
	tree := kdtree.New(pts, false)

	var pairs PairList
	r2 := pow2(tol)
	for i := range locs {
		keeper := kdtree.NewDistKeeper(r2)
		tree.NearestSet(keeper, indexedPoint{pos: locs[i], index: i})
		for _, item := range keeper.Heap {
			if item.Comparable == nil {
				continue
			}
			j := item.Comparable.(indexedPoint).index
			if j > i {
				pairs = append(pairs, Pair{i, j})
			}
		}
	}
	sort.Sort(pairs)
	return pairs
}
