package randfield

import (
	"math"

	vec2d "github.com/flywave/go3d/float64/vec2"
)

type cellGrid struct {
	LeafSize float64
}

type cell struct {
	sum   vec2d.T
	num   int
	index int
}

func newCellGrid(leafSize float64) *cellGrid {
	return &cellGrid{LeafSize: leafSize}
}

func (f *cellGrid) Filter(pc []vec2d.T) ([]vec2d.T, error) {
	bounds, err := Bounds(pc)
	if err != nil {
		return nil, err
	}

	cells := make(map[[2]int]*cell, len(pc))
	order := make([]*cell, 0, len(pc))
	for i := range pc {
		p := vec2d.Sub(&pc[i], &bounds.Min)
		key := [2]int{int(math.Floor(p[0] / f.LeafSize)), int(math.Floor(p[1] / f.LeafSize))}
		c, ok := cells[key]
		if !ok {
			c = &cell{index: i}
			cells[key] = c
			order = append(order, c)
		}
		c.num++
		c.sum.Add(&p)
	}

	res := make([]vec2d.T, 0, len(order))
	for _, c := range order {
		if c.num == 1 {
			res = append(res, pc[c.index])
			continue
		}
		n := float64(c.num)
		v := vec2d.T{c.sum[0] / n, c.sum[1] / n}
		v.Add(&bounds.Min)
		res = append(res, v)
	}
	return res, nil
}

// Thin merges locations sharing a square cell of side size into their
// centroid. Cells are anchored at the lower-left corner of the location
// bounds; output keeps the order in which cells were first hit.
func Thin(locs []vec2d.T, size float64) ([]vec2d.T, error) {
	if !positive(size) {
		return nil, invalidf("cell size must be > 0, got %v", size)
	}
	return newCellGrid(size).Filter(locs)
}
