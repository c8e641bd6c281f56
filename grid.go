package randfield

import (
	"math"
	"sort"

	vec2d "github.com/flywave/go3d/float64/vec2"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

type Coordinates []vec2d.T

func (s Coordinates) Len() int {
	return len(s)
}

// Less orders row major: by y, then by x.
func (s Coordinates) Less(i, j int) bool {
	if s[i][1] == s[j][1] {
		return s[i][0] < s[j][0]
	}
	return s[i][1] < s[j][1]
}

func (s Coordinates) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
}

// Sort puts the coordinates in row-major order.
func (s Coordinates) Sort() {
	sort.Sort(s)
}

// RegularGrid returns nx·ny cell-centred locations covering the unit
// square, row major with y ascending.
func RegularGrid(nx, ny int) (Coordinates, error) {
	if nx < 1 || ny < 1 {
		return nil, invalidf("grid size must be >= 1, got %dx%d", nx, ny)
	}
	coords := make(Coordinates, 0, nx*ny)
	for y := 0; y < ny; y++ {
		lat := (float64(y) + 0.5) / float64(ny)
		for x := 0; x < nx; x++ {
			lon := (float64(x) + 0.5) / float64(nx)
			coords = append(coords, vec2d.T{lon, lat})
		}
	}
	return coords, nil
}

// UnitGrid returns nx·ny lattice locations including the edges of the unit
// square. A single row or column sits at 0.5.
func UnitGrid(nx, ny int) (Coordinates, error) {
	if nx < 1 || ny < 1 {
		return nil, invalidf("grid size must be >= 1, got %dx%d", nx, ny)
	}
	step := func(i, n int) float64 {
		if n == 1 {
			return 0.5
		}
		return float64(i) / float64(n-1)
	}
	coords := make(Coordinates, 0, nx*ny)
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			coords = append(coords, vec2d.T{step(x, nx), step(y, ny)})
		}
	}
	return coords, nil
}

// RandomScatter returns n locations drawn uniformly from the unit square.
func RandomScatter(n int, src rand.Source) (Coordinates, error) {
	if n < 1 {
		return nil, invalidf("point count must be >= 1, got %d", n)
	}
	u := distuv.Uniform{Min: 0, Max: 1, Src: src}
	coords := make(Coordinates, n)
	for i := range coords {
		coords[i] = vec2d.T{u.Rand(), u.Rand()}
	}
	return coords, nil
}

// Bounds returns the bounding rectangle of locs.
func Bounds(locs []vec2d.T) (vec2d.Rect, error) {
	if len(locs) == 0 {
		return vec2d.Rect{}, ErrNoLocations
	}
	r := vec2d.Rect{Min: vec2d.MaxVal, Max: vec2d.MinVal}
	for i := range locs {
		r.Extend(&locs[i])
	}
	return r, nil
}

// Field is a sample laid out on a Width×Height grid, row major, row 0 at
// the bottom of the unit square. Samples sit at cell centres (RegularGrid)
// unless Lattice is set, in which case they sit on the UnitGrid lattice.
type Field struct {
	Width   int
	Height  int
	Values  []float64
	Minimum float64
	Maximum float64
	Lattice bool
}

func NewField(width, height int, values []float64) (*Field, error) {
	if width < 1 || height < 1 || len(values) != width*height {
		return nil, ErrShape
	}
	f := &Field{Width: width, Height: height, Values: values, Minimum: math.Inf(1), Maximum: math.Inf(-1)}
	for _, v := range values {
		if v < f.Minimum {
			f.Minimum = v
		}
		if v > f.Maximum {
			f.Maximum = v
		}
	}
	return f, nil
}

// NewLatticeField is NewField for values sampled on UnitGrid(width, height).
func NewLatticeField(width, height int, values []float64) (*Field, error) {
	f, err := NewField(width, height, values)
	if err != nil {
		return nil, err
	}
	f.Lattice = true
	return f, nil
}

func (f *Field) Value(row, column int) float64 {
	return f.Values[row*f.Width+column]
}

// Rows returns the field as a slice of rows sharing the underlying storage.
func (f *Field) Rows() [][]float64 {
	rows := make([][]float64, f.Height)
	for r := range rows {
		rows[r] = f.Values[r*f.Width : (r+1)*f.Width]
	}
	return rows
}

func (f *Field) Range() float64 {
	return f.Maximum - f.Minimum
}

// spacing is the distance between neighbouring samples along an axis of
// the given extent.
func (f *Field) spacing(extent float64, n int) float64 {
	if f.Lattice && n > 1 {
		return extent / float64(n-1)
	}
	return extent / float64(n)
}

// Raster returns the field with its placement in bounds.
func (f *Field) Raster(bounds vec2d.Rect) Raster {
	values := make([]float64, len(f.Values))
	copy(values, f.Values)
	return Raster{
		Values:      values,
		XWidth:      f.Width,
		YWidth:      f.Height,
		Xlim:        [2]float64{bounds.Min[0], bounds.Max[0]},
		Ylim:        [2]float64{bounds.Min[1], bounds.Max[1]},
		Zlim:        [2]float64{f.Minimum, f.Maximum},
		XResolution: f.spacing(bounds.Max[0]-bounds.Min[0], f.Width),
		YResolution: f.spacing(bounds.Max[1]-bounds.Min[1], f.Height),
	}
}

// UnitSquare is the [0,1]² rectangle RegularGrid covers.
var UnitSquare = vec2d.Rect{Min: vec2d.T{0, 0}, Max: vec2d.T{1, 1}}
