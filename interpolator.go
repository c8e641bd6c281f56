package randfield

import "math"

const (
	BILINEAR   = "bilinear"
	HYPERBOLIC = "hyperbolic"
)

// Interpolator blends four corner values; x and y are the fractional
// offsets from the south-west corner.
type Interpolator interface {
	Interpolate(southWest, southEast, northWest, northEast, x, y float64) float64
}

type BilinearInterpolator struct{}

func Lerp(value1, value2, amount float64) float64 { return value1 + (value2-value1)*amount }

func (i *BilinearInterpolator) Interpolate(southWest, southEast, northWest, northEast, x, y float64) float64 {
	return Lerp(Lerp(southWest, northWest, y), Lerp(southEast, northEast, y), x)
}

type HyperbolicInterpolator struct{}

func (i *HyperbolicInterpolator) Interpolate(southWest, southEast, northWest, northEast, x, y float64) float64 {
	a00 := southWest
	a10 := southEast - southWest
	a01 := northWest - southWest
	a11 := southWest - southEast - northWest + northEast
	return a00 + a10*x + a01*y + a11*x*y
}

// NewInterpolator returns the interpolator registered under name, bilinear by default.
func NewInterpolator(name string) Interpolator {
	if name == HYPERBOLIC {
		return &HyperbolicInterpolator{}
	}
	return &BilinearInterpolator{}
}

// cellIndex maps a unit-square coordinate to the surrounding pair of cell
// centres along one axis and the fractional position between them.
func cellIndex(v float64, n int) (int, int, float64) {
	return clampIndex(v*float64(n)-0.5, n)
}

// latticeIndex is cellIndex for samples sitting on the lattice 0, 1/(n-1), ..., 1.
func latticeIndex(v float64, n int) (int, int, float64) {
	return clampIndex(v*float64(n-1), n)
}

func clampIndex(c float64, n int) (int, int, float64) {
	if c <= 0 || n == 1 {
		return 0, 0, 0
	}
	if c >= float64(n-1) {
		return n - 1, n - 1, 0
	}
	lo := math.Floor(c)
	return int(lo), int(lo) + 1, c - lo
}

func (f *Field) index(v float64, n int) (int, int, float64) {
	if f.Lattice {
		return latticeIndex(v, n)
	}
	return cellIndex(v, n)
}

// At evaluates the field at (x, y) in the unit square. Values between
// samples are interpolated; points outside the outer samples are clamped.
// A NaN coordinate yields NaN.
func (f *Field) At(x, y float64, interp Interpolator) float64 {
	if math.IsNaN(x) || math.IsNaN(y) {
		return math.NaN()
	}
	if interp == nil {
		interp = &BilinearInterpolator{}
	}
	x0, x1, tx := f.index(x, f.Width)
	y0, y1, ty := f.index(y, f.Height)
	return interp.Interpolate(
		f.Value(y0, x0), f.Value(y0, x1),
		f.Value(y1, x0), f.Value(y1, x1),
		tx, ty)
}

// Resample evaluates the field on a width×height cell-centred grid.
func (f *Field) Resample(width, height int, interp Interpolator) (*Field, error) {
	locs, err := RegularGrid(width, height)
	if err != nil {
		return nil, err
	}
	values := make([]float64, len(locs))
	for i := range locs {
		values[i] = f.At(locs[i][0], locs[i][1], interp)
	}
	return NewField(width, height, values)
}
