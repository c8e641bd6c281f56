package randfield

import (
	vec2d "github.com/flywave/go3d/float64/vec2"
	"gonum.org/v1/gonum/mat"
)

// DistanceMatrix returns the N×N Euclidean distance matrix of locs.
func DistanceMatrix(locs []vec2d.T) (*mat.SymDense, error) {
	return AnisotropicDistanceMatrix(locs, Isotropic)
}

// AnisotropicDistanceMatrix returns the N×N lag distance matrix of locs
// under the anisotropy a.
func AnisotropicDistanceMatrix(locs []vec2d.T, a Anisotropy) (*mat.SymDense, error) {
	n := len(locs)
	if n == 0 {
		return nil, ErrNoLocations
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	dist := a.metric()
	d := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			d.SetSym(i, j, dist(&locs[i], &locs[j]))
		}
	}
	return d, nil
}

// CovarianceMatrix maps a distance matrix through the model. The nugget and
// jitter are added to the diagonal only.
func CovarianceMatrix(d *mat.SymDense, m Model, jitter float64) (*mat.SymDense, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if jitter < 0 {
		return nil, invalidf("jitter must be >= 0, got %v", jitter)
	}
	n := d.SymmetricDim()
	c := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			c.SetSym(i, j, m.Covariance(d.At(i, j)))
		}
		c.SetSym(i, i, m.Sill()+jitter)
	}
	return c, nil
}

// choleskyLower factorizes c = L·Lᵗ and returns L. It reports false when c
// is not numerically positive definite.
func choleskyLower(c *mat.SymDense) (*mat.TriDense, float64, bool) {
	var chol mat.Cholesky
	if !chol.Factorize(c) {
		return nil, 0, false
	}
	cond := chol.Cond()
	if cond > mat.ConditionTolerance {
		return nil, cond, false
	}
	var l mat.TriDense
	chol.LTo(&l)
	return &l, cond, true
}
