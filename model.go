package randfield

import "math"

// CorrelationFunc maps a lag distance h and a range parameter to a
// correlation in [0, 1].
type CorrelationFunc func(h, range_ float64) float64

func exponentialCorrelation(h, range_ float64) float64 {
	return exp(-h / range_)
}

func gaussianCorrelation(h, range_ float64) float64 {
	return exp(-pow2(h / range_))
}

func sphericalCorrelation(h, range_ float64) float64 {
	if h >= range_ {
		return 0
	}
	x := h / range_
	return 1 - 1.5*x + 0.5*pow3(x)
}

// Model is a stationary isotropic covariance model: Variance·ρ(h/Range),
// plus Nugget on the diagonal.
type Model struct {
	Type     ModelType `json:"type" yaml:"type"`
	Variance float64   `json:"variance" yaml:"variance"`
	Range    float64   `json:"range" yaml:"range"`
	Nugget   float64   `json:"nugget" yaml:"nugget"`
}

// NewModel returns a validated model with no nugget.
func NewModel(t ModelType, variance, range_ float64) (Model, error) {
	m := Model{Type: t, Variance: variance, Range: range_}
	if err := m.Validate(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m Model) Validate() error {
	if m.correlation() == nil {
		return invalidf("unknown model %q", m.Type)
	}
	if !positive(m.Variance) {
		return invalidf("variance must be > 0, got %v", m.Variance)
	}
	if !positive(m.Range) {
		return invalidf("range must be > 0, got %v", m.Range)
	}
	if m.Nugget < 0 || math.IsNaN(m.Nugget) || math.IsInf(m.Nugget, 1) {
		return invalidf("nugget must be >= 0, got %v", m.Nugget)
	}
	return nil
}

func (m Model) correlation() CorrelationFunc {
	switch m.Type {
	case Exponential:
		return exponentialCorrelation
	case Gaussian:
		return gaussianCorrelation
	case Spherical:
		return sphericalCorrelation
	}
	return nil
}

// Covariance returns the covariance between two distinct locations h apart.
// The nugget is excluded; it only applies to a location paired with itself.
// An unknown model type yields NaN.
func (m Model) Covariance(h float64) float64 {
	rho := m.correlation()
	if rho == nil {
		return math.NaN()
	}
	return m.Variance * rho(h, m.Range)
}

// Sill is the total variance at a single location.
func (m Model) Sill() float64 {
	return m.Variance + m.Nugget
}

// Semivariance returns the theoretical semivariogram value γ(h).
func (m Model) Semivariance(h float64) float64 {
	if m.correlation() == nil {
		return math.NaN()
	}
	if h == 0 {
		return 0
	}
	return m.Sill() - m.Covariance(h)
}
