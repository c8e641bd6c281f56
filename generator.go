package randfield

import (
	vec2d "github.com/flywave/go3d/float64/vec2"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Options configures a Generator.
//
// The zero Model is replaced by an exponential model with variance 1 and
// range 1, and Anisotropy defaults to Isotropic. Jitter is added to the
// covariance diagonal before factorizing. Src wins over Seed when set;
// otherwise a PCG source seeded with Seed is used. Pairs closer than
// DuplicateTolerance are reported when factorization fails, Range·1e-6 by
// default.
type Options struct {
	Model              Model
	Anisotropy         Anisotropy
	Jitter             float64
	Seed               uint64
	Src                rand.Source
	DuplicateTolerance float64
}

type Option func(*Options)

func DefaultOptions() Options {
	return Options{
		Model:      Model{Type: Exponential, Variance: 1, Range: 1},
		Anisotropy: Isotropic,
		Seed:       1,
	}
}

func WithModel(m Model) Option {
	return func(o *Options) {
		o.Model = m
	}
}

func WithModelType(t ModelType) Option {
	return func(o *Options) {
		o.Model.Type = t
	}
}

func WithVariance(variance float64) Option {
	return func(o *Options) {
		o.Model.Variance = variance
	}
}

func WithRange(range_ float64) Option {
	return func(o *Options) {
		o.Model.Range = range_
	}
}

func WithNugget(nugget float64) Option {
	return func(o *Options) {
		o.Model.Nugget = nugget
	}
}

// WithAnisotropy stretches correlation along the axis at angle degrees;
// ratio is minor range over major range.
func WithAnisotropy(angle, ratio float64) Option {
	return func(o *Options) {
		o.Anisotropy = Anisotropy{Angle: angle, Ratio: ratio}
	}
}

// WithJitter adds eps to the covariance diagonal. Use it to regularise
// location sets that would otherwise be ill-conditioned.
func WithJitter(eps float64) Option {
	return func(o *Options) {
		o.Jitter = eps
	}
}

func WithSeed(seed uint64) Option {
	return func(o *Options) {
		o.Seed = seed
	}
}

func WithSource(src rand.Source) Option {
	return func(o *Options) {
		o.Src = src
	}
}

func WithDuplicateTolerance(tol float64) Option {
	return func(o *Options) {
		o.DuplicateTolerance = tol
	}
}

func (o Options) validate() error {
	if err := o.Model.Validate(); err != nil {
		return err
	}
	if err := o.Anisotropy.Validate(); err != nil {
		return err
	}
	if o.Jitter < 0 {
		return invalidf("jitter must be >= 0, got %v", o.Jitter)
	}
	if o.DuplicateTolerance < 0 {
		return invalidf("duplicate tolerance must be >= 0, got %v", o.DuplicateTolerance)
	}
	return nil
}

// Generator draws realisations of a zero-mean Gaussian random field at a
// fixed set of locations. The covariance factor is computed once in
// NewGenerator and reused by every draw.
//
// A Generator owns its random source and is not safe for concurrent use.
type Generator struct {
	locs []vec2d.T
	opts Options
	l    *mat.TriDense
	cond float64
	norm distuv.Normal
	z    *mat.VecDense
}

// NewGenerator validates opts, builds the covariance matrix for locs and
// factorizes it. Invalid parameters are rejected before any matrix work.
func NewGenerator(locs []vec2d.T, opts ...Option) (*Generator, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	if len(locs) == 0 {
		return nil, ErrNoLocations
	}

	d, err := AnisotropicDistanceMatrix(locs, o.Anisotropy)
	if err != nil {
		return nil, err
	}
	c, err := CovarianceMatrix(d, o.Model, o.Jitter)
	if err != nil {
		return nil, err
	}
	l, cond, ok := choleskyLower(c)
	if !ok {
		tol := o.DuplicateTolerance
		if tol == 0 {
			tol = o.Model.Range * 1e-6
		}
		return nil, &IllConditionedError{N: len(locs), Cond: cond, Pairs: NearDuplicates(locs, tol)}
	}

	src := o.Src
	if src == nil {
		src = rand.NewSource(o.Seed)
	}
	own := make([]vec2d.T, len(locs))
	copy(own, locs)

	return &Generator{
		locs: own,
		opts: o,
		l:    l,
		cond: cond,
		norm: distuv.Normal{Mu: 0, Sigma: 1, Src: src},
		z:    mat.NewVecDense(len(locs), nil),
	}, nil
}

func (g *Generator) Len() int {
	return len(g.locs)
}

func (g *Generator) Locations() []vec2d.T {
	return g.locs
}

func (g *Generator) Model() Model {
	return g.opts.Model
}

// Cond returns the condition number estimate of the covariance matrix.
func (g *Generator) Cond() float64 {
	return g.cond
}

// Factor returns the lower-triangular L with L·Lᵗ equal to the covariance matrix.
func (g *Generator) Factor() mat.Triangular {
	return g.l
}

// Sample draws one realisation in location order.
func (g *Generator) Sample() []float64 {
	dst := make([]float64, len(g.locs))
	g.sampleInto(dst)
	return dst
}

// SampleInto writes one realisation into dst, which must have length Len().
func (g *Generator) SampleInto(dst []float64) error {
	if len(dst) != len(g.locs) {
		return ErrShape
	}
	g.sampleInto(dst)
	return nil
}

func (g *Generator) sampleInto(dst []float64) {
	n := len(g.locs)
	for i := 0; i < n; i++ {
		g.z.SetVec(i, g.norm.Rand())
	}
	out := mat.NewVecDense(n, dst)
	out.MulVec(g.l, g.z)
}

// Samples draws k independent realisations.
func (g *Generator) Samples(k int) [][]float64 {
	if k <= 0 {
		return nil
	}
	res := make([][]float64, k)
	for i := range res {
		res[i] = g.Sample()
	}
	return res
}

// Sample draws a single exponential-model realisation at locs.
func Sample(locs []vec2d.T, variance, range_ float64, seed uint64) ([]float64, error) {
	g, err := NewGenerator(locs,
		WithModel(Model{Type: Exponential, Variance: variance, Range: range_}),
		WithSeed(seed))
	if err != nil {
		return nil, err
	}
	return g.Sample(), nil
}
