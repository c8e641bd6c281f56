package randfield

import (
	"errors"
	"math"
	"testing"

	vec2d "github.com/flywave/go3d/float64/vec2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat"
)

func column(samples [][]float64, i int) []float64 {
	col := make([]float64, len(samples))
	for k := range samples {
		col[k] = samples[k][i]
	}
	return col
}

func TestGeneratorInvalidParameters(t *testing.T) {
	locs := []vec2d.T{{0, 0}, {0.5, 0.5}}
	cases := []struct {
		name string
		opts []Option
	}{
		{"ZeroVariance", []Option{WithVariance(0)}},
		{"NegativeVariance", []Option{WithVariance(-2)}},
		{"ZeroRange", []Option{WithRange(0)}},
		{"NegativeRange", []Option{WithRange(-1)}},
		{"NegativeNugget", []Option{WithNugget(-1)}},
		{"BadRatio", []Option{WithAnisotropy(30, 0)}},
		{"RatioAboveOne", []Option{WithAnisotropy(30, 2)}},
		{"NegativeJitter", []Option{WithJitter(-1e-9)}},
		{"NegativeTolerance", []Option{WithDuplicateTolerance(-1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := NewGenerator(locs, tc.opts...)
			assert.Nil(t, g)
			assert.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

func TestGeneratorInvalidBeforeLocations(t *testing.T) {
	_, err := NewGenerator(nil, WithVariance(0))
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = NewGenerator(nil)
	assert.ErrorIs(t, err, ErrNoLocations)
}

func TestGeneratorSingleLocation(t *testing.T) {
	const variance = 2.5
	g, err := NewGenerator([]vec2d.T{{0.3, 0.7}}, WithVariance(variance), WithRange(0.1), WithSeed(42))
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt(variance), g.Factor().At(0, 0), 1e-12)

	draws := column(g.Samples(20000), 0)
	assert.InDelta(t, 0, stat.Mean(draws, nil), 0.06)
	assert.InDelta(t, variance, stat.Variance(draws, nil), 0.15)
}

func TestGeneratorEmpiricalCovariance(t *testing.T) {
	locs := []vec2d.T{{0, 0}, {0.1, 0}, {0.5, 0.5}}
	const (
		variance = 1.0
		range_   = 0.25
	)
	g, err := NewGenerator(locs, WithVariance(variance), WithRange(range_), WithSeed(2024))
	require.NoError(t, err)

	samples := g.Samples(20000)
	x0, x1, x2 := column(samples, 0), column(samples, 1), column(samples, 2)

	assert.InDelta(t, variance, stat.Variance(x0, nil), 0.05)
	assert.InDelta(t, variance*math.Exp(-0.1/range_), stat.Covariance(x0, x1, nil), 0.05)
	d02 := math.Hypot(0.5, 0.5)
	assert.InDelta(t, variance*math.Exp(-d02/range_), stat.Covariance(x0, x2, nil), 0.05)
}

func TestGeneratorDeterministicGivenSeed(t *testing.T) {
	locs, err := RegularGrid(4, 4)
	require.NoError(t, err)

	a, err := Sample(locs, 1, 0.3, 99)
	require.NoError(t, err)
	b, err := Sample(locs, 1, 0.3, 99)
	require.NoError(t, err)
	c, err := Sample(locs, 1, 0.3, 100)
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, len(locs))
}

func TestGeneratorSampleInto(t *testing.T) {
	locs, _ := RegularGrid(3, 2)
	g, err := NewGenerator(locs, WithSource(rand.NewSource(5)))
	require.NoError(t, err)

	assert.ErrorIs(t, g.SampleInto(make([]float64, 5)), ErrShape)

	dst := make([]float64, 6)
	require.NoError(t, g.SampleInto(dst))
	assert.NotEqual(t, make([]float64, 6), dst)
	assert.Nil(t, g.Samples(0))
}

func TestGeneratorCopiesLocations(t *testing.T) {
	locs := []vec2d.T{{0, 0}, {1, 1}}
	g, err := NewGenerator(locs)
	require.NoError(t, err)
	locs[0] = vec2d.T{5, 5}
	assert.Equal(t, vec2d.T{0, 0}, g.Locations()[0])
	assert.Equal(t, 2, g.Len())
	assert.Equal(t, Exponential, g.Model().Type)
}

func TestGeneratorDuplicateLocations(t *testing.T) {
	locs := []vec2d.T{{0.2, 0.2}, {0.2, 0.2}, {0.8, 0.4}}
	for _, variance := range []float64{1, 2, 0.37} {
		g, err := NewGenerator(locs, WithVariance(variance), WithRange(0.5), WithSeed(11))
		if err != nil {
			require.True(t, errors.Is(err, ErrIllConditioned), "unexpected error %v", err)
			var ill *IllConditionedError
			require.True(t, errors.As(err, &ill))
			assert.Equal(t, 3, ill.N)
			assert.Contains(t, ill.Pairs, Pair{0, 1})
			assert.Contains(t, err.Error(), "0~1")
			continue
		}
		for _, s := range g.Samples(50) {
			assert.InDelta(t, s[0], s[1], 1e-6*math.Sqrt(variance))
		}
	}
}

func TestGeneratorJitterRepairsDuplicates(t *testing.T) {
	locs := []vec2d.T{{0.2, 0.2}, {0.2, 0.2}, {0.8, 0.4}}
	g, err := NewGenerator(locs, WithJitter(1e-6))
	require.NoError(t, err)
	assert.Len(t, g.Sample(), 3)
}

func TestGeneratorGaussianIllConditioned(t *testing.T) {
	locs, err := UnitGrid(20, 20)
	require.NoError(t, err)
	_, err = NewGenerator(locs, WithModelType(Gaussian), WithRange(2))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIllConditioned)

	var ill *IllConditionedError
	require.ErrorAs(t, err, &ill)
	assert.Empty(t, ill.Pairs)
}

func TestGeneratorAnisotropy(t *testing.T) {
	locs := []vec2d.T{{0, 0}, {0.2, 0}, {0, 0.2}}
	g, err := NewGenerator(locs, WithRange(0.5), WithAnisotropy(0, 0.25), WithSeed(8))
	require.NoError(t, err)

	samples := g.Samples(20000)
	x0, x1, x2 := column(samples, 0), column(samples, 1), column(samples, 2)

	// Along the major axis the lag is 0.2, across it 0.2/0.25.
	assert.InDelta(t, math.Exp(-0.2/0.5), stat.Covariance(x0, x1, nil), 0.05)
	assert.InDelta(t, math.Exp(-0.8/0.5), stat.Covariance(x0, x2, nil), 0.05)
}
