package randfield

import (
	"math"
	"sort"

	vec2d "github.com/flywave/go3d/float64/vec2"
)

// Lag is one distance bin of an empirical semivariogram.
type Lag struct {
	Distance     float64 `json:"distance"`
	Semivariance float64 `json:"semivariance"`
	Pairs        int     `json:"pairs"`
}

// Semivariogram bins ½(v_i − v_j)² over all location pairs into lags
// equal-width distance classes up to the largest pair distance. Empty
// classes are dropped. No model is fitted.
func Semivariogram(locs []vec2d.T, values []float64, lags int) ([]Lag, error) {
	n := len(locs)
	if n != len(values) {
		return nil, ErrShape
	}
	if n < 2 {
		return nil, invalidf("semivariogram needs at least 2 locations, got %d", n)
	}
	if lags < 1 {
		return nil, invalidf("lag count must be >= 1, got %d", lags)
	}

	distance := make(DistanceList, 0, (n*n-n)/2)
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			h := math.Hypot(locs[i][0]-locs[j][0], locs[i][1]-locs[j][1])
			distance = append(distance, [2]float64{h, 0.5 * pow2(values[i]-values[j])})
		}
	}
	sort.Sort(distance)

	maxDist := distance[len(distance)-1][0]
	if maxDist == 0 {
		return nil, invalidf("all locations coincide")
	}
	tolerance := maxDist / float64(lags)

	res := make([]Lag, 0, lags)
	j := 0
	for l := 0; l < lags && j < len(distance); l++ {
		var lag Lag
		upper := float64(l+1) * tolerance
		for j < len(distance) && (distance[j][0] <= upper || l == lags-1) {
			lag.Distance += distance[j][0]
			lag.Semivariance += distance[j][1]
			lag.Pairs++
			j++
		}
		if lag.Pairs > 0 {
			lag.Distance /= float64(lag.Pairs)
			lag.Semivariance /= float64(lag.Pairs)
			res = append(res, lag)
		}
	}
	return res, nil
}

// AverageSemivariogram averages Semivariogram over several realisations at
// the same locations. Bins follow the first realisation's binning, which is
// identical for every realisation because it only depends on locs.
func AverageSemivariogram(locs []vec2d.T, samples [][]float64, lags int) ([]Lag, error) {
	if len(samples) == 0 {
		return nil, invalidf("no samples")
	}
	var acc []Lag
	for _, s := range samples {
		v, err := Semivariogram(locs, s, lags)
		if err != nil {
			return nil, err
		}
		if acc == nil {
			acc = v
			continue
		}
		for i := range acc {
			acc[i].Semivariance += v[i].Semivariance
		}
	}
	for i := range acc {
		acc[i].Semivariance /= float64(len(samples))
	}
	return acc, nil
}
