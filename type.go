package randfield

type ModelType string

const (
	Exponential ModelType = "exponential"
	Gaussian    ModelType = "gaussian"
	Spherical   ModelType = "spherical"
)

// Pair is an ordered pair of location indices, I < J.
type Pair [2]int

type PairList []Pair

func (t PairList) Len() int {
	return len(t)
}

func (t PairList) Less(i, j int) bool {
	if t[i][0] == t[j][0] {
		return t[i][1] < t[j][1]
	}
	return t[i][0] < t[j][0]
}

func (t PairList) Swap(i, j int) {
	t[i], t[j] = t[j], t[i]
}

// DistanceList holds {distance, semivariance} tuples.
type DistanceList [][2]float64

func (t DistanceList) Len() int {
	return len(t)
}

func (t DistanceList) Less(i, j int) bool {
	return t[i][0] < t[j][0]
}

func (t DistanceList) Swap(i, j int) {
	tmp := t[i]
	t[i] = t[j]
	t[j] = tmp
}

type Raster struct {
	Values      []float64  `json:"values"`
	XWidth      int        `json:"xWidth"`
	YWidth      int        `json:"yWidth"`
	Xlim        [2]float64 `json:"xLim"`
	Ylim        [2]float64 `json:"yLim"`
	Zlim        [2]float64 `json:"zLim"`
	XResolution float64    `json:"xResolution"`
	YResolution float64    `json:"yResolution"`
}
