package sampler

import (
	"math/rand"

	"github.com/fogleman/poissondisc"
	"github.com/paulmach/orb"

	"github.com/soilpoint/fieldsample/boundary"
)

// poissonK is the candidate count per active sample in the poisson-disc
// algorithm.
const poissonK = 10

// SamplePoisson fills the polygon's bounding box with a poisson-disc
// distribution at radius minDistance, keeps the points contained by the
// polygon and truncates to n. The disc radius already guarantees the
// separation, so no pairwise check is needed. With minDistance <= 0 there
// is no disc radius to sample at and the call degrades to plain rejection
// sampling.
//
// Unlike rejection sampling this method has no notion of attempts; when
// the packing does not fit, the disc fill simply saturates and the result
// is short.
func SamplePoisson(polygon orb.Polygon, n int, minDistance float64, rng *rand.Rand) Result {
	if n <= 0 {
		return Result{}
	}
	if minDistance <= 0 {
		return Sample(polygon, n, minDistance, rng)
	}
	if rng == nil {
		rng = newEntropyRand()
	}

	res := Result{Requested: n}

	bound := polygon.Bound()
	candidates := poissondisc.Sample(
		bound.Min.X(), bound.Min.Y(),
		bound.Max.X(), bound.Max.Y(),
		minDistance, poissonK, rng)

	for _, c := range candidates {
		if len(res.Points) == n {
			break
		}
		point := orb.Point{c.X, c.Y}
		if boundary.Contains(polygon, point) {
			res.Points = append(res.Points, point)
		}
	}

	return res
}
