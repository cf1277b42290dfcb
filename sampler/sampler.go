// Package sampler generates random sampling points inside polygon
// boundaries with a minimum pairwise separation, reproducibly from a seed.
package sampler

import (
	"math/rand"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/soilpoint/fieldsample/boundary"
)

// attemptsPerPoint caps the rejection loop at n * attemptsPerPoint draws.
// A fixed ceiling, not an adaptive one: it is the sole guard against an
// unbounded loop when the requested packing does not fit the polygon.
const attemptsPerPoint = 1000

// Result is the outcome of sampling a single polygon. Fewer points than
// requested is a legitimate outcome, not an error; the shortfall is
// reported through Deficit.
type Result struct {
	Points    []orb.Point
	Requested int
	Attempts  int
}

// Deficit returns the shortfall between requested and accepted points.
func (r Result) Deficit() int {
	return r.Requested - len(r.Points)
}

// Sample draws up to n points inside polygon, each pair at least
// minDistance apart in the polygon's native units, by rejection sampling
// over the polygon's bounding box. A nil rng falls back to
// non-reproducible entropy; pass a seeded rng for reproducible output.
//
// n <= 0 yields an empty result. minDistance <= 0 disables the separation
// check and constrains candidates by containment only.
//
// Termination is probabilistic: the loop stops after n*1000 attempts and
// returns whatever was accepted. The separation check is a linear scan over
// the accepted points, O(attempts x accepted). Fine for the tens to
// hundreds of points a field survey asks for, not for bulk generation.
func Sample(polygon orb.Polygon, n int, minDistance float64, rng *rand.Rand) Result {
	if n <= 0 {
		return Result{}
	}
	if rng == nil {
		rng = newEntropyRand()
	}

	res := Result{
		Requested: n,
		Points:    make([]orb.Point, 0, n),
	}

	bound := polygon.Bound()
	spanX := bound.Max.X() - bound.Min.X()
	spanY := bound.Max.Y() - bound.Min.Y()

	maxAttempts := n * attemptsPerPoint
	for len(res.Points) < n && res.Attempts < maxAttempts {
		res.Attempts++

		x := bound.Min.X() + rng.Float64()*spanX
		y := bound.Min.Y() + rng.Float64()*spanY
		candidate := orb.Point{x, y}

		if !boundary.Contains(polygon, candidate) {
			continue
		}
		if minDistance > 0 && tooClose(res.Points, candidate, minDistance) {
			continue
		}

		res.Points = append(res.Points, candidate)
	}

	return res
}

func newEntropyRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func tooClose(accepted []orb.Point, candidate orb.Point, minDistance float64) bool {
	for _, p := range accepted {
		if planar.Distance(candidate, p) < minDistance {
			return true
		}
	}
	return false
}
