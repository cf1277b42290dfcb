package boundary

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Contains reports whether point lies inside polygon, using the even-odd
// ray casting rule. Points exactly on an edge are classified by the parity
// of the ray crossing and may land on either side, but the rule is fixed
// and the same point always classifies the same way.
func Contains(polygon orb.Polygon, point orb.Point) bool {
	return planar.PolygonContains(polygon, point)
}

// Area returns the planar area of the polygon in its native coordinate
// units, square degrees for unprojected input. Always non-negative
// regardless of ring orientation.
func Area(polygon orb.Polygon) float64 {
	return math.Abs(planar.Area(polygon))
}

// Valid reports whether polygon is usable for sampling: a closed outer ring
// of at least three distinct vertices, non-zero area and no
// self-intersections. Invalid polygons are dropped by Set construction and
// never propagate further.
func Valid(polygon orb.Polygon) bool {
	if len(polygon) == 0 {
		return false
	}

	ring := polygon[0]
	if len(ring) < 4 || !ring.Closed() {
		return false
	}
	if distinctVertices(ring) < 3 {
		return false
	}
	if planar.Area(orb.Polygon{ring}) == 0 {
		return false
	}
	return !selfIntersects(ring)
}

// CombinedRegion merges polygons into one boundary geometry. A single
// polygon is returned as is, skipping the multi-polygon wrapping and the
// numerical noise that comes with it. The returned region is only meant for
// aggregate bound queries; containment still runs against the individual
// polygons.
func CombinedRegion(polygons []orb.Polygon) (orb.Geometry, bool) {
	switch len(polygons) {
	case 0:
		return nil, false
	case 1:
		return polygons[0], true
	}

	region := make(orb.MultiPolygon, 0, len(polygons))
	region = append(region, polygons...)
	return region, true
}

func distinctVertices(ring orb.Ring) int {
	seen := make(map[orb.Point]struct{}, len(ring))
	for _, p := range ring {
		seen[p] = struct{}{}
	}
	return len(seen)
}

// selfIntersects checks every non-adjacent segment pair of the ring.
// Quadratic, but rings here are field boundaries with tens of vertices.
func selfIntersects(ring orb.Ring) bool {
	n := len(ring) - 1 // ring is closed, last point repeats the first
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			// skip segments sharing a vertex, including the closing pair
			if j == i+1 || (i == 0 && j == n-1) {
				continue
			}
			if segmentsCross(ring[i], ring[i+1], ring[j], ring[j+1]) {
				return true
			}
		}
	}
	return false
}

func segmentsCross(a, b, c, d orb.Point) bool {
	d1 := cross(c, d, a)
	d2 := cross(c, d, b)
	d3 := cross(a, b, c)
	d4 := cross(a, b, d)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	return (d1 == 0 && onSegment(c, d, a)) ||
		(d2 == 0 && onSegment(c, d, b)) ||
		(d3 == 0 && onSegment(a, b, c)) ||
		(d4 == 0 && onSegment(a, b, d))
}

func cross(o, a, b orb.Point) float64 {
	return (a[0]-o[0])*(b[1]-o[1]) - (a[1]-o[1])*(b[0]-o[0])
}

func onSegment(a, b, p orb.Point) bool {
	return math.Min(a[0], b[0]) <= p[0] && p[0] <= math.Max(a[0], b[0]) &&
		math.Min(a[1], b[1]) <= p[1] && p[1] <= math.Max(a[1], b[1])
}
