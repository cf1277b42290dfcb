// Package geodist converts real-world metric distances into the coordinate
// units of a boundary. Geographic (lon/lat) boundaries shrink east-west
// distance-per-degree away from the equator, so the conversion depends on a
// reference latitude.
package geodist

import (
	"errors"
	"math"

	"github.com/paulmach/orb"
)

// Mean Earth radius, spherical approximation.
const earthRadiusMeters = 6371000.0

// ErrPolarLatitude is returned for reference latitudes at the poles, where
// the cosine term degenerates and a metric east-west distance has no finite
// equivalent in degrees.
var ErrPolarLatitude = errors.New("geodist: reference latitude at a pole has no distance-per-degree")

// Units tags the coordinate system of a boundary.
type Units int

const (
	// UnitsDegrees is unprojected geographic lon/lat in decimal degrees.
	UnitsDegrees Units = iota
	// UnitsMeters is a projected, locally uniform linear system; metric
	// distances pass through unchanged.
	UnitsMeters
)

// MetersToNative converts a metric distance to the boundary's native units
// at the given reference latitude. Identity for projected input.
func MetersToNative(meters, latitudeDeg float64, units Units) (float64, error) {
	if units == UnitsMeters {
		return meters, nil
	}
	return MetersToDegrees(meters, latitudeDeg)
}

// MetersToDegrees converts meters to decimal degrees at a reference
// latitude.
func MetersToDegrees(meters, latitudeDeg float64) (float64, error) {
	if math.Abs(latitudeDeg) >= 90 {
		return 0, ErrPolarLatitude
	}
	metersPerDegree := earthRadiusMeters * math.Cos(latitudeDeg*math.Pi/180)
	return meters / metersPerDegree, nil
}

// DegreesToMeters is the inverse of MetersToDegrees.
func DegreesToMeters(degrees, latitudeDeg float64) (float64, error) {
	if math.Abs(latitudeDeg) >= 90 {
		return 0, ErrPolarLatitude
	}
	metersPerDegree := earthRadiusMeters * math.Cos(latitudeDeg*math.Pi/180)
	return degrees * metersPerDegree, nil
}

// CenterLatitude returns the latitude midpoint of a bound.
func CenterLatitude(bound orb.Bound) float64 {
	return (bound.Min.Y() + bound.Max.Y()) / 2
}
