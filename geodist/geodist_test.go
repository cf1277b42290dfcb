package geodist_test

import (
	"errors"
	"math"
	"testing"

	"github.com/paulmach/orb"

	"github.com/soilpoint/fieldsample/geodist"
)

func TestMetersToDegreesAtEquator(t *testing.T) {
	got, err := geodist.MetersToDegrees(6371000, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != 1.0 {
		t.Errorf("expected one earth radius to convert to exactly 1 at the equator, got %v", got)
	}
}

func TestMetersToDegreesShrinksWithLatitude(t *testing.T) {
	atEquator, err := geodist.MetersToDegrees(100, 0)
	if err != nil {
		t.Fatal(err)
	}
	atSixty, err := geodist.MetersToDegrees(100, 60)
	if err != nil {
		t.Fatal(err)
	}

	// distance-per-degree halves at 60 degrees, so the converted distance
	// doubles
	if math.Abs(atSixty/atEquator-2) > 1e-9 {
		t.Errorf("expected the 60-degree conversion to double the equator one: %v vs %v", atSixty, atEquator)
	}

	south, err := geodist.MetersToDegrees(100, -60)
	if err != nil {
		t.Fatal(err)
	}
	if south != atSixty {
		t.Errorf("expected symmetric hemispheres, got %v and %v", atSixty, south)
	}
}

func TestDegreesMetersRoundTrip(t *testing.T) {
	for _, lat := range []float64{0, 12.5, 45, -45, 80} {
		deg, err := geodist.MetersToDegrees(250, lat)
		if err != nil {
			t.Fatal(err)
		}
		meters, err := geodist.DegreesToMeters(deg, lat)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(meters-250) > 1e-6 {
			t.Errorf("round trip at latitude %v: got %v, want 250", lat, meters)
		}
	}
}

func TestPolarLatitude(t *testing.T) {
	for _, lat := range []float64{90, -90, 95} {
		_, err := geodist.MetersToDegrees(10, lat)
		if !errors.Is(err, geodist.ErrPolarLatitude) {
			t.Errorf("expected ErrPolarLatitude at latitude %v, got %v", lat, err)
		}
		_, err = geodist.DegreesToMeters(10, lat)
		if !errors.Is(err, geodist.ErrPolarLatitude) {
			t.Errorf("expected ErrPolarLatitude at latitude %v, got %v", lat, err)
		}
	}
}

func TestMetersToNativeProjected(t *testing.T) {
	// projected input passes through unchanged, even at a pole
	got, err := geodist.MetersToNative(25, 90, geodist.UnitsMeters)
	if err != nil {
		t.Fatal(err)
	}
	if got != 25 {
		t.Errorf("expected identity conversion for projected units, got %v", got)
	}

	asDegrees, err := geodist.MetersToNative(6371000, 0, geodist.UnitsDegrees)
	if err != nil {
		t.Fatal(err)
	}
	if asDegrees != 1.0 {
		t.Errorf("expected degree conversion for geographic units, got %v", asDegrees)
	}
}

func TestCenterLatitude(t *testing.T) {
	bound := orb.Bound{Min: orb.Point{-10, 40}, Max: orb.Point{10, 50}}
	if got := geodist.CenterLatitude(bound); got != 45 {
		t.Errorf("expected center latitude 45, got %v", got)
	}
}
