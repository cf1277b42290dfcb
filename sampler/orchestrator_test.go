package sampler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soilpoint/fieldsample/boundary"
	"github.com/soilpoint/fieldsample/sampler"
)

func twoSquaresSet(t *testing.T) *boundary.Set {
	t.Helper()

	set := boundary.NewSet([]boundary.Entry{
		{Polygon: square(0, 1), Attributes: boundary.Attributes{"name": "a"}},
		{Polygon: square(5, 6), Attributes: boundary.Attributes{"name": "b"}},
	})
	require.Equal(t, 2, set.Len())
	return set
}

func generatorConfig(seed int64) sampler.Config {
	cfg := sampler.ConfigDefault()
	cfg.PointsPerPolygon = 3
	cfg.MinDistance = 0.1
	cfg.Seed = &seed
	return cfg
}

func TestGeneratePerPolygon(t *testing.T) {
	set := twoSquaresSet(t)

	collection := sampler.NewGenerator(generatorConfig(7)).Generate(set)

	require.Len(t, collection.Results, 2)
	assert.Equal(t, 6, collection.TotalPoints())
	assert.Equal(t, 0, collection.TotalDeficit())

	for i, res := range collection.Results {
		assert.Equal(t, i, res.PolygonIndex)
		assert.Len(t, res.Points, 3)
		for _, p := range res.Points {
			assert.True(t, boundary.Contains(set.Polygon(i), p),
				"point %v attributed to polygon %d is outside it", p, i)
		}
	}

	// the separation constraint is scoped per polygon, never across the
	// whole output; nothing to assert between the two subsets beyond
	// their own invariants, which assertInvariants covers per polygon
	for i, res := range collection.Results {
		assertInvariants(t, set.Polygon(i), res.Points, 0.1)
	}
}

func TestGenerateDeterminism(t *testing.T) {
	set := twoSquaresSet(t)

	first := sampler.NewGenerator(generatorConfig(7)).Generate(set)
	second := sampler.NewGenerator(generatorConfig(7)).Generate(set)

	assert.Equal(t, first, second)
}

func TestGenerateParallelMatchesSerial(t *testing.T) {
	set := twoSquaresSet(t)

	serial := generatorConfig(7)
	serial.Threads = 1
	parallel := generatorConfig(7)
	parallel.Threads = 8

	// scheduling must not leak into the output for a fixed base seed
	assert.Equal(t,
		sampler.NewGenerator(serial).Generate(set),
		sampler.NewGenerator(parallel).Generate(set))
}

func TestGenerateSeedIndependenceAcrossPolygons(t *testing.T) {
	// two identical polygons under one base seed must still produce
	// different sub-sequences
	set := boundary.NewSet([]boundary.Entry{
		{Polygon: square(0, 1)},
		{Polygon: square(0, 1)},
	})
	require.Equal(t, 2, set.Len())

	collection := sampler.NewGenerator(generatorConfig(7)).Generate(set)
	require.Len(t, collection.Results, 2)

	a := collection.Results[0].Points
	b := collection.Results[1].Points
	require.NotEmpty(t, a)
	require.NotEmpty(t, b)
	assert.NotEqual(t, a, b)
}

func TestGenerateEmptySet(t *testing.T) {
	collection := sampler.NewGenerator(generatorConfig(7)).Generate(boundary.NewSet(nil))

	assert.Empty(t, collection.Results)
	assert.Equal(t, 0, collection.TotalPoints())
	assert.Empty(t, collection.Points())
}

func TestCollectionPointsOrder(t *testing.T) {
	set := twoSquaresSet(t)

	collection := sampler.NewGenerator(generatorConfig(7)).Generate(set)
	points := collection.Points()
	require.Len(t, points, 6)

	// flattened sequence keeps polygon order: first three from the first
	// square, last three from the second
	for _, p := range points[:3] {
		assert.True(t, boundary.Contains(set.Polygon(0), p))
	}
	for _, p := range points[3:] {
		assert.True(t, boundary.Contains(set.Polygon(1), p))
	}
}
