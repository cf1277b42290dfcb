package sampler

import (
	"fmt"
	"log/slog"
	"math/rand"
	"runtime"

	"github.com/cheggaaa/pb/v3"
	"github.com/paulmach/orb"
	"github.com/sourcegraph/conc/pool"

	"github.com/soilpoint/fieldsample/boundary"
)

// Method selects the point generation algorithm.
type Method int

const (
	// MethodRejection is seeded rejection sampling with a pairwise
	// separation check, the default.
	MethodRejection Method = iota
	// MethodPoisson fills the polygon with a poisson-disc distribution at
	// the separation radius and keeps the contained points.
	MethodPoisson
)

// Config drives a per-polygon generation run.
type Config struct {
	PointsPerPolygon int
	// MinDistance is the pairwise separation in the boundary's native
	// units, already converted from meters by the caller.
	MinDistance float64
	// Seed is the base reproducibility seed; nil means fresh entropy per
	// polygon. Polygon i samples with seed Seed+i, so sibling polygons get
	// distinct but individually reproducible streams.
	Seed     *int64
	Method   Method
	Threads  int
	Progress bool
}

func ConfigDefault() Config {
	return Config{
		PointsPerPolygon: 1,
		MinDistance:      0,
		Threads:          runtime.GOMAXPROCS(-1),
	}
}

// PolygonResult is the sample for one polygon of the set, carrying the
// polygon index for downstream labeling.
type PolygonResult struct {
	PolygonIndex int
	Result
}

// Collection is the concatenated output of a run, in polygon order.
type Collection struct {
	Results []PolygonResult
}

// Points flattens the collection into a single ordered point sequence.
func (c Collection) Points() []orb.Point {
	var points []orb.Point
	for _, r := range c.Results {
		points = append(points, r.Points...)
	}
	return points
}

// TotalPoints returns the number of accepted points across all polygons.
func (c Collection) TotalPoints() int {
	n := 0
	for _, r := range c.Results {
		n += len(r.Points)
	}
	return n
}

// TotalDeficit returns the accumulated shortfall across all polygons.
func (c Collection) TotalDeficit() int {
	n := 0
	for _, r := range c.Results {
		n += r.Deficit()
	}
	return n
}

// Generator runs the constrained sampler once per polygon of a boundary
// set. It never mutates the set; each polygon gets its own rng and accept
// list, so polygons sample in parallel without synchronization and the
// output for a fixed seed does not depend on scheduling.
type Generator struct {
	cfg Config
	log *slog.Logger
}

func NewGenerator(cfg Config, opts ...Option) *Generator {
	options := loadOptions(opts...)

	if cfg.Threads <= 0 {
		cfg.Threads = runtime.GOMAXPROCS(-1)
	}

	return &Generator{
		cfg: cfg,
		log: options.logger.With("component", "sampler"),
	}
}

// Generate samples every polygon of the set and concatenates the results
// in polygon order. An empty set yields an empty collection. A failure in
// one polygon's geometry is logged and that polygon is skipped with a full
// deficit; the remaining polygons still sample.
func (g *Generator) Generate(set *boundary.Set) Collection {
	if set.Len() == 0 {
		g.log.Warn("no polygons to sample")
		return Collection{}
	}

	g.log.Info("generating sampling points",
		"polygons", set.Len(),
		"points_per_polygon", g.cfg.PointsPerPolygon,
		"min_distance", g.cfg.MinDistance)

	var bar *pb.ProgressBar
	if g.cfg.Progress {
		bar = pb.StartNew(set.Len())
	}

	// slot-indexed results keep polygon order independent of completion
	// order
	results := make([]PolygonResult, set.Len())

	workers := pool.New().WithMaxGoroutines(g.cfg.Threads)
	for i := 0; i < set.Len(); i++ {
		i := i
		polygon := set.Polygon(i)
		workers.Go(func() {
			results[i] = g.samplePolygon(i, polygon)
			if bar != nil {
				bar.Increment()
			}
		})
	}
	workers.Wait()

	if bar != nil {
		bar.Finish()
	}

	return Collection{Results: results}
}

func (g *Generator) samplePolygon(i int, polygon orb.Polygon) (res PolygonResult) {
	res = PolygonResult{
		PolygonIndex: i,
		Result:       Result{Requested: g.cfg.PointsPerPolygon},
	}

	defer func() {
		if r := recover(); r != nil {
			g.log.Error("sampling failed for polygon, skipping",
				"polygon", i, "error", fmt.Sprint(r))
			res.Result = Result{Requested: g.cfg.PointsPerPolygon}
		}
	}()

	var rng *rand.Rand
	if g.cfg.Seed != nil {
		rng = rand.New(rand.NewSource(*g.cfg.Seed + int64(i)))
	}

	switch g.cfg.Method {
	case MethodPoisson:
		res.Result = SamplePoisson(polygon, g.cfg.PointsPerPolygon, g.cfg.MinDistance, rng)
	default:
		res.Result = Sample(polygon, g.cfg.PointsPerPolygon, g.cfg.MinDistance, rng)
	}

	if res.Deficit() > 0 {
		g.log.Warn("generated fewer points than requested",
			"polygon", i,
			"accepted", len(res.Points),
			"requested", res.Requested,
			"attempts", res.Attempts)
	}

	return res
}
