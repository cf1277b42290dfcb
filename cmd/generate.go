package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	_ "net/http/pprof"

	"github.com/soilpoint/fieldsample/boundary"
	"github.com/soilpoint/fieldsample/export"
	"github.com/soilpoint/fieldsample/geodist"
	"github.com/soilpoint/fieldsample/kmlload"
	"github.com/soilpoint/fieldsample/sampler"
)

var generateFlags = []cli.Flag{
	&cli.StringFlag{
		Name:      "file",
		Aliases:   []string{"f"},
		Required:  true,
		TakesFile: true,
		Usage:     "input kml/kmz boundary file",
	},
	&cli.IntFlag{
		Name:     "points",
		Aliases:  []string{"n"},
		Required: true,
		Usage:    "number of sampling points per polygon",
	},
	&cli.StringFlag{
		Name:      "output",
		Aliases:   []string{"o"},
		Required:  true,
		TakesFile: true,
		Usage:     "output file path",
	},
	&cli.Float64Flag{
		Name:  "min-distance",
		Value: 5.0,
		Usage: "minimum distance between points in meters",
	},
	&cli.StringFlag{
		Name:    "group",
		Aliases: []string{"g"},
		Usage:   "only sample polygons matching a kml attribute, format field=value",
	},
	&cli.IntFlag{
		Name:        "seed",
		Aliases:     []string{"s"},
		DefaultText: "entropy",
		Usage:       "base random seed for reproducible output",
	},
	&cli.StringFlag{
		Name:  "prefix",
		Value: "SAMPLE",
		Usage: "prefix for sample names",
	},
	&cli.StringSliceFlag{
		Name:  "metadata",
		Usage: "extra metadata columns, format key=value, repeatable",
	},
	&cli.StringFlag{
		Name:  "format",
		Value: "csv",
		Usage: "output format, csv or geojson",
	},
	&cli.StringFlag{
		Name:  "method",
		Value: "rejection",
		Usage: "point generation method, rejection or poisson",
	},
	&cli.BoolFlag{
		Name:  "projected",
		Usage: "boundary coordinates are already in meters, skip degree conversion",
	},
	&cli.IntFlag{
		Name:        "threads",
		Aliases:     []string{"t"},
		DefaultText: "max",
	},
	&cli.BoolFlag{
		Name:  "progress",
		Usage: "show a per-polygon progress bar",
	},
	&cli.StringFlag{
		Name: "pprof.listen",
	},
}

func generate(ctx *cli.Context) error {
	closeLog, err := setupLogging(ctx)
	if err != nil {
		return err
	}
	defer closeLog()

	log := slog.Default()

	nPoints := ctx.Int("points")
	if nPoints <= 0 {
		return fmt.Errorf("points must be positive, got %d", nPoints)
	}
	minDistanceMeters := ctx.Float64("min-distance")
	if minDistanceMeters <= 0 {
		return fmt.Errorf("min-distance must be positive, got %v", minDistanceMeters)
	}

	if pprofListen := ctx.String("pprof.listen"); pprofListen != "" {
		go func() {
			log.Info("Starting pprof server")
			err := http.ListenAndServe(pprofListen, nil)
			if err != nil {
				log.Error("Error starting pprof server", "error", err)
			}
		}()
	}

	set, err := loadBoundaries(ctx)
	if err != nil {
		return err
	}
	if set.Len() == 0 {
		return fmt.Errorf("no polygons to sample")
	}

	bound, ok := set.Bound()
	if !ok {
		return fmt.Errorf("no boundary extent available")
	}

	units := geodist.UnitsDegrees
	if ctx.Bool("projected") {
		units = geodist.UnitsMeters
	}

	centerLat := geodist.CenterLatitude(bound)
	minDistance, err := geodist.MetersToNative(minDistanceMeters, centerLat, units)
	if err != nil {
		return fmt.Errorf("error converting min distance: %w", err)
	}
	log.Info("converted minimum distance",
		"meters", minDistanceMeters,
		"native", minDistance,
		"center_latitude", centerLat)

	cfg := sampler.Config{
		PointsPerPolygon: nPoints,
		MinDistance:      minDistance,
		Threads:          ctx.Int("threads"),
		Progress:         ctx.Bool("progress"),
	}
	if ctx.IsSet("seed") {
		seed := int64(ctx.Int("seed"))
		cfg.Seed = &seed
	}
	switch method := ctx.String("method"); method {
	case "rejection", "":
		cfg.Method = sampler.MethodRejection
	case "poisson":
		cfg.Method = sampler.MethodPoisson
	default:
		return fmt.Errorf("unknown method %q", method)
	}

	collection := sampler.NewGenerator(cfg).Generate(set)
	if collection.TotalPoints() == 0 {
		return fmt.Errorf("no sampling points could be generated")
	}

	opts := export.Options{
		SamplePrefix:      ctx.String("prefix"),
		FilterExpr:        ctx.String("group"),
		PointsPerPolygon:  nPoints,
		MinDistanceMeters: minDistanceMeters,
		Metadata:          parseMetadata(ctx.StringSlice("metadata")),
	}

	output := ctx.String("output")
	switch format := ctx.String("format"); format {
	case "csv", "":
		err = export.WriteCSVFile(output, collection, opts)
	case "geojson":
		err = export.WriteGeoJSONFile(output, collection, opts)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return fmt.Errorf("error exporting points: %w", err)
	}

	fmt.Printf("Generated %s points across %s polygons\n",
		humanize.Comma(int64(collection.TotalPoints())),
		humanize.Comma(int64(set.Len())))
	if deficit := collection.TotalDeficit(); deficit > 0 {
		fmt.Printf("Short %s points of the requested count, see log for the affected polygons\n",
			humanize.Comma(int64(deficit)))
	}
	fmt.Printf("Saved to file: %s\n", output)

	return nil
}

func loadBoundaries(ctx *cli.Context) (*boundary.Set, error) {
	entries, err := kmlload.Load(ctx.String("file"))
	if err != nil {
		return nil, fmt.Errorf("error loading boundaries: %w", err)
	}

	set := boundary.NewSet(entries)

	if group := ctx.String("group"); group != "" {
		field, value, ok := strings.Cut(group, "=")
		if !ok {
			return nil, fmt.Errorf("invalid group filter %q, expected field=value", group)
		}
		set = set.FilterByAttribute(strings.TrimSpace(field), strings.TrimSpace(value))
		if set.Len() == 0 {
			return nil, fmt.Errorf("no polygons match the filter %q", group)
		}
	}

	return set, nil
}

func parseMetadata(args []string) map[string]string {
	metadata := map[string]string{}
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			slog.Warn("ignoring metadata without key=value format", "arg", arg)
			continue
		}
		metadata[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return metadata
}
