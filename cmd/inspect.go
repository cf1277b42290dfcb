package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/soilpoint/fieldsample/boundary"
)

var inspectFlags = []cli.Flag{
	&cli.StringFlag{
		Name:      "file",
		Aliases:   []string{"f"},
		Required:  true,
		TakesFile: true,
		Usage:     "input kml/kmz boundary file",
	},
	&cli.StringFlag{
		Name:    "group",
		Aliases: []string{"g"},
		Usage:   "only show polygons matching a kml attribute, format field=value",
	},
}

func inspect(ctx *cli.Context) error {
	closeLog, err := setupLogging(ctx)
	if err != nil {
		return err
	}
	defer closeLog()

	set, err := loadBoundaries(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Polygons: %s\n", humanize.Comma(int64(set.Len())))
	if dropped := set.DroppedIndexes(); len(dropped) > 0 {
		fmt.Printf("Dropped invalid polygons at input indexes %v\n", dropped)
	}

	for i := 0; i < set.Len(); i++ {
		polygon := set.Polygon(i)
		attrs := set.Attributes(i)

		name := attrs.Get("name")
		if name == "" {
			name = "(unnamed)"
		}

		bound := polygon.Bound()
		fmt.Printf("%4d  %-30s vertices=%s area=%.8f bound=(%.6f,%.6f)-(%.6f,%.6f)\n",
			i, name,
			humanize.Comma(int64(len(polygon[0]))),
			boundary.Area(polygon),
			bound.Min.X(), bound.Min.Y(), bound.Max.X(), bound.Max.Y())

		for k, v := range attrs {
			if k == "name" {
				continue
			}
			fmt.Printf("      %s=%s\n", k, v)
		}
	}

	if set.Len() > 0 {
		if bound, ok := set.Bound(); ok {
			fmt.Printf("Total area: %.8f square units, extent (%.6f,%.6f)-(%.6f,%.6f)\n",
				set.Area(),
				bound.Min.X(), bound.Min.Y(), bound.Max.X(), bound.Max.Y())
		}
	}

	return nil
}
