package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"
	_ "go.uber.org/automaxprocs"

	"github.com/soilpoint/fieldsample/internal/logsetup"
)

func main() {
	app := &cli.App{
		Name:        "fieldsample",
		Description: "Random sampling point generator for KML polygon boundaries",
		Commands: []*cli.Command{
			{
				Name:    "generate",
				Aliases: []string{"g"},
				Usage:   "generate sampling points inside the boundaries of a kml file",
				Flags:   append(generateFlags, loggingFlags...),
				Action:  generate,
			},
			{
				Name:   "inspect",
				Usage:  "list the polygons of a kml file with their attributes and extents",
				Flags:  append(inspectFlags, loggingFlags...),
				Action: inspect,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

var loggingFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
	},
	&cli.BoolFlag{
		Name:    "quiet",
		Aliases: []string{"q"},
	},
	&cli.StringFlag{
		Name:      "log-file",
		TakesFile: true,
	},
}

func setupLogging(ctx *cli.Context) (func() error, error) {
	level := slog.LevelInfo
	if ctx.Bool("verbose") {
		level = slog.LevelDebug
	}
	if ctx.Bool("quiet") {
		level = slog.LevelError
	}

	return logsetup.Setup(logsetup.Config{
		Level:   level,
		LogFile: ctx.String("log-file"),
	})
}
