package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/soilpoint/fieldsample/sampler"
)

// WriteCSV writes the collection as one row per point: sample_name,
// longitude, latitude, point_id, polygon_index, followed by a
// metadata_<key> column per metadata entry (run id included). Point ids
// number the flattened sequence from 1 in polygon order.
func WriteCSV(w io.Writer, collection sampler.Collection, opts Options) error {
	prefix := opts.namePrefix()
	metaKeys := opts.metadataKeys()

	header := []string{"sample_name", "longitude", "latitude", "point_id", "polygon_index"}
	for _, k := range metaKeys {
		header = append(header, "metadata_"+k)
	}
	header = append(header, "metadata_run_id")
	runID := opts.runID()

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("error writing csv header: %w", err)
	}

	pointID := 0
	for _, res := range collection.Results {
		for _, p := range res.Points {
			pointID++
			row := []string{
				sampleName(prefix, pointID),
				strconv.FormatFloat(p.X(), 'f', -1, 64),
				strconv.FormatFloat(p.Y(), 'f', -1, 64),
				strconv.Itoa(pointID),
				strconv.Itoa(res.PolygonIndex),
			}
			for _, k := range metaKeys {
				row = append(row, opts.Metadata[k])
			}
			row = append(row, runID)

			if err := cw.Write(row); err != nil {
				return fmt.Errorf("error writing csv row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the collection to path, creating parent directories.
func WriteCSVFile(path string, collection sampler.Collection, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer file.Close()

	return WriteCSV(file, collection, opts)
}
