package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/paulmach/orb/geojson"

	"github.com/soilpoint/fieldsample/sampler"
)

// WriteGeoJSON writes the collection as a FeatureCollection of points. Each
// feature carries the sample name, point id, polygon index and the run
// metadata; per-polygon requested/accepted counts ride along for deficit
// reporting.
func WriteGeoJSON(w io.Writer, collection sampler.Collection, opts Options) error {
	prefix := opts.namePrefix()
	runID := opts.runID()

	fc := geojson.NewFeatureCollection()

	pointID := 0
	for _, res := range collection.Results {
		for _, p := range res.Points {
			pointID++
			f := geojson.NewFeature(p)
			f.Properties["sample_name"] = sampleName(prefix, pointID)
			f.Properties["point_id"] = pointID
			f.Properties["polygon_index"] = res.PolygonIndex
			f.Properties["requested"] = res.Requested
			f.Properties["accepted"] = len(res.Points)
			for k, v := range opts.Metadata {
				f.Properties["metadata_"+k] = v
			}
			f.Properties["run_id"] = runID
			fc.Append(f)
		}
	}

	data, err := fc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("error marshalling feature collection: %w", err)
	}

	// re-indent for a diffable output file
	var buf json.RawMessage = data
	out, err := json.MarshalIndent(buf, "", "  ")
	if err != nil {
		return fmt.Errorf("error indenting feature collection: %w", err)
	}

	_, err = w.Write(out)
	return err
}

// WriteGeoJSONFile writes the collection to path, creating parent
// directories.
func WriteGeoJSONFile(path string, collection sampler.Collection, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating output file: %w", err)
	}
	defer file.Close()

	return WriteGeoJSON(file, collection, opts)
}
