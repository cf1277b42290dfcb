// Package export writes generated sampling points to tabular and GeoJSON
// outputs for field work tooling.
package export

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Options shapes the exported rows: the sample naming scheme and the
// free-form metadata columns attached to every point.
type Options struct {
	// SamplePrefix is the base of every sample name, "SAMPLE" by default.
	SamplePrefix string
	// FilterExpr is the attribute filter ("field=value") the run was
	// generated with; folded into the sample names so sheets from
	// different groups stay tellable apart.
	FilterExpr string
	// PointsPerPolygon and MinDistanceMeters are the generation arguments,
	// also folded into the names when they differ from the defaults.
	PointsPerPolygon  int
	MinDistanceMeters float64
	// Metadata key/values become metadata_<key> columns.
	Metadata map[string]string
	// RunID tags the export; generated when empty.
	RunID string
}

const (
	defaultPrefix      = "SAMPLE"
	defaultMinDistance = 5.0
)

func (o Options) runID() string {
	if o.RunID != "" {
		return o.RunID
	}
	return uuid.NewString()
}

func (o Options) metadataKeys() []string {
	keys := make([]string, 0, len(o.Metadata))
	for k := range o.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// namePrefix builds the descriptive sample name prefix out of the run
// arguments, e.g. SAMPLE_CHARDONNAY_P5_D25M.
func (o Options) namePrefix() string {
	parts := []string{}

	base := o.SamplePrefix
	if base == "" {
		base = defaultPrefix
	}
	parts = append(parts, base)

	if o.FilterExpr != "" {
		parts = append(parts, filterPart(o.FilterExpr))
	}
	if o.PointsPerPolygon > 1 {
		parts = append(parts, fmt.Sprintf("P%d", o.PointsPerPolygon))
	}
	if o.MinDistanceMeters > 0 && o.MinDistanceMeters != defaultMinDistance {
		parts = append(parts, fmt.Sprintf("D%dM", int(o.MinDistanceMeters)))
	}

	return strings.Join(parts, "_")
}

func filterPart(expr string) string {
	field, value, ok := strings.Cut(expr, "=")
	if !ok {
		return strings.ToUpper(strings.ReplaceAll(expr, "=", "_"))
	}
	field = strings.TrimSpace(field)
	value = strings.TrimSpace(value)

	switch field {
	case "description":
		return strings.ToUpper(value)
	case "name":
		// first word keeps the names short
		if first, _, cut := strings.Cut(value, " "); cut {
			return strings.ToUpper(first)
		}
		return strings.ToUpper(value)
	case "styleUrl":
		if i := strings.LastIndex(value, "#"); i >= 0 {
			return strings.ToUpper(value[i+1:])
		}
		return strings.ToUpper(value)
	default:
		return strings.ToUpper(field) + "_" + strings.ToUpper(value)
	}
}

func sampleName(prefix string, pointID int) string {
	return fmt.Sprintf("%s_%04d", prefix, pointID)
}
