// Package kmlload parses polygon boundaries and their placemark attributes
// out of KML, gzipped KML and KMZ files.
package kmlload

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/paulmach/orb"

	"github.com/soilpoint/fieldsample/boundary"
)

// Load reads boundary entries from a KML file. ".kml.gz" and ".kmz" inputs
// are decompressed transparently; a KMZ archive contributes its first .kml
// member.
func Load(name string) ([]boundary.Entry, error) {
	if strings.HasSuffix(name, ".kmz") {
		return loadKMZ(name)
	}

	reader, err := openReader(name)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return Parse(reader)
}

func openReader(name string) (io.ReadCloser, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("can`t open kml file: %w", err)
	}

	if strings.HasSuffix(name, ".gz") {
		dec, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("can`t create gzip reader: %w", err)
		}
		return dec, nil
	}

	return file, nil
}

func loadKMZ(name string) ([]boundary.Entry, error) {
	archive, err := zip.OpenReader(name)
	if err != nil {
		return nil, fmt.Errorf("can`t open kmz archive: %w", err)
	}
	defer archive.Close()

	for _, f := range archive.File {
		if !strings.HasSuffix(f.Name, ".kml") {
			continue
		}
		reader, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("can`t open kmz member %s: %w", f.Name, err)
		}
		defer reader.Close()
		return Parse(reader)
	}

	return nil, fmt.Errorf("kmz archive %s has no kml member", name)
}

type kmlRoot struct {
	XMLName  xml.Name  `xml:"kml"`
	Document container `xml:"Document"`
	// placemarks directly under <kml> occur in minimal files
	Placemarks []placemark `xml:"Placemark"`
}

// container models Document and Folder elements, which nest arbitrarily.
type container struct {
	Folders    []container `xml:"Folder"`
	Placemarks []placemark `xml:"Placemark"`
}

type placemark struct {
	Name         string      `xml:"name"`
	Description  string      `xml:"description"`
	StyleURL     string      `xml:"styleUrl"`
	ExtendedData []dataField `xml:"ExtendedData>Data"`
	Polygon      *kmlPolygon `xml:"Polygon"`
}

type dataField struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value"`
}

type kmlPolygon struct {
	OuterCoordinates string `xml:"outerBoundaryIs>LinearRing>coordinates"`
	// some producers put coordinates directly under the polygon
	Coordinates string `xml:"LinearRing>coordinates"`
}

// Parse extracts every placemark polygon with its attributes from a KML
// stream. Placemarks without a polygon, or with fewer than three coordinate
// pairs, are skipped with a warning; full geometric validation is left to
// boundary.NewSet.
func Parse(r io.Reader) ([]boundary.Entry, error) {
	var root kmlRoot
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("error parsing kml: %w", err)
	}

	log := slog.With("component", "kmlload")

	var entries []boundary.Entry
	var index int
	collect := func(p placemark) {
		index++
		if p.Polygon == nil {
			return
		}

		ring, err := parseCoordinates(p.Polygon.coordinatesText())
		if err != nil {
			log.Warn("skipping placemark with bad coordinates",
				"placemark", index, "name", p.Name, "error", err.Error())
			return
		}
		if len(ring) < 3 {
			log.Warn("skipping placemark with insufficient coordinates",
				"placemark", index, "name", p.Name, "points", len(ring))
			return
		}
		if !ring.Closed() {
			ring = append(ring, ring[0])
		}

		entries = append(entries, boundary.Entry{
			Polygon:    orb.Polygon{ring},
			Attributes: p.attributes(),
		})
	}
	walk(root.Document, collect)
	for _, p := range root.Placemarks {
		collect(p)
	}

	log.Info("extracted polygons from kml", "polygons", len(entries))
	return entries, nil
}

func walk(c container, collect func(placemark)) {
	for _, p := range c.Placemarks {
		collect(p)
	}
	for _, f := range c.Folders {
		walk(f, collect)
	}
}

func (p placemark) attributes() boundary.Attributes {
	attrs := boundary.Attributes{}

	if name := strings.TrimSpace(p.Name); name != "" {
		attrs["name"] = name
	}
	if desc := strings.TrimSpace(p.Description); desc != "" {
		attrs["description"] = desc
	}
	if style := strings.TrimSpace(p.StyleURL); style != "" {
		attrs["styleUrl"] = strings.TrimPrefix(style, "#")
	}
	for _, d := range p.ExtendedData {
		if d.Name == "" {
			continue
		}
		if value := strings.TrimSpace(d.Value); value != "" {
			attrs["data_"+d.Name] = value
		}
	}

	return attrs
}

func (p kmlPolygon) coordinatesText() string {
	if strings.TrimSpace(p.OuterCoordinates) != "" {
		return p.OuterCoordinates
	}
	return p.Coordinates
}

// parseCoordinates reads the KML "lon,lat[,alt]" whitespace-separated tuple
// format. Altitude is dropped.
func parseCoordinates(text string) (orb.Ring, error) {
	ring := orb.Ring{}

	for _, tuple := range strings.Fields(text) {
		parts := strings.Split(tuple, ",")
		if len(parts) < 2 {
			return nil, fmt.Errorf("coordinate tuple %q has no lat part", tuple)
		}
		lon, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return nil, fmt.Errorf("bad longitude %q: %w", parts[0], err)
		}
		lat, err := strconv.ParseFloat(parts[1], 64)
		if err != nil {
			return nil, fmt.Errorf("bad latitude %q: %w", parts[1], err)
		}
		ring = append(ring, orb.Point{lon, lat})
	}

	return ring, nil
}
