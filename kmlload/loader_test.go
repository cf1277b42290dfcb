package kmlload_test

import (
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soilpoint/fieldsample/kmlload"
)

const fieldKML = `<?xml version="1.0" encoding="UTF-8"?>
<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <name>vineyard</name>
    <Placemark>
      <name>Chardonnay Block</name>
      <description>north field</description>
      <styleUrl>#poly-3949AB-2000-76</styleUrl>
      <ExtendedData>
        <Data name="Variety">
          <value>Chardonnay</value>
        </Data>
      </ExtendedData>
      <Polygon>
        <outerBoundaryIs>
          <LinearRing>
            <coordinates>
              -76.45,42.45,0 -76.44,42.45,0 -76.44,42.46,0 -76.45,42.46,0 -76.45,42.45,0
            </coordinates>
          </LinearRing>
        </outerBoundaryIs>
      </Polygon>
    </Placemark>
    <Folder>
      <Placemark>
        <name>unclosed</name>
        <Polygon>
          <outerBoundaryIs>
            <LinearRing>
              <coordinates>0,0 1,0 1,1 0,1</coordinates>
            </LinearRing>
          </outerBoundaryIs>
        </Polygon>
      </Placemark>
    </Folder>
    <Placemark>
      <name>too-short</name>
      <Polygon>
        <outerBoundaryIs>
          <LinearRing>
            <coordinates>0,0 1,1</coordinates>
          </LinearRing>
        </outerBoundaryIs>
      </Polygon>
    </Placemark>
    <Placemark>
      <name>no-geometry</name>
    </Placemark>
  </Document>
</kml>`

func TestParse(t *testing.T) {
	entries, err := kmlload.Parse(strings.NewReader(fieldKML))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	field := entries[0]
	assert.Equal(t, "Chardonnay Block", field.Attributes.Get("name"))
	assert.Equal(t, "north field", field.Attributes.Get("description"))
	// the # prefix is stripped
	assert.Equal(t, "poly-3949AB-2000-76", field.Attributes.Get("styleUrl"))
	assert.Equal(t, "Chardonnay", field.Attributes.Get("data_Variety"))

	require.Len(t, field.Polygon, 1)
	ring := field.Polygon[0]
	require.Len(t, ring, 5)
	assert.True(t, ring.Closed())
	assert.Equal(t, orb.Point{-76.45, 42.45}, ring[0])

	// unclosed rings are closed by the loader
	unclosed := entries[1]
	assert.Equal(t, "unclosed", unclosed.Attributes.Get("name"))
	require.Len(t, unclosed.Polygon[0], 5)
	assert.True(t, unclosed.Polygon[0].Closed())
}

func TestParseDirectCoordinates(t *testing.T) {
	// some producers skip outerBoundaryIs
	kml := `<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <Placemark>
      <Polygon>
        <LinearRing>
          <coordinates>0,0 2,0 2,2 0,2 0,0</coordinates>
        </LinearRing>
      </Polygon>
    </Placemark>
  </Document>
</kml>`

	entries, err := kmlload.Parse(strings.NewReader(kml))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Len(t, entries[0].Polygon[0], 5)
}

func TestParseBadXML(t *testing.T) {
	_, err := kmlload.Parse(strings.NewReader("<kml><Document>"))
	assert.Error(t, err)
}

func TestParseBadCoordinates(t *testing.T) {
	kml := `<kml xmlns="http://www.opengis.net/kml/2.2">
  <Document>
    <Placemark>
      <Polygon>
        <outerBoundaryIs>
          <LinearRing>
            <coordinates>abc,def 1,1 2,2 0,0</coordinates>
          </LinearRing>
        </outerBoundaryIs>
      </Polygon>
    </Placemark>
  </Document>
</kml>`

	// a bad placemark is skipped, not fatal
	entries, err := kmlload.Parse(strings.NewReader(kml))
	require.NoError(t, err)
	assert.Empty(t, entries)
}
