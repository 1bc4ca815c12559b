package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/micutio/jettrack/internal"
	geojson "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T) *internal.Dashboard {
	t.Helper()

	pipeline, err := internal.NewPipeline(internal.DefaultConfig(), nil)
	require.NoError(t, err)

	table, err := pipeline.Run(bytes.NewBufferString(
		"2021-05-01, City A (BTL), City B (PBI), 500, \n"+
			"2021-05-02, City B (PBI), City A (BTL), 500, \n"+
			"2021-05-08, City A (BTL), City B (PBI), 500, \n"), nil)
	require.NoError(t, err)

	cfg := internal.DefaultConfig()

	return internal.NewDashboard(table, internal.EmissionSettingsFrom(cfg), cfg.LineStyle())
}

func TestFeatureCollection(t *testing.T) {
	db := fixture(t)

	collection := FeatureCollection(db, db.Records)
	require.Len(t, collection.Features, 5)

	first := collection.Features[0]
	assert.Equal(t, kindFlight, first.PropertyMustString(propKind))
	assert.Equal(t, "#FFC107", first.PropertyMustString(propColor))
	assert.Equal(t, "2021-05-01", first.PropertyMustString(propDate))
	assert.Equal(t, 2, first.PropertyMustInt(propCount))
	require.Len(t, first.Geometry.LineString, 2)
	assert.InDelta(t, -85.2515, first.Geometry.LineString[0][0], 1e-9)
	assert.InDelta(t, 42.3073, first.Geometry.LineString[0][1], 1e-9)

	second := collection.Features[1]
	assert.Equal(t, "#9E9E9E", second.PropertyMustString(propColor))

	btl := collection.Features[3]
	assert.Equal(t, kindPort, btl.PropertyMustString(propKind))
	assert.Equal(t, "BTL", btl.PropertyMustString(propCode))
	assert.Equal(t, 2, btl.PropertyMustInt(propDeps))
	assert.Equal(t, 1, btl.PropertyMustInt(propArrs))
}

func TestWriteGeoJSONRoundTrip(t *testing.T) {
	db := fixture(t)
	until := time.Date(2021, time.May, 2, 0, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, WriteGeoJSON(&buf, db, db.FilterUntil(until)))

	decoded, err := geojson.UnmarshalFeatureCollection(buf.Bytes())
	require.NoError(t, err)
	assert.Len(t, decoded.Features, 4)
	assert.Equal(t, "BTL→PBI", decoded.Features[0].PropertyMustString(propRoute))
}

func TestSaveGeoJSONEmpty(t *testing.T) {
	db := fixture(t)
	path := filepath.Join(t.TempDir(), "routes.geojson")

	require.NoError(t, SaveGeoJSON(path, db, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	decoded, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	assert.Empty(t, decoded.Features)
}

func TestProjectionKeepsPointsInsideMap(t *testing.T) {
	db := fixture(t)
	proj := newProjection(db.Segments(db.Records))

	for _, record := range db.Records {
		for _, pos := range []internal.Coordinates{record.OriginPos, record.DestinationPos} {
			x, y := proj.point(pos)
			assert.GreaterOrEqual(t, x, mapOffsetX)
			assert.LessOrEqual(t, x, mapOffsetX+mapWidth)
			assert.GreaterOrEqual(t, y, mapOffsetY)
			assert.LessOrEqual(t, y, mapOffsetY+mapHeight)
		}
	}

	// north is up
	_, yBTL := proj.point(db.Records[0].OriginPos)
	_, yPBI := proj.point(db.Records[0].DestinationPos)
	assert.Less(t, yBTL, yPBI)
}

func TestHexToRGB(t *testing.T) {
	r, g, b := hexToRGB("#F4511E")
	assert.Equal(t, []int{0xF4, 0x51, 0x1E}, []int{r, g, b})

	r, g, b = hexToRGB("orange")
	assert.Equal(t, []int{0, 0, 0}, []int{r, g, b})
}

func TestWritePDF(t *testing.T) {
	db := fixture(t)

	var buf bytes.Buffer
	require.NoError(t, WritePDF(&buf, db, db.Records, "Flights BTL → PBI"))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))

	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, SavePDF(path, db, nil, "Empty"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestWriteConfigured(t *testing.T) {
	db := fixture(t)
	dir := t.TempDir()

	written, err := WriteConfigured(internal.ExportConfig{GeoJSON: "", PDF: ""}, db, db.Records, "Flights", nil)
	require.NoError(t, err)
	assert.Empty(t, written)

	cfg := internal.ExportConfig{
		GeoJSON: filepath.Join(dir, "routes.geojson"),
		PDF:     filepath.Join(dir, "report.pdf"),
	}

	written, err = WriteConfigured(cfg, db, db.Records, "Flights", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{cfg.GeoJSON, cfg.PDF}, written)

	for _, path := range written {
		assert.FileExists(t, path)
	}

	_, err = WriteConfigured(internal.ExportConfig{GeoJSON: filepath.Join(dir, "missing", "x.geojson")}, db, db.Records, "Flights", nil)
	assert.Error(t, err)
}
