package internal

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAirportDirectoryLookup(t *testing.T) {
	dir := NewAirportDirectory(nil)

	pos, found := dir.Lookup("BTL")
	require.True(t, found)
	assert.InDelta(t, 42.3073, pos.Latitude, 1e-9)
	assert.InDelta(t, -85.2515, pos.Longitude, 1e-9)

	_, found = dir.Lookup("XXX")
	assert.False(t, found)

	_, found = dir.Lookup("btl")
	assert.False(t, found, "lookup is case sensitive; codes are upper-cased on extraction")

	assert.Equal(t, len(builtinAirports), dir.Len())
}

func TestAirportDirectoryExtraNeverOverridesBuiltins(t *testing.T) {
	dir := NewAirportDirectory(map[AirportCode]Coordinates{
		"BTL": NewCoordinates(0, 0),
		"JFK": NewCoordinates(40.6413, -73.7781),
	})

	pos, found := dir.Lookup("BTL")
	require.True(t, found)
	assert.InDelta(t, 42.3073, pos.Latitude, 1e-9)

	_, found = dir.Lookup("JFK")
	assert.True(t, found)
	assert.Equal(t, len(builtinAirports)+1, dir.Len())
}

func TestAirportDirectoryCodesSorted(t *testing.T) {
	codes := NewAirportDirectory(nil).Codes()
	require.NotEmpty(t, codes)

	for i := 1; i < len(codes); i++ {
		assert.Less(t, codes[i-1], codes[i])
	}
}

func TestParseAirportsCSV(t *testing.T) {
	input := "code,lat,lon,name\n" +
		"jfk, 40.6413, -73.7781, New York JFK\n" +
		"ORD,41.9742,-87.9073\n" +
		",1,2\n"

	airports, err := parseAirportsCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, airports, 2)
	assert.InDelta(t, 41.9742, airports["ORD"].Latitude, 1e-9)
	assert.InDelta(t, -73.7781, airports["JFK"].Longitude, 1e-9)
}

func TestParseAirportsCSVErrors(t *testing.T) {
	_, err := parseAirportsCSV(strings.NewReader("code,lat\n"))
	require.ErrorIs(t, err, errHeaderLen)

	_, err = parseAirportsCSV(strings.NewReader("code,lat,lon\nJFK,north,west\n"))
	require.ErrorIs(t, err, errParseCoordinate)
}

func TestLoadAirportsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airports.csv")
	require.NoError(t, os.WriteFile(path, []byte("code,lat,lon\nJFK,40.6413,-73.7781\n"), 0o600))

	airports, err := LoadAirportsCSV(path)
	require.NoError(t, err)
	assert.Contains(t, airports, AirportCode("JFK"))

	_, err = LoadAirportsCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

type failingCloser struct {
	io.Reader
}

var errDiskGone = errors.New("disk gone")

func (failingCloser) Close() error { return errDiskGone }

func TestReadAirportsCSVReportsCloseError(t *testing.T) {
	rc := failingCloser{Reader: strings.NewReader("code,lat,lon\nJFK,40.6413,-73.7781\n")}

	airports, err := readAirportsCSV(rc, "airports.csv")
	require.ErrorIs(t, err, errDiskGone)
	assert.Nil(t, airports)

	airports, err = readAirportsCSV(io.NopCloser(strings.NewReader("code,lat,lon\nJFK,40.6413,-73.7781\n")), "airports.csv")
	require.NoError(t, err)
	assert.Len(t, airports, 1)
}
