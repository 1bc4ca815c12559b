package internal

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLog = "date,from,to,distance_miles,extra\n" +
	"2021-05-01, Battle Creek, Michigen(BTL), Palm Beach (PBI), 1050, \n"

func TestOpenFlightLogPlain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flights.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleLog), 0o600))

	rc, err := OpenFlightLog(path)
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, sampleLog, string(got))
}

func TestOpenFlightLogZstd(t *testing.T) {
	encoder, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	compressed := encoder.EncodeAll([]byte(sampleLog), nil)
	require.NoError(t, encoder.Close())

	path := filepath.Join(t.TempDir(), "flights.csv.zst")
	require.NoError(t, os.WriteFile(path, compressed, 0o600))

	rc, err := OpenFlightLog(path)
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, sampleLog, string(got))
}

func TestOpenFlightLogMissing(t *testing.T) {
	_, err := OpenFlightLog(filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
