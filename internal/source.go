package internal

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

const zstdSuffix = ".zst"

// flightLogReader is the opened flight log; Close releases the decoder and the file.
type flightLogReader struct {
	io.Reader
	file    *os.File
	decoder *zstd.Decoder
}

func (r *flightLogReader) Close() error {
	if r.decoder != nil {
		r.decoder.Close()
	}

	return r.file.Close()
}

// OpenFlightLog opens a flight log. Files ending in .zst are decompressed on the fly.
func OpenFlightLog(filePath string) (io.ReadCloser, error) {
	file, fileErr := os.Open(filePath)
	if fileErr != nil {
		return nil, fmt.Errorf("OpenFlightLog: failed to open file: %w", fileErr)
	}

	if !strings.HasSuffix(strings.ToLower(filePath), zstdSuffix) {
		return &flightLogReader{Reader: file, file: file, decoder: nil}, nil
	}

	decoder, decErr := zstd.NewReader(file)
	if decErr != nil {
		_ = file.Close()
		return nil, fmt.Errorf("OpenFlightLog: failed to create zstd reader for %s: %w", filePath, decErr)
	}

	return &flightLogReader{Reader: decoder, file: file, decoder: decoder}, nil
}
