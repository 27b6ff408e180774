package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zstd"
)

var errNoSamples = errors.New("periodinfo: no samples in input")

// openInput opens path ("-" for stdin) and wraps it in a decompressor chosen
// by extension: .gz, .zst and .sz are understood. Closing the result never
// closes stdin.
func openInput(path string) (io.ReadCloser, error) {
	var f io.ReadCloser = io.NopCloser(os.Stdin)
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		f = file
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("periodinfo: gzip: %w", err)
		}
		return &stackedCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil
	case ".zst", ".zstd":
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("periodinfo: zstd: %w", err)
		}
		return &stackedCloser{Reader: dec, closers: []io.Closer{dec.IOReadCloser(), f}}, nil
	case ".sz":
		return &stackedCloser{Reader: snappy.NewReader(f), closers: []io.Closer{f}}, nil
	}

	return f, nil
}

// stackedCloser closes a decompressor before its underlying file.
type stackedCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedCloser) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// readSamples parses CSV with one column (y) or two columns (x, y). A first
// row that does not parse as numbers is treated as a header. Without an x
// column the returned x is nil.
func readSamples(r io.Reader) (x, y []float64, err error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("periodinfo: read csv: %w", err)
	}

	if len(records) > 0 {
		if _, err := parseRow(records[0]); err != nil {
			records = records[1:]
		}
	}

	if len(records) == 0 {
		return nil, nil, errNoSamples
	}

	cols := len(records[0])
	if cols != 1 && cols != 2 {
		return nil, nil, fmt.Errorf("periodinfo: want 1 or 2 columns, got %d", cols)
	}

	for line, rec := range records {
		vals, err := parseRow(rec)
		if err != nil {
			return nil, nil, fmt.Errorf("periodinfo: row %d: %w", line+1, err)
		}
		if len(vals) != cols {
			return nil, nil, fmt.Errorf("periodinfo: row %d has %d columns, want %d", line+1, len(vals), cols)
		}

		switch cols {
		case 1:
			y = append(y, vals[0])
		case 2:
			x = append(x, vals[0])
			y = append(y, vals[1])
		}
	}

	return x, y, nil
}

func parseRow(rec []string) ([]float64, error) {
	out := make([]float64, len(rec))
	for i, field := range rec {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// parseTolerances parses a comma-separated list of non-negative numbers.
func parseTolerances(s string) ([]float64, error) {
	var out []float64
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil, fmt.Errorf("periodinfo: tolerance %q: %w", field, err)
		}
		if v < 0 {
			return nil, fmt.Errorf("periodinfo: tolerance %g must be non-negative", v)
		}
		out = append(out, v)
	}

	if len(out) == 0 {
		return nil, errors.New("periodinfo: no tolerance given")
	}

	return out, nil
}
