package predictors

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

var ErrInvalidCell = errors.New("sample cell is not numeric")

// CSVOptions configure how a samples table is read from CSV.
type CSVOptions struct {
	// NoData is the cell token mapped to NaN.
	NoData string
	// Categorical lists the columns holding category codes.
	Categorical []string
	// Drop lists columns to ignore, e.g. the species label and coordinate
	// columns of a samples-with-data file.
	Drop []string
}

func NewDefaultCSVOptions() *CSVOptions {
	return &CSVOptions{NoData: "-9999"}
}

// ReadCSV parses a header line plus numeric rows into a table, one column per
// header name. Cells equal to the no-data token become NaN, any other
// non-numeric cell is an error.
func ReadCSV(r io.Reader, opts *CSVOptions) (*Table, error) {
	if opts == nil {
		opts = NewDefaultCSVOptions()
	}

	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("unable to read samples header, %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	drop := make(map[string]bool, len(opts.Drop))
	for _, name := range opts.Drop {
		drop[name] = true
	}

	cols := make([][]float64, len(header))
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unable to read samples row, %w", err)
		}
		line++
		for i, cell := range record {
			if drop[header[i]] {
				continue
			}
			cell = strings.TrimSpace(cell)
			if cell == opts.NoData {
				cols[i] = append(cols[i], math.NaN())
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: column %q cell %q, %w", line, header[i], cell, ErrInvalidCell)
			}
			cols[i] = append(cols[i], v)
		}
	}

	categorical := make(map[string]bool, len(opts.Categorical))
	for _, name := range opts.Categorical {
		categorical[name] = true
	}

	table := New()
	for i, name := range header {
		if drop[name] {
			continue
		}
		if categorical[name] {
			err = table.AddCategoricalColumn(name, cols[i])
		} else {
			err = table.AddColumn(name, cols[i])
		}
		if err != nil {
			return nil, err
		}
	}
	return table, nil
}

// ReadCSVFile reads the samples table stored at path. Files with a .gz suffix
// are decompressed transparently.
func ReadCSVFile(path string, opts *CSVOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open samples file, %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("unable to decompress samples file, %w", err)
		}
		defer gz.Close()
		r = gz
	}
	return ReadCSV(r, opts)
}
