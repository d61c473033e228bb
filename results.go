package maxent

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Results holds the three output surfaces of a projection, aligned on the
// location index of the projected table.
type Results struct {
	Raw      []float64 `json:"raw"`
	Logistic []float64 `json:"logistic"`
	Cloglog  []float64 `json:"cloglog"`
}

// Len returns the number of projected locations.
func (r *Results) Len() int {
	return len(r.Raw)
}

// WriteCSV writes the surfaces as a header plus one row per location.
func (r *Results) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"raw", "logistic", "cloglog"}); err != nil {
		return fmt.Errorf("unable to write results header, %w", err)
	}
	record := make([]string, 3)
	for i := range r.Raw {
		record[0] = formatOutput(r.Raw[i])
		record[1] = formatOutput(r.Logistic[i])
		record[2] = formatOutput(r.Cloglog[i])
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("unable to write results row, %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes the surfaces to path. Files with a .gz suffix are
// compressed transparently.
func (r *Results) WriteCSVFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create results file, %w", err)
	}
	defer f.Close()

	var w io.Writer = f
	if strings.HasSuffix(path, ".gz") {
		gz := gzip.NewWriter(f)
		defer gz.Close()
		w = gz
	}
	return r.WriteCSV(w)
}

func formatOutput(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
