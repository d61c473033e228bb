// Package lambdas parses the text description of a fitted maximum-entropy
// species distribution model, reconstructing the feature terms and
// normalization constants needed to reproduce the model's predictions without
// the fitting software.
package lambdas

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/aouyang1/go-maxent/feature"
)

var ErrInvalidFormat = errors.New("model description does not match the lambdas format")

// Metadata names required in every model description.
const (
	MetaLinearPredictorNormalizer = "linearPredictorNormalizer"
	MetaDensityNormalizer         = "densityNormalizer"
	MetaNumBackgroundPoints       = "numBackgroundPoints"
	MetaEntropy                   = "entropy"
)

var requiredMetadata = []string{
	MetaLinearPredictorNormalizer,
	MetaDensityNormalizer,
	MetaNumBackgroundPoints,
	MetaEntropy,
}

// Term is one fitted feature term: the feature identity, its coefficient, and
// the range the feature value took over the training samples. The range
// defines the clamping and normalization domain at prediction time.
type Term struct {
	Feature feature.Feature
	Lambda  float64
	Min     float64
	Max     float64
}

// Model is a parsed model description: the feature terms in file order plus
// the four constants of the raw-to-suitability transform. A Model is not
// mutated after parsing and is safe to share across concurrent projections.
type Model struct {
	Terms []Term `json:"terms"`

	LinearPredictorNormalizer float64 `json:"linear_predictor_normalizer"`
	DensityNormalizer         float64 `json:"density_normalizer"`
	NumBackgroundPoints       float64 `json:"num_background_points"`
	Entropy                   float64 `json:"entropy"`
}

// Provider exposes the lambdas text embedded in a larger fitted-model object
// produced by external fitting machinery.
type Provider interface {
	LambdasText() (string, error)
}

// Parse reads a model description from an in-memory text body. Lines are
// comma-separated records classified by field count: two fields are metadata,
// four fields are feature terms, anything else is auxiliary and skipped.
// Parse fails if a feature line carries a non-numeric value or if any of the
// four required metadata constants is missing after the whole body has been
// scanned.
func Parse(text string) (*Model, error) {
	m := &Model{}
	seen := make(map[string]bool, len(requiredMetadata))

	sc := bufio.NewScanner(strings.NewReader(text))
	var lineNum int
	for sc.Scan() {
		lineNum++
		fields := strings.Split(sc.Text(), ",")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		// lines with any other field count carry auxiliary information and
		// are skipped
		switch len(fields) {
		case 2:
			if err := m.setMetadata(fields[0], fields[1], lineNum, seen); err != nil {
				return nil, err
			}
		case 4:
			term, err := parseTerm(fields, lineNum)
			if err != nil {
				return nil, err
			}
			m.Terms = append(m.Terms, term)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("unable to scan model description, %w", err)
	}

	for _, name := range requiredMetadata {
		if !seen[name] {
			return nil, fmt.Errorf("missing %q metadata, %w", name, ErrInvalidFormat)
		}
	}
	return m, nil
}

// ParseReader reads the full source and parses it as a model description.
func ParseReader(r io.Reader) (*Model, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read model description, %w", err)
	}
	return Parse(string(text))
}

// ParseFile parses the model description stored at path.
func ParseFile(path string) (*Model, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read model description file, %w", err)
	}
	return Parse(string(text))
}

// ParseProvider parses the model description embedded in a fitted-model
// object.
func ParseProvider(p Provider) (*Model, error) {
	text, err := p.LambdasText()
	if err != nil {
		return nil, fmt.Errorf("unable to get lambdas text from model object, %w", err)
	}
	return Parse(text)
}

// Variables returns the names of the underlying predictor variables
// referenced by any term, in first-seen order.
func (m *Model) Variables() []string {
	seen := make(map[string]bool)
	var vars []string
	for _, term := range m.Terms {
		for _, v := range term.Feature.Vars() {
			if seen[v] {
				continue
			}
			seen[v] = true
			vars = append(vars, v)
		}
	}
	return vars
}

func (m *Model) setMetadata(name, value string, lineNum int, seen map[string]bool) error {
	var dst *float64
	switch name {
	case MetaLinearPredictorNormalizer:
		dst = &m.LinearPredictorNormalizer
	case MetaDensityNormalizer:
		dst = &m.DensityNormalizer
	case MetaNumBackgroundPoints:
		dst = &m.NumBackgroundPoints
	case MetaEntropy:
		dst = &m.Entropy
	default:
		// unrecognized metadata is tolerated for forward compatibility
		return nil
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fmt.Errorf("line %d: %s value %q is not a number, %w", lineNum, name, value, ErrInvalidFormat)
	}
	*dst = v
	seen[name] = true
	return nil
}

func parseTerm(fields []string, lineNum int) (Term, error) {
	feat, err := feature.Parse(fields[0])
	if err != nil {
		return Term{}, fmt.Errorf("line %d: %v, %w", lineNum, err, ErrInvalidFormat)
	}
	var vals [3]float64
	for i, name := range [3]string{"lambda", "min", "max"} {
		v, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return Term{}, fmt.Errorf("line %d: %s value %q is not a number, %w", lineNum, name, fields[i+1], ErrInvalidFormat)
		}
		vals[i] = v
	}
	return Term{Feature: feat, Lambda: vals[0], Min: vals[1], Max: vals[2]}, nil
}
