// Package ic computes information criteria for a fitted maximum entropy
// model from its raw predictions, scoring model parsimony in the same way
// the common AIC/AICc/BIC model-selection workflow does.
//
// The raw predictions over the full landscape define a relative likelihood
// surface. Standardizing them to sum to one turns each occurrence
// prediction into a probability, and the criteria follow from the summed
// log-likelihood and the number of parameters the model actually uses
// (terms with a nonzero weight).
package ic

import (
	"errors"
	"fmt"
	"math"

	"github.com/aouyang1/go-maxent/lambdas"
)

var (
	ErrNoModel       = errors.New("no model")
	ErrNoLandscape   = errors.New("no landscape predictions")
	ErrNoOccurrences = errors.New("no occurrence predictions")
	ErrBadNormalizer = errors.New("landscape predictions do not sum to a positive finite value")
	ErrBadOccurrence = errors.New("occurrence prediction is not a positive finite value")
)

type Result struct {
	N             int     `json:"n"`              // number of occurrence locations
	K             int     `json:"k"`              // number of nonzero-weight terms
	LogLikelihood float64 `json:"log_likelihood"` // summed log of standardized occurrence predictions
	AIC           float64 `json:"aic"`
	AICc          float64 `json:"aicc"` // NaN when n <= k+1
	BIC           float64 `json:"bic"`
}

// Criteria computes AIC, AICc and BIC for a model given its raw predictions.
// landscapeRaw holds the raw output over the full study area and occurrenceRaw
// the raw output at the occurrence locations, both produced by projecting the
// same model. NaN landscape cells are ignored when standardizing.
func Criteria(landscapeRaw, occurrenceRaw []float64, model *lambdas.Model) (*Result, error) {
	if model == nil {
		return nil, ErrNoModel
	}
	if len(landscapeRaw) == 0 {
		return nil, ErrNoLandscape
	}
	if len(occurrenceRaw) == 0 {
		return nil, ErrNoOccurrences
	}

	norm, err := normalizer(landscapeRaw)
	if err != nil {
		return nil, err
	}
	ll, err := logLikelihood(occurrenceRaw, norm)
	if err != nil {
		return nil, err
	}

	n := len(occurrenceRaw)
	k := NumParameters(model)

	res := &Result{
		N:             n,
		K:             k,
		LogLikelihood: ll,
		AIC:           2.0*float64(k) - 2.0*ll,
		AICc:          math.NaN(),
		BIC:           float64(k)*math.Log(float64(n)) - 2.0*ll,
	}
	if n > k+1 {
		res.AICc = res.AIC + 2.0*float64(k)*float64(k+1)/float64(n-k-1)
	}
	return res, nil
}

// NumParameters counts the terms that contribute to the model output, i.e.
// those with a nonzero weight.
func NumParameters(model *lambdas.Model) int {
	if model == nil {
		return 0
	}
	k := 0
	for _, term := range model.Terms {
		if term.Lambda != 0 {
			k++
		}
	}
	return k
}

func normalizer(landscapeRaw []float64) (float64, error) {
	sum := 0.0
	for _, v := range landscapeRaw {
		if math.IsNaN(v) {
			continue
		}
		sum += v
	}
	if sum <= 0 || math.IsInf(sum, 0) || math.IsNaN(sum) {
		return 0, ErrBadNormalizer
	}
	return sum, nil
}

func logLikelihood(occurrenceRaw []float64, norm float64) (float64, error) {
	ll := 0.0
	for i, v := range occurrenceRaw {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return 0, fmt.Errorf("occurrence %d value %v, %w", i, v, ErrBadOccurrence)
		}
		ll += math.Log(v / norm)
	}
	return ll, nil
}
