package maxent

import (
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/aouyang1/go-maxent/feature"
	"github.com/aouyang1/go-maxent/lambdas"
	"github.com/aouyang1/go-maxent/predictors"
)

// Project evaluates the model at every location of the table and returns the
// raw, logistic and cloglog output surfaces in table order. The table must
// carry a column for every variable the model references, including variables
// only used by zero-coefficient terms. A NaN predictor cell yields NaN
// outputs at that location without disturbing its neighbors.
func (p *Projector) Project(table *predictors.Table) (*Results, error) {
	if p == nil || p.model == nil {
		return nil, ErrNoModel
	}
	if err := p.validateTable(table); err != nil {
		return nil, err
	}

	n := table.Len()
	res := &Results{
		Raw:      make([]float64, n),
		Logistic: make([]float64, n),
		Cloglog:  make([]float64, n),
	}
	if n == 0 {
		return res, nil
	}

	var eg errgroup.Group
	eg.SetLimit(p.opt.Workers)
	for start := 0; start < n; start += p.opt.BatchSize {
		end := start + p.opt.BatchSize
		if end > n {
			end = n
		}
		eg.Go(func() error {
			p.projectRange(table, start, end, res)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

// projectRange evaluates locations [start, end) into res. Batches write to
// disjoint ranges of the result slices and each owns its scratch buffers, so
// they can run concurrently.
func (p *Projector) projectRange(table *predictors.Table, start, end int, res *Results) {
	n := end - start

	// categorical features compare against the raw value, everything else
	// reads the variable clamped to its linear-term training range
	rawCols := make(map[string][]float64, len(p.evalVars))
	clampedCols := make(map[string][]float64, len(p.evalVars))
	for _, v := range p.evalVars {
		col, _ := table.Column(v)
		window := col[start:end]
		rawCols[v] = window

		dom, ok := p.domain[v]
		if !ok || table.Categorical(v) {
			clampedCols[v] = window
			continue
		}
		cc := make([]float64, n)
		for i, val := range window {
			cc[i] = clampValue(val, dom.min, dom.max)
		}
		clampedCols[v] = cc
	}

	eta := make([]float64, n)
	buf := make([]float64, n)
	for _, term := range p.terms {
		switch f := term.Feature.(type) {
		case *feature.Linear:
			x := clampedCols[f.Name]
			for i, v := range x {
				buf[i] = clampValue(v, term.Min, term.Max)
			}
		case *feature.Quadratic:
			x := clampedCols[f.Name]
			for i, v := range x {
				buf[i] = clampValue(v*v, term.Min, term.Max)
			}
		case *feature.Product:
			left := clampedCols[f.Left]
			right := clampedCols[f.Right]
			for i := range left {
				buf[i] = clampValue(left[i]*right[i], term.Min, term.Max)
			}
		case *feature.Threshold:
			x := clampedCols[f.Name]
			for i, v := range x {
				buf[i] = clampValue(stepAt(v, f.Cut), term.Min, term.Max)
			}
		case *feature.Categorical:
			x := rawCols[f.Name]
			for i, v := range x {
				buf[i] = clampValue(matchesLevel(v, f.Level), term.Min, term.Max)
			}
		case *feature.ForwardHinge:
			x := clampedCols[f.Name]
			for i, v := range x {
				buf[i] = clampValue(v, term.Min, term.Max)
			}
		case *feature.ReverseHinge:
			x := clampedCols[f.Name]
			for i, v := range x {
				buf[i] = clampValue(v, term.Min, term.Max)
			}
		default:
			continue
		}

		normalizeTerm(buf, term)
		floats.AddScaled(eta, term.Lambda, buf)
	}

	expEntropy := math.Exp(p.model.Entropy)
	for i, e := range eta {
		raw := math.Exp(e-p.model.LinearPredictorNormalizer) / p.model.DensityNormalizer
		res.Raw[start+i] = raw
		res.Logistic[start+i] = 1 - 1/(expEntropy*raw+1)
		res.Cloglog[start+i] = 1 - math.Exp(-expEntropy*raw)
	}
}

// clampValue restricts v to [lo, hi]. NaN passes through.
func clampValue(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// stepAt is 1 once v reaches the cut point. NaN stays NaN so a missing cell
// propagates instead of reading as below the cut.
func stepAt(v, cut float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	if v >= cut {
		return 1
	}
	return 0
}

// matchesLevel is 1 when the raw value equals the category level. NaN stays
// NaN.
func matchesLevel(v, level float64) float64 {
	if math.IsNaN(v) {
		return v
	}
	if v == level {
		return 1
	}
	return 0
}

// normalizeTerm rescales derived feature values into the unit interval using
// the term's training range. Reverse hinges fall from 1 to 0 across the
// range, everything else rises. A degenerate range normalizes to 0.
func normalizeTerm(vals []float64, term lambdas.Term) {
	den := term.Max - term.Min
	reverse := term.Feature.Kind() == feature.KindReverseHinge
	for i, v := range vals {
		switch {
		case math.IsNaN(v):
		case den == 0:
			vals[i] = 0
		case reverse:
			vals[i] = (term.Max - v) / den
		default:
			vals[i] = (v - term.Min) / den
		}
	}
}
