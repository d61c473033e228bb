// Package limiting identifies the variable that most constrains a model's
// predicted suitability at each location. One variable at a time is replaced
// with a reference value drawn from presence samples and the projection is
// re-run; the variable whose substitution reduces logistic suitability the
// most is the limiting factor for that location.
package limiting

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	maxent "github.com/aouyang1/go-maxent"
	"github.com/aouyang1/go-maxent/predictors"
)

var (
	ErrNoProjector = errors.New("no projector or uninitialized")
	ErrNoPresence  = errors.New("no presence samples")
)

// Result holds the limiting factor per projected location.
type Result struct {
	// Variables are the candidate variables in model order.
	Variables []string

	// Index is the winning variable's position in Variables, -1 where no
	// winner exists, e.g. at NaN locations.
	Index []int

	// Factor is the winning variable's name, empty where no winner exists.
	Factor []string

	// Drop is the decrease in logistic suitability caused by substituting
	// the winning variable, NaN where no winner exists. A negative drop
	// means even the most limiting substitution raised suitability.
	Drop []float64
}

// Len returns the number of locations analyzed.
func (r *Result) Len() int {
	return len(r.Index)
}

// Counts returns how many locations each variable limits.
func (r *Result) Counts() map[string]int {
	counts := make(map[string]int)
	for _, f := range r.Factor {
		if f == "" {
			continue
		}
		counts[f]++
	}
	return counts
}

// Factors computes the limiting factor at every location of env. Reference
// values come from the presence table: the mean of the presence samples for
// continuous variables, the empirical median for categorical ones. Both
// tables must carry every variable the model references.
func Factors(proj *maxent.Projector, env, presence *predictors.Table) (*Result, error) {
	if proj == nil || proj.Model() == nil {
		return nil, ErrNoProjector
	}

	vars := proj.Variables()
	refs := make([]float64, len(vars))
	for vi, v := range vars {
		col, ok := presence.Column(v)
		if !ok {
			return nil, fmt.Errorf("presence variable %q, %w", v, maxent.ErrUnknownVariable)
		}
		ref, err := referenceValue(col, presence.Categorical(v))
		if err != nil {
			return nil, fmt.Errorf("variable %q, %w", v, err)
		}
		refs[vi] = ref
	}

	base, err := proj.Project(env)
	if err != nil {
		return nil, err
	}

	n := env.Len()
	res := &Result{
		Variables: vars,
		Index:     make([]int, n),
		Factor:    make([]string, n),
		Drop:      make([]float64, n),
	}
	for i := 0; i < n; i++ {
		res.Index[i] = -1
		res.Drop[i] = math.NaN()
	}

	for vi, v := range vars {
		sub, err := env.WithConstant(v, refs[vi])
		if err != nil {
			return nil, err
		}
		subRes, err := proj.Project(sub)
		if err != nil {
			return nil, err
		}

		for i := 0; i < n; i++ {
			drop := base.Logistic[i] - subRes.Logistic[i]
			if math.IsNaN(drop) {
				continue
			}
			// ties keep the earlier variable
			if res.Index[i] < 0 || drop > res.Drop[i] {
				res.Index[i] = vi
				res.Factor[i] = v
				res.Drop[i] = drop
			}
		}
	}
	return res, nil
}

// referenceValue reduces presence samples of one variable to the value
// substituted during the analysis. NaN samples are ignored.
func referenceValue(vals []float64, categorical bool) (float64, error) {
	clean := make([]float64, 0, len(vals))
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		clean = append(clean, v)
	}
	if len(clean) == 0 {
		return 0, ErrNoPresence
	}

	if categorical {
		sort.Float64s(clean)
		return stat.Quantile(0.5, stat.Empirical, clean, nil), nil
	}
	return stat.Mean(clean, nil), nil
}
