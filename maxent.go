// Package maxent reconstructs the predictions of a fitted maximum-entropy
// species distribution model. It evaluates the feature terms of a parsed
// model description against tables of predictor values, reproducing the raw,
// logistic and cloglog output surfaces of the fitting software without
// requiring it.
package maxent

import (
	"errors"
	"fmt"

	"github.com/aouyang1/go-maxent/feature"
	"github.com/aouyang1/go-maxent/lambdas"
	"github.com/aouyang1/go-maxent/predictors"
)

var (
	ErrNoModel         = errors.New("no model or uninitialized")
	ErrUnknownVariable = errors.New("predictor variable not in table")
)

// varDomain is the clamp range a variable's linear term recorded over the
// training samples.
type varDomain struct {
	min float64
	max float64
}

// Projector applies a fitted model to predictor tables. A Projector is
// read-only after New and safe for concurrent use.
type Projector struct {
	opt   *Options
	model *lambdas.Model

	// terms holds the nonzero-coefficient terms in model order. Zero
	// coefficients cannot move the linear predictor so they are dropped up
	// front.
	terms []lambdas.Term

	// domain maps a variable to the range of its linear term, which is the
	// clamp range applied to raw values of continuous variables.
	domain map[string]varDomain

	// requiredVars are the variables referenced by any term of the model,
	// evalVars only those referenced by the retained terms. A table must
	// carry all of requiredVars even when some only back zero-coefficient
	// terms.
	requiredVars []string
	evalVars     []string
}

// New creates a Projector for the given parsed model. If no options are
// provided a default is used.
func New(model *lambdas.Model, opt *Options) (*Projector, error) {
	if model == nil {
		return nil, ErrNoModel
	}
	if opt == nil {
		opt = NewDefaultOptions()
	}
	if opt.Workers <= 0 {
		opt.Workers = NewDefaultOptions().Workers
	}
	if opt.BatchSize <= 0 {
		opt.BatchSize = DefaultBatchSize
	}

	p := &Projector{
		opt:          opt,
		model:        model,
		domain:       make(map[string]varDomain),
		requiredVars: model.Variables(),
	}

	for _, term := range model.Terms {
		if term.Feature.Kind() == feature.KindLinear {
			name := term.Feature.Vars()[0]
			if _, ok := p.domain[name]; !ok {
				p.domain[name] = varDomain{min: term.Min, max: term.Max}
			}
		}
	}

	seen := make(map[string]bool)
	for _, term := range model.Terms {
		if term.Lambda == 0 {
			continue
		}
		p.terms = append(p.terms, term)
		for _, v := range term.Feature.Vars() {
			if !seen[v] {
				seen[v] = true
				p.evalVars = append(p.evalVars, v)
			}
		}
	}
	return p, nil
}

// Model returns the parsed model this projector evaluates.
func (p *Projector) Model() *lambdas.Model {
	if p == nil {
		return nil
	}
	return p.model
}

// Variables returns the predictor variables a table must carry for Project
// to succeed.
func (p *Projector) Variables() []string {
	if p == nil {
		return nil
	}
	vars := make([]string, len(p.requiredVars))
	copy(vars, p.requiredVars)
	return vars
}

func (p *Projector) validateTable(table *predictors.Table) error {
	for _, v := range p.requiredVars {
		if _, ok := table.Column(v); !ok {
			return fmt.Errorf("variable %q, %w", v, ErrUnknownVariable)
		}
	}
	return nil
}
