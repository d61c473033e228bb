package feature

type Kind int

const (
	KindLinear Kind = iota
	KindQuadratic
	KindProduct
	KindThreshold
	KindCategorical
	KindForwardHinge
	KindReverseHinge
)

func (k Kind) String() string {
	switch k {
	case KindLinear:
		return "linear"
	case KindQuadratic:
		return "quadratic"
	case KindProduct:
		return "product"
	case KindThreshold:
		return "threshold"
	case KindCategorical:
		return "categorical"
	case KindForwardHinge:
		return "forward_hinge"
	case KindReverseHinge:
		return "reverse_hinge"
	}
	return "unknown"
}

// Feature identifies one feature term of a fitted model: which underlying
// variable(s) it derives from and what transform produced it. String returns
// the canonical expression as written in a model description with comparison
// operators in their non-strict form.
type Feature interface {
	String() string
	Kind() Kind
	Vars() []string
	Decode() map[string]string
}
