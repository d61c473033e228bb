package lambdas

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/aouyang1/go-maxent/feature"
)

var ErrUnknownFeatureKind = errors.New("unknown feature kind")

// WriteTo serializes the model back to the lambdas wire format: one line per
// feature term followed by the metadata constants. Comparison operators are
// written in their normalized non-strict forms, which re-parse unchanged, so
// serializing and re-parsing yields an equal model.
func (m *Model) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, term := range m.Terms {
		n, err := fmt.Fprintf(w, "%s, %s, %s, %s\n",
			term.Feature, formatFloat(term.Lambda), formatFloat(term.Min), formatFloat(term.Max))
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	meta := []struct {
		name  string
		value float64
	}{
		{MetaLinearPredictorNormalizer, m.LinearPredictorNormalizer},
		{MetaDensityNormalizer, m.DensityNormalizer},
		{MetaNumBackgroundPoints, m.NumBackgroundPoints},
		{MetaEntropy, m.Entropy},
	}
	for _, md := range meta {
		n, err := fmt.Fprintf(w, "%s, %s\n", md.name, formatFloat(md.value))
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// String returns the model serialized to the lambdas wire format.
func (m *Model) String() string {
	var b strings.Builder
	m.WriteTo(&b)
	return b.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// termJSON is the serializable form of a Term with the feature identity
// flattened into a label map and a kind tag.
type termJSON struct {
	Labels map[string]string `json:"labels"`
	Kind   feature.Kind      `json:"kind"`
	Lambda float64           `json:"lambda"`
	Min    float64           `json:"min"`
	Max    float64           `json:"max"`
}

func (t Term) MarshalJSON() ([]byte, error) {
	return json.Marshal(termJSON{
		Labels: t.Feature.Decode(),
		Kind:   t.Feature.Kind(),
		Lambda: t.Lambda,
		Min:    t.Min,
		Max:    t.Max,
	})
}

func (t *Term) UnmarshalJSON(data []byte) error {
	var tj termJSON
	if err := json.Unmarshal(data, &tj); err != nil {
		return err
	}
	feat, err := featureFromLabels(tj.Kind, tj.Labels)
	if err != nil {
		return err
	}
	t.Feature = feat
	t.Lambda = tj.Lambda
	t.Min = tj.Min
	t.Max = tj.Max
	return nil
}

// featureFromLabels transforms a kind tag and label map back into a concrete
// feature type
func featureFromLabels(kind feature.Kind, labels map[string]string) (feature.Feature, error) {
	bytes, err := json.Marshal(labels)
	if err != nil {
		return nil, err
	}

	var feat feature.Feature
	switch kind {
	case feature.KindLinear:
		feat = new(feature.Linear)
	case feature.KindQuadratic:
		feat = new(feature.Quadratic)
	case feature.KindProduct:
		feat = new(feature.Product)
	case feature.KindThreshold:
		feat = new(feature.Threshold)
	case feature.KindCategorical:
		feat = new(feature.Categorical)
	case feature.KindForwardHinge:
		feat = new(feature.ForwardHinge)
	case feature.KindReverseHinge:
		feat = new(feature.ReverseHinge)
	default:
		return nil, ErrUnknownFeatureKind
	}
	if err := json.Unmarshal(bytes, feat); err != nil {
		return nil, err
	}
	return feat, nil
}
