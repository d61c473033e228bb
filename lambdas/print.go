package lambdas

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// TablePrint writes a human readable summary of the model: the normalization
// constants followed by one row per feature term. Zero coefficients are
// elided to make the active terms stand out.
func (m *Model) TablePrint(w io.Writer, prefix, indent string) error {
	if _, err := fmt.Fprintf(w, "%s%sModel:\n", prefix, indentExpand(indent, 0)); err != nil {
		return err
	}

	constants := []struct {
		label string
		value float64
	}{
		{"Linear Predictor Normalizer", m.LinearPredictorNormalizer},
		{"Density Normalizer", m.DensityNormalizer},
		{"Background Points", m.NumBackgroundPoints},
		{"Entropy", m.Entropy},
	}
	for _, c := range constants {
		if _, err := fmt.Fprintf(w, "%s%s%s: %s\n",
			prefix, indentExpand(indent, 1), c.label, formatFloat(c.value)); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "%s%sTerms:\n", prefix, indentExpand(indent, 0)); err != nil {
		return err
	}
	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintf(tbl, "%s%sKind\tFeature\tLambda\tMin\tMax\t\n", prefix, indentExpand(indent, 1)); err != nil {
		return err
	}
	for _, term := range m.Terms {
		lambda := fmt.Sprintf("%.3f", term.Lambda)
		if term.Lambda == 0 {
			lambda = "..."
		}
		if _, err := fmt.Fprintf(tbl, "%s%s%s\t%s\t%s\t%s\t%s\t\n",
			prefix, indentExpand(indent, 1),
			term.Feature.Kind(), term.Feature, lambda,
			formatFloat(term.Min), formatFloat(term.Max)); err != nil {
			return err
		}
	}
	return tbl.Flush()
}

func indentExpand(indent string, growth int) string {
	out := make([]byte, 0, len(indent)*growth)
	for i := 0; i < growth; i++ {
		out = append(out, indent...)
	}
	return string(out)
}
