package feature

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Threshold is the step feature that is 1 when the variable reaches the cut
// point and 0 below it.
type Threshold struct {
	Name string  `json:"name"`
	Cut  float64 `json:"cut"`
}

func NewThreshold(name string, cut float64) *Threshold {
	return &Threshold{name, cut}
}

// String returns the expression of the threshold feature in the normalized
// form with the cut point ahead of the variable name
func (t Threshold) String() string {
	return fmt.Sprintf("(%s<=%s)", formatValue(t.Cut), t.Name)
}

// Kind returns the kind of this feature
func (t Threshold) Kind() Kind {
	return KindThreshold
}

// Vars returns the underlying predictor variable name
func (t Threshold) Vars() []string {
	return []string{t.Name}
}

// Decode converts the feature into a map of label values
func (t Threshold) Decode() map[string]string {
	res := make(map[string]string)
	res["name"] = t.Name
	res["cut"] = formatValue(t.Cut)
	return res
}

// UnmarshalJSON is the custom unmarshalling to convert a map[string]string
// to a threshold feature
func (t *Threshold) UnmarshalJSON(data []byte) error {
	var labelStr struct {
		Name string `json:"name"`
		Cut  string `json:"cut"`
	}
	if err := json.Unmarshal(data, &labelStr); err != nil {
		return err
	}
	cut, err := strconv.ParseFloat(labelStr.Cut, 64)
	if err != nil {
		return err
	}
	t.Name = labelStr.Name
	t.Cut = cut
	return nil
}
