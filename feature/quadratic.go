package feature

import (
	"encoding/json"
	"fmt"
)

type Quadratic struct {
	Name string `json:"name"`
}

func NewQuadratic(name string) *Quadratic {
	return &Quadratic{name}
}

// String returns the expression of the quadratic feature, the variable name
// with the squared exponent marker
func (q Quadratic) String() string {
	return fmt.Sprintf("%s^2", q.Name)
}

// Kind returns the kind of this feature
func (q Quadratic) Kind() Kind {
	return KindQuadratic
}

// Vars returns the underlying predictor variable name
func (q Quadratic) Vars() []string {
	return []string{q.Name}
}

// Decode converts the feature into a map of label values
func (q Quadratic) Decode() map[string]string {
	res := make(map[string]string)
	res["name"] = q.Name
	return res
}

// UnmarshalJSON is the custom unmarshalling to convert a map[string]string
// to a quadratic feature
func (q *Quadratic) UnmarshalJSON(data []byte) error {
	var labelStr struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &labelStr); err != nil {
		return err
	}
	q.Name = labelStr.Name
	return nil
}
