package feature

import (
	"encoding/json"
	"fmt"
)

// ForwardHinge is the piecewise-linear ramp feature that rises from 0 to 1
// across its training range. The hinge knots are the train minimum and
// maximum stored alongside the coefficient, not part of the expression.
type ForwardHinge struct {
	Name string `json:"name"`
}

func NewForwardHinge(name string) *ForwardHinge {
	return &ForwardHinge{name}
}

// String returns the expression of the forward hinge feature, the variable
// name with the leading apostrophe marker
func (f ForwardHinge) String() string {
	return fmt.Sprintf("'%s", f.Name)
}

// Kind returns the kind of this feature
func (f ForwardHinge) Kind() Kind {
	return KindForwardHinge
}

// Vars returns the underlying predictor variable name
func (f ForwardHinge) Vars() []string {
	return []string{f.Name}
}

// Decode converts the feature into a map of label values
func (f ForwardHinge) Decode() map[string]string {
	res := make(map[string]string)
	res["name"] = f.Name
	return res
}

// UnmarshalJSON is the custom unmarshalling to convert a map[string]string
// to a forward hinge feature
func (f *ForwardHinge) UnmarshalJSON(data []byte) error {
	var labelStr struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &labelStr); err != nil {
		return err
	}
	f.Name = labelStr.Name
	return nil
}

// ReverseHinge is the piecewise-linear ramp feature that falls from 1 to 0
// across its training range, the mirror of ForwardHinge.
type ReverseHinge struct {
	Name string `json:"name"`
}

func NewReverseHinge(name string) *ReverseHinge {
	return &ReverseHinge{name}
}

// String returns the expression of the reverse hinge feature, the variable
// name with the leading backtick marker
func (r ReverseHinge) String() string {
	return fmt.Sprintf("`%s", r.Name)
}

// Kind returns the kind of this feature
func (r ReverseHinge) Kind() Kind {
	return KindReverseHinge
}

// Vars returns the underlying predictor variable name
func (r ReverseHinge) Vars() []string {
	return []string{r.Name}
}

// Decode converts the feature into a map of label values
func (r ReverseHinge) Decode() map[string]string {
	res := make(map[string]string)
	res["name"] = r.Name
	return res
}

// UnmarshalJSON is the custom unmarshalling to convert a map[string]string
// to a reverse hinge feature
func (r *ReverseHinge) UnmarshalJSON(data []byte) error {
	var labelStr struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &labelStr); err != nil {
		return err
	}
	r.Name = labelStr.Name
	return nil
}
