package feature

import "encoding/json"

type Linear struct {
	Name string `json:"name"`
}

func NewLinear(name string) *Linear {
	return &Linear{name}
}

// String returns the expression of the linear feature, which is the bare
// variable name
func (l Linear) String() string {
	return l.Name
}

// Kind returns the kind of this feature
func (l Linear) Kind() Kind {
	return KindLinear
}

// Vars returns the underlying predictor variable name
func (l Linear) Vars() []string {
	return []string{l.Name}
}

// Decode converts the feature into a map of label values
func (l Linear) Decode() map[string]string {
	res := make(map[string]string)
	res["name"] = l.Name
	return res
}

// UnmarshalJSON is the custom unmarshalling to convert a map[string]string
// to a linear feature
func (l *Linear) UnmarshalJSON(data []byte) error {
	var labelStr struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &labelStr); err != nil {
		return err
	}
	l.Name = labelStr.Name
	return nil
}
