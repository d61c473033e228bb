package feature

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Categorical is the indicator feature that is 1 when the variable equals the
// category level and 0 otherwise. The level is compared against the raw,
// unclamped predictor value.
type Categorical struct {
	Name  string  `json:"name"`
	Level float64 `json:"level"`
}

func NewCategorical(name string, level float64) *Categorical {
	return &Categorical{name, level}
}

// String returns the expression of the categorical feature in the normalized
// form with the variable name ahead of the category level
func (c Categorical) String() string {
	return fmt.Sprintf("(%s==%s)", c.Name, formatValue(c.Level))
}

// Kind returns the kind of this feature
func (c Categorical) Kind() Kind {
	return KindCategorical
}

// Vars returns the underlying predictor variable name
func (c Categorical) Vars() []string {
	return []string{c.Name}
}

// Decode converts the feature into a map of label values
func (c Categorical) Decode() map[string]string {
	res := make(map[string]string)
	res["name"] = c.Name
	res["level"] = formatValue(c.Level)
	return res
}

// UnmarshalJSON is the custom unmarshalling to convert a map[string]string
// to a categorical feature
func (c *Categorical) UnmarshalJSON(data []byte) error {
	var labelStr struct {
		Name  string `json:"name"`
		Level string `json:"level"`
	}
	if err := json.Unmarshal(data, &labelStr); err != nil {
		return err
	}
	level, err := strconv.ParseFloat(labelStr.Level, 64)
	if err != nil {
		return err
	}
	c.Name = labelStr.Name
	c.Level = level
	return nil
}
