package feature

import (
	"encoding/json"
	"fmt"
)

// Product is the interaction feature between two predictor variables.
type Product struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

func NewProduct(left, right string) *Product {
	return &Product{left, right}
}

// String returns the expression of the product feature, the two variable
// names joined by the product marker
func (p Product) String() string {
	return fmt.Sprintf("%s*%s", p.Left, p.Right)
}

// Kind returns the kind of this feature
func (p Product) Kind() Kind {
	return KindProduct
}

// Vars returns both underlying predictor variable names
func (p Product) Vars() []string {
	return []string{p.Left, p.Right}
}

// Decode converts the feature into a map of label values
func (p Product) Decode() map[string]string {
	res := make(map[string]string)
	res["left"] = p.Left
	res["right"] = p.Right
	return res
}

// UnmarshalJSON is the custom unmarshalling to convert a map[string]string
// to a product feature
func (p *Product) UnmarshalJSON(data []byte) error {
	var labelStr struct {
		Left  string `json:"left"`
		Right string `json:"right"`
	}
	if err := json.Unmarshal(data, &labelStr); err != nil {
		return err
	}
	p.Left = labelStr.Left
	p.Right = labelStr.Right
	return nil
}
