package maxent

import (
	"fmt"
	"math"

	"github.com/aouyang1/go-maxent/lambdas"
	"github.com/aouyang1/go-maxent/predictors"
)

func ExampleProjector_Project() {
	text := `temp, 2.0, 0.0, 10.0
linearPredictorNormalizer, 0.0
densityNormalizer, 1.0
numBackgroundPoints, 100
entropy, 0.0
`
	model, err := lambdas.Parse(text)
	if err != nil {
		panic(err)
	}
	proj, err := New(model, nil)
	if err != nil {
		panic(err)
	}

	tbl := predictors.New()
	if err := tbl.AddColumn("temp", []float64{5}); err != nil {
		panic(err)
	}

	res, err := proj.Project(tbl)
	if err != nil {
		panic(err)
	}
	fmt.Printf("raw: %.5f\n", res.Raw[0])
	fmt.Printf("logistic: %.5f\n", res.Logistic[0])
	fmt.Printf("cloglog: %.5f\n", res.Cloglog[0])
	// Output:
	// raw: 2.71828
	// logistic: 0.73106
	// cloglog: 0.93401
}

func ExampleResults_PlotGrid() {
	text := `temp, 1.5, 0.0, 30.0
'temp, 1.0, 10.0, 25.0
linearPredictorNormalizer, 1.0
densityNormalizer, 20.0
numBackgroundPoints, 100
entropy, 3.0
`
	model, err := lambdas.Parse(text)
	if err != nil {
		panic(err)
	}
	proj, err := New(model, nil)
	if err != nil {
		panic(err)
	}

	// latitudinal temperature gradient over a 20x10 grid
	width, height := 20, 10
	temp := make([]float64, 0, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			temp = append(temp, 5+25*math.Sin(float64(y)/float64(height)*math.Pi)*float64(x+1)/float64(width))
		}
	}
	tbl := predictors.New()
	if err := tbl.AddColumn("temp", temp); err != nil {
		panic(err)
	}

	res, err := proj.Project(tbl)
	if err != nil {
		panic(err)
	}
	if err := res.PlotGrid("examples/projection.html", width, height); err != nil {
		panic(err)
	}

	// Output:
}
