package maxent

import (
	"bytes"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aouyang1/go-maxent/lambdas"
	"github.com/aouyang1/go-maxent/predictors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const linearOnlyLambdas = `temp, 2.0, 0.0, 10.0
linearPredictorNormalizer, 0.0
densityNormalizer, 1.0
numBackgroundPoints, 100
entropy, 0.0
`

func parseModel(t *testing.T, text string) *lambdas.Model {
	t.Helper()
	m, err := lambdas.Parse(text)
	require.NoError(t, err)
	return m
}

func TestProjectLinearModel(t *testing.T) {
	proj, err := New(parseModel(t, linearOnlyLambdas), nil)
	require.NoError(t, err)

	tbl := predictors.New()
	require.NoError(t, tbl.AddColumn("temp", []float64{5, 0, 10}))

	res, err := proj.Project(tbl)
	require.NoError(t, err)
	require.Equal(t, 3, res.Len())

	// temp 5 normalizes to 0.5, so the linear predictor is 1.0
	assert.InDelta(t, math.E, res.Raw[0], 1e-12)
	assert.InDelta(t, 0.7310585786300049, res.Logistic[0], 1e-12)
	assert.InDelta(t, 0.9340119641546875, res.Cloglog[0], 1e-12)

	assert.InDelta(t, 1.0, res.Raw[1], 1e-12)
	assert.InDelta(t, 0.5, res.Logistic[1], 1e-12)
	assert.InDelta(t, 1-math.Exp(-1), res.Cloglog[1], 1e-12)

	assert.InDelta(t, math.Exp(2), res.Raw[2], 1e-12)
	assert.InDelta(t, 1-1/(math.Exp(2)+1), res.Logistic[2], 1e-12)
}

func TestProjectClampsToTrainingRange(t *testing.T) {
	proj, err := New(parseModel(t, linearOnlyLambdas), nil)
	require.NoError(t, err)

	inside := predictors.New()
	require.NoError(t, inside.AddColumn("temp", []float64{0, 10}))
	outside := predictors.New()
	require.NoError(t, outside.AddColumn("temp", []float64{-25, 45}))

	resInside, err := proj.Project(inside)
	require.NoError(t, err)
	resOutside, err := proj.Project(outside)
	require.NoError(t, err)

	assert.Equal(t, resInside, resOutside)
}

func TestProjectFeatureKinds(t *testing.T) {
	metadata := strings.Join([]string{
		"linearPredictorNormalizer, 0.0",
		"densityNormalizer, 1.0",
		"numBackgroundPoints, 100",
		"entropy, 0.0",
	}, "\n")

	testData := map[string]struct {
		term        string
		vals        map[string][]float64
		categorical []string
		eta         []float64
	}{
		"quadratic": {
			term: "temp^2, 1.0, 0.0, 100.0",
			vals: map[string][]float64{"temp": {3, 0, 10}},
			eta:  []float64{0.09, 0, 1},
		},
		"product": {
			term: "temp*rain, 1.0, 0.0, 12.0",
			vals: map[string][]float64{"temp": {2, 0}, "rain": {3, 5}},
			eta:  []float64{0.5, 0},
		},
		"threshold": {
			term: "(5.0<temp), 1.0, 0.0, 1.0",
			vals: map[string][]float64{"temp": {7, 5, 3}},
			eta:  []float64{1, 1, 0},
		},
		"categorical": {
			term:        "(ecoreg=3.0), 1.0, 0.0, 1.0",
			vals:        map[string][]float64{"ecoreg": {3, 2}},
			categorical: []string{"ecoreg"},
			eta:         []float64{1, 0},
		},
		"forward hinge": {
			term: "'temp, 1.0, 2.0, 8.0",
			vals: map[string][]float64{"temp": {5, 1, 9}},
			eta:  []float64{0.5, 0, 1},
		},
		"reverse hinge": {
			term: "`temp, 1.0, 2.0, 8.0",
			vals: map[string][]float64{"temp": {5, 1, 9}},
			eta:  []float64{0.5, 1, 0},
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			proj, err := New(parseModel(t, td.term+"\n"+metadata), nil)
			require.NoError(t, err)

			isCat := make(map[string]bool)
			for _, c := range td.categorical {
				isCat[c] = true
			}
			tbl := predictors.New()
			for _, v := range proj.Variables() {
				if isCat[v] {
					require.NoError(t, tbl.AddCategoricalColumn(v, td.vals[v]))
					continue
				}
				require.NoError(t, tbl.AddColumn(v, td.vals[v]))
			}

			res, err := proj.Project(tbl)
			require.NoError(t, err)
			require.Equal(t, len(td.eta), res.Len())
			for i, eta := range td.eta {
				assert.InDelta(t, math.Exp(eta), res.Raw[i], 1e-12)
				assert.InDelta(t, 1-1/(math.Exp(eta)+1), res.Logistic[i], 1e-12)
			}
		})
	}
}

// The linear term's training range clamps the variable before any derived
// feature reads it, so a quadratic on the same variable sees the clamped
// value.
func TestProjectVariableClampFeedsDerived(t *testing.T) {
	text := `temp, 1.0, 0.0, 10.0
temp^2, 0.5, 0.0, 100.0
linearPredictorNormalizer, 0.0
densityNormalizer, 1.0
numBackgroundPoints, 100
entropy, 0.0
`
	proj, err := New(parseModel(t, text), nil)
	require.NoError(t, err)

	tbl := predictors.New()
	require.NoError(t, tbl.AddColumn("temp", []float64{-5}))

	res, err := proj.Project(tbl)
	require.NoError(t, err)

	// temp clamps to 0, so both the linear and the quadratic term vanish
	assert.InDelta(t, 1.0, res.Raw[0], 1e-12)
}

// Categorical variables are matched against the raw value even when another
// term supplies a clamp range for the same variable.
func TestProjectCategoricalUnclamped(t *testing.T) {
	text := `ecoreg, 1.0, 0.0, 5.0
(ecoreg=10.0), 1.0, 0.0, 1.0
linearPredictorNormalizer, 0.0
densityNormalizer, 1.0
numBackgroundPoints, 100
entropy, 0.0
`
	proj, err := New(parseModel(t, text), nil)
	require.NoError(t, err)

	tbl := predictors.New()
	require.NoError(t, tbl.AddCategoricalColumn("ecoreg", []float64{10}))

	res, err := proj.Project(tbl)
	require.NoError(t, err)

	// the linear term saturates at 1 and the level indicator still fires
	assert.InDelta(t, math.Exp(2), res.Raw[0], 1e-12)
}

func TestProjectZeroWeightTerms(t *testing.T) {
	withZero := `temp, 2.0, 0.0, 10.0
rain, 0.0, 0.0, 100.0
linearPredictorNormalizer, 0.0
densityNormalizer, 1.0
numBackgroundPoints, 100
entropy, 0.0
`
	projZero, err := New(parseModel(t, withZero), nil)
	require.NoError(t, err)
	projBase, err := New(parseModel(t, linearOnlyLambdas), nil)
	require.NoError(t, err)

	tbl := predictors.New()
	require.NoError(t, tbl.AddColumn("temp", []float64{5, 7}))

	// the zero-weight term cannot shift the output but its variable is still
	// part of the model's requirements
	_, err = projZero.Project(tbl)
	assert.ErrorIs(t, err, ErrUnknownVariable)

	require.NoError(t, tbl.AddColumn("rain", []float64{10, 90}))
	resZero, err := projZero.Project(tbl)
	require.NoError(t, err)
	resBase, err := projBase.Project(tbl)
	require.NoError(t, err)
	assert.Equal(t, resBase, resZero)
}

func TestProjectDegenerateRange(t *testing.T) {
	text := `temp, 2.0, 5.0, 5.0
linearPredictorNormalizer, 0.25
densityNormalizer, 2.0
numBackgroundPoints, 100
entropy, 0.0
`
	proj, err := New(parseModel(t, text), nil)
	require.NoError(t, err)

	tbl := predictors.New()
	require.NoError(t, tbl.AddColumn("temp", []float64{-3, 5, 42}))

	res, err := proj.Project(tbl)
	require.NoError(t, err)

	// a degenerate training range normalizes to 0 everywhere, leaving the
	// constant surface exp(-lpn)/dn
	want := math.Exp(-0.25) / 2.0
	for i := 0; i < res.Len(); i++ {
		assert.InDelta(t, want, res.Raw[i], 1e-12)
	}
}

func TestProjectNaNPropagation(t *testing.T) {
	text := `temp, 1.0, 0.0, 10.0
(5.0<=temp), 1.0, 0.0, 1.0
(ecoreg==3.0), 1.0, 0.0, 1.0
linearPredictorNormalizer, 0.0
densityNormalizer, 1.0
numBackgroundPoints, 100
entropy, 0.0
`
	proj, err := New(parseModel(t, text), nil)
	require.NoError(t, err)

	tbl := predictors.New()
	require.NoError(t, tbl.AddColumn("temp", []float64{5, math.NaN(), 7}))
	require.NoError(t, tbl.AddCategoricalColumn("ecoreg", []float64{3, 2, math.NaN()}))

	res, err := proj.Project(tbl)
	require.NoError(t, err)

	assert.InDelta(t, math.Exp(2.5), res.Raw[0], 1e-12)

	for _, i := range []int{1, 2} {
		assert.True(t, math.IsNaN(res.Raw[i]))
		assert.True(t, math.IsNaN(res.Logistic[i]))
		assert.True(t, math.IsNaN(res.Cloglog[i]))
	}
}

func TestProjectSaturation(t *testing.T) {
	overflow := `temp, 1.0, 0.0, 10.0
linearPredictorNormalizer, -1000.0
densityNormalizer, 1.0
numBackgroundPoints, 100
entropy, 0.0
`
	proj, err := New(parseModel(t, overflow), nil)
	require.NoError(t, err)

	tbl := predictors.New()
	require.NoError(t, tbl.AddColumn("temp", []float64{5}))

	res, err := proj.Project(tbl)
	require.NoError(t, err)
	assert.True(t, math.IsInf(res.Raw[0], 1))
	assert.Equal(t, 1.0, res.Logistic[0])
	assert.Equal(t, 1.0, res.Cloglog[0])

	underflow := strings.Replace(overflow, "-1000.0", "1000.0", 1)
	proj, err = New(parseModel(t, underflow), nil)
	require.NoError(t, err)

	res, err = proj.Project(tbl)
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.Raw[0])
	assert.Equal(t, 0.0, res.Logistic[0])
	assert.Equal(t, 0.0, res.Cloglog[0])
}

func TestProjectOutputRange(t *testing.T) {
	proj, err := New(parseModel(t, linearOnlyLambdas), nil)
	require.NoError(t, err)

	vals := make([]float64, 0, 201)
	for x := -100.0; x <= 100; x++ {
		vals = append(vals, x)
	}
	tbl := predictors.New()
	require.NoError(t, tbl.AddColumn("temp", vals))

	res, err := proj.Project(tbl)
	require.NoError(t, err)
	for i := 0; i < res.Len(); i++ {
		assert.Greater(t, res.Raw[i], 0.0)
		assert.GreaterOrEqual(t, res.Logistic[i], 0.0)
		assert.LessOrEqual(t, res.Logistic[i], 1.0)
		assert.GreaterOrEqual(t, res.Cloglog[i], 0.0)
		assert.LessOrEqual(t, res.Cloglog[i], 1.0)
	}
}

func TestProjectPure(t *testing.T) {
	proj, err := New(parseModel(t, linearOnlyLambdas), nil)
	require.NoError(t, err)

	vals := []float64{-3, 5, 42}
	tbl := predictors.New()
	require.NoError(t, tbl.AddColumn("temp", vals))

	first, err := proj.Project(tbl)
	require.NoError(t, err)
	second, err := proj.Project(tbl)
	require.NoError(t, err)

	assert.Equal(t, first, second)

	col, ok := tbl.Column("temp")
	require.True(t, ok)
	assert.Equal(t, []float64{-3, 5, 42}, col)
}

func TestProjectBatching(t *testing.T) {
	n := 1000
	vals := make([]float64, n)
	for i := range vals {
		vals[i] = float64(i%23) - 5
	}
	tbl := predictors.New()
	require.NoError(t, tbl.AddColumn("temp", vals))

	model := parseModel(t, linearOnlyLambdas)
	serial, err := New(model, &Options{Workers: 1, BatchSize: n})
	require.NoError(t, err)
	batched, err := New(model, &Options{Workers: 4, BatchSize: 17})
	require.NoError(t, err)

	resSerial, err := serial.Project(tbl)
	require.NoError(t, err)
	resBatched, err := batched.Project(tbl)
	require.NoError(t, err)

	assert.Equal(t, resSerial, resBatched)
}

func TestProjectNoTerms(t *testing.T) {
	text := `linearPredictorNormalizer, 0.5
densityNormalizer, 2.0
numBackgroundPoints, 100
entropy, 1.0
`
	proj, err := New(parseModel(t, text), nil)
	require.NoError(t, err)
	assert.Empty(t, proj.Variables())

	res, err := proj.Project(predictors.New())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Len())
}

func TestProjectErrors(t *testing.T) {
	_, err := New(nil, nil)
	assert.ErrorIs(t, err, ErrNoModel)

	var nilProj *Projector
	_, err = nilProj.Project(predictors.New())
	assert.ErrorIs(t, err, ErrNoModel)

	proj, err := New(parseModel(t, linearOnlyLambdas), nil)
	require.NoError(t, err)

	tbl := predictors.New()
	require.NoError(t, tbl.AddColumn("rain", []float64{1}))
	_, err = proj.Project(tbl)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownVariable)
	assert.ErrorContains(t, err, "temp")
}

func TestProjectorVariables(t *testing.T) {
	text := `temp, 2.0, 0.0, 10.0
rain, 0.0, 0.0, 100.0
temp*elev, 1.5, 0.0, 50.0
linearPredictorNormalizer, 0.0
densityNormalizer, 1.0
numBackgroundPoints, 100
entropy, 0.0
`
	proj, err := New(parseModel(t, text), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"temp", "rain", "elev"}, proj.Variables())
}

func TestResultsWriteCSV(t *testing.T) {
	res := &Results{
		Raw:      []float64{1, math.NaN()},
		Logistic: []float64{0.5, math.NaN()},
		Cloglog:  []float64{0.25, math.NaN()},
	}

	var buf bytes.Buffer
	require.NoError(t, res.WriteCSV(&buf))

	expected := `raw,logistic,cloglog
1,0.5,0.25
NaN,NaN,NaN
`
	assert.Equal(t, expected, buf.String())
}

func TestResultsWriteCSVFile(t *testing.T) {
	res := &Results{
		Raw:      []float64{1, 2},
		Logistic: []float64{0.5, 0.75},
		Cloglog:  []float64{0.25, 0.8},
	}

	for _, name := range []string{"results.csv", "results.csv.gz"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, res.WriteCSVFile(path))

			tbl, err := predictors.ReadCSVFile(path, nil)
			require.NoError(t, err)
			assert.Equal(t, 2, tbl.Len())

			logistic, ok := tbl.Column("logistic")
			require.True(t, ok)
			assert.Equal(t, []float64{0.5, 0.75}, logistic)
		})
	}
}
