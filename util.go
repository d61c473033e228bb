package maxent

import (
	"io"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// HeatMapSuitability generates an echart heatmap for a suitability surface
// laid out row-major on a width by height grid. NaN locations are left blank.
// The color scale assumes values in the unit interval, so this fits the
// logistic and cloglog surfaces.
func HeatMapSuitability(title string, values []float64, width, height int) *charts.HeatMap {
	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
		charts.WithXAxisOpts(
			opts.XAxis{
				Type: "category",
			},
		),
		charts.WithYAxisOpts(
			opts.YAxis{
				Type: "category",
			},
		),
		charts.WithVisualMapOpts(
			opts.VisualMap{
				Min: 0,
				Max: 1,
			},
		),
	)

	xAxis := make([]int, width)
	for i := range xAxis {
		xAxis[i] = i
	}

	data := make([]opts.HeatMapData, 0, len(values))
	for i, v := range values {
		if math.IsNaN(v) {
			continue
		}
		if i/width >= height {
			break
		}
		data = append(data, opts.HeatMapData{Value: [3]interface{}{i % width, i / width, v}})
	}

	hm = hm.SetXAxis(xAxis)
	hm.AddSeries("suitability", data)
	return hm
}

// ScatterSuitability generates an echart scatter chart of a suitability
// surface against one predictor variable, which shows the fitted response
// along that variable. NaN pairs are dropped.
func ScatterSuitability(title, varName string, x, y []float64) *charts.Scatter {
	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithTitleOpts(
			opts.Title{
				Title: title,
			},
		),
		charts.WithXAxisOpts(
			opts.XAxis{
				Name: varName,
				Type: "value",
			},
		),
		charts.WithYAxisOpts(
			opts.YAxis{
				Type: "value",
			},
		),
	)

	data := make([]opts.ScatterData, 0, len(x))
	for i := 0; i < len(x) && i < len(y); i++ {
		if math.IsNaN(x[i]) || math.IsNaN(y[i]) {
			continue
		}
		data = append(data, opts.ScatterData{Value: [2]interface{}{x[i], y[i]}})
	}

	sc.AddSeries(title, data)
	return sc
}

// PlotGrid writes an HTML page with heatmaps of the logistic and cloglog
// surfaces laid out on a width by height grid.
func (r *Results) PlotGrid(path string, width, height int) error {
	page := components.NewPage()
	page.AddCharts(
		HeatMapSuitability("Logistic Suitability", r.Logistic, width, height),
		HeatMapSuitability("Cloglog Suitability", r.Cloglog, width, height),
	)
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	return page.Render(io.MultiWriter(file))
}
