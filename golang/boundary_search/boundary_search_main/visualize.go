package main

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/mat"

	"github.com/tarstars/boundary_search/golang/boundary_search/bsl"
)

// planar projects a point onto the plot plane: the first two coordinates, or (x_0, 0) in 1-D.
func planar(coords []float64) []any {
	if len(coords) == 1 {
		return []any{coords[0], 0}
	}
	return []any{coords[0], coords[1]}
}

func classSeries(data bsl.Dataset, label float64) []opts.ScatterData {
	items := make([]opts.ScatterData, 0)
	for p := 0; p < data.Len(); p++ {
		if data.Label(p) != label {
			continue
		}
		items = append(items, opts.ScatterData{
			Value:      planar(data.Coords(p)),
			Symbol:     "circle",
			SymbolSize: 4,
		})
	}
	return items
}

func boundarySeries(boundary *mat.Dense) []opts.ScatterData {
	h, _ := boundary.Dims()
	items := make([]opts.ScatterData, 0, h)
	for p := 0; p < h; p++ {
		items = append(items, opts.ScatterData{
			Value:      planar(boundary.RawRowView(p)),
			Symbol:     "diamond",
			SymbolSize: 7,
			Name:       fmt.Sprintf("boundary #%d", p),
		})
	}
	return items
}

//renderScatter draws both classes and the boundary points in the plane of the first two
//coordinates as an HTML page.
func renderScatter(title string, data bsl.Dataset, boundary *mat.Dense, outputPath string) error {
	h, w := boundary.Dims()
	if w != data.Dims() {
		return fmt.Errorf("boundary has %d coordinates, data has %d: %w", w, data.Dims(), bsl.ErrDimensionMismatch)
	}
	lo, hi := data.Bounds()

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("%d points, %d boundary points", data.Len(), h),
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "x_0",
			Type: "value",
			Min:  lo[0],
			Max:  hi[0],
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "x_1",
			Type: "value",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "item",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
		}),
	)

	scatter.AddSeries("-1", classSeries(data, -1))
	scatter.AddSeries("+1", classSeries(data, 1))
	scatter.AddSeries("boundary", boundarySeries(boundary))

	f, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return scatter.Render(f)
}
