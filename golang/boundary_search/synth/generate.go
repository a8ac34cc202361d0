// Package synth generates labelled point clouds around analytic surfaces and measures how far
// points lie from those surfaces.
package synth

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

func uniformPoints(xmin, xmax []float64, n int, src rand.Source) (*mat.Dense, error) {
	if len(xmin) != len(xmax) || len(xmin) == 0 {
		return nil, fmt.Errorf("synth: bounds of length %d and %d: %w", len(xmin), len(xmax), ErrDimensionMismatch)
	}
	if n <= 0 {
		return nil, fmt.Errorf("synth: need a positive number of points, got %d", n)
	}
	dims := len(xmin)
	axes := make([]distuv.Uniform, dims)
	for q := range axes {
		if xmin[q] > xmax[q] {
			return nil, fmt.Errorf("synth: xmin[%d]=%g exceeds xmax[%d]=%g", q, xmin[q], q, xmax[q])
		}
		axes[q] = distuv.Uniform{Min: xmin[q], Max: xmax[q], Src: src}
	}

	x := mat.NewDense(n, dims, nil)
	for p := 0; p < n; p++ {
		for q := range axes {
			x.Set(p, q, axes[q].Rand())
		}
	}
	return x, nil
}

//MakeData draws n points uniformly from the box [xmin, xmax] and labels them by the side of
//the surface they fall on.
func MakeData(s Surface, xmin, xmax []float64, n int, src rand.Source) (*mat.Dense, []float64, error) {
	if s.Dims() != len(xmin) {
		return nil, nil, fmt.Errorf("synth: %d-dimensional surface in a %d-dimensional box: %w", s.Dims(), len(xmin), ErrDimensionMismatch)
	}
	x, err := uniformPoints(xmin, xmax, n, src)
	if err != nil {
		return nil, nil, err
	}
	y := make([]float64, n)
	for p := range y {
		y[p] = Label(s, x.RawRowView(p))
	}
	return x, y, nil
}

//UniformNoise draws n points uniformly from the box [xmin, xmax] with labels that are +1 or -1
//with equal probability.
func UniformNoise(xmin, xmax []float64, n int, src rand.Source) (*mat.Dense, []float64, error) {
	x, err := uniformPoints(xmin, xmax, n, src)
	if err != nil {
		return nil, nil, err
	}
	coin := distuv.Uniform{Min: 0, Max: 1, Src: src}
	y := make([]float64, n)
	for p := range y {
		y[p] = -1
		if coin.Rand() >= 0.5 {
			y[p] = 1
		}
	}
	return x, y, nil
}
