package synth

import (
	"fmt"

	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/optimize"
)

// residualTolerance bounds the squared residual of an accepted root.
const residualTolerance = 1e-10

//lagrangeResidual is the squared residual of the system
//
//	grad f(x)*lambda + x - point = 0
//	f(x) = 0
//
//over z = (x, lambda). Its roots are the points of the surface nearest to point.
func lagrangeResidual(s Surface, point []float64) func(z []float64) float64 {
	n := len(point)
	grad := make([]float64, n)
	return func(z []float64) float64 {
		x, lambda := z[:n], z[n]
		s.Gradient(grad, x)
		var sum float64
		for i := range x {
			r := grad[i]*lambda + x[i] - point[i]
			sum += r * r
		}
		f := s.Value(x)
		return sum + f*f
	}
}

//Nearest finds the point of the surface closest to point, starting the search at point itself.
func Nearest(s Surface, point []float64) ([]float64, error) {
	n := len(point)
	if s.Dims() != n {
		return nil, fmt.Errorf("synth: %d-dimensional point for a %d-dimensional surface: %w", n, s.Dims(), ErrDimensionMismatch)
	}

	residual := lagrangeResidual(s, point)
	problem := optimize.Problem{
		Func: residual,
		Grad: func(grad, z []float64) {
			fd.Gradient(grad, residual, z, &fd.Settings{Formula: fd.Central})
		},
	}
	z0 := make([]float64, n+1)
	copy(z0, point)

	result, err := optimize.Minimize(problem, z0, &optimize.Settings{
		GradientThreshold: 1e-12,
		MajorIterations:   1000,
	}, &optimize.BFGS{})
	if result == nil {
		return nil, fmt.Errorf("synth: minimise residual: %w", err)
	}
	if result.F > residualTolerance {
		return nil, fmt.Errorf("synth: residual %g after %d iterations (%v): %w", result.F, result.Stats.MajorIterations, err, ErrNoConvergence)
	}
	return append([]float64(nil), result.X[:n]...), nil
}

//Distance returns the Euclidean distance from point to the surface.
func Distance(s Surface, point []float64) (float64, error) {
	nearest, err := Nearest(s, point)
	if err != nil {
		return 0, err
	}
	return floats.Distance(nearest, point, 2), nil
}

//Distances measures every row of points against the surface.
func Distances(s Surface, points [][]float64) ([]float64, error) {
	dist := make([]float64, len(points))
	for p, point := range points {
		d, err := Distance(s, point)
		if err != nil {
			return nil, fmt.Errorf("synth: point %d: %w", p, err)
		}
		dist[p] = d
	}
	return dist, nil
}
