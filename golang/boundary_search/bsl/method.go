package bsl

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//BoundaryMethod estimates one boundary point inside a small mixed cell.
type BoundaryMethod interface {
	//Estimate returns the point and true, or nil and false when it has no estimate.
	Estimate(data Dataset) ([]float64, bool)
}

const (
	MethodNone     = "none"
	MethodWeighted = "weighted"
)

//MethodByName selects a boundary method by its configuration name.
func MethodByName(name string) (BoundaryMethod, error) {
	switch name {
	case MethodNone, "":
		return NoneMethod{}, nil
	case MethodWeighted:
		return WeightedMethod{}, nil
	}
	return nil, fmt.Errorf("bsl: unknown method %q: %w", name, ErrInvalidConfig)
}

//NoneMethod never estimates, leaving adjacency interpolation as the only source of points.
type NoneMethod struct{}

func (NoneMethod) Estimate(Dataset) ([]float64, bool) {
	return nil, false
}

//WeightedMethod interpolates between the per-dimension means of the two classes:
//
//	coord = mean⁻ + (mean⁺ - mean⁻)·q,  q = std⁻ / (std⁻ + std⁺)
//
//with population standard deviations. q is 0.5 everywhere when all deviations are zero.
type WeightedMethod struct{}

func (WeightedMethod) Estimate(data Dataset) ([]float64, bool) {
	positive := data.ByLabel(1)
	negative := data.ByLabel(-1)
	n := data.Dims()
	if n == 0 || len(positive[0]) == 0 || len(negative[0]) == 0 {
		return nil, false
	}

	meanPositive, stdPositive := make([]float64, n), make([]float64, n)
	meanNegative, stdNegative := make([]float64, n), make([]float64, n)
	for q := 0; q < n; q++ {
		meanPositive[q], stdPositive[q] = stat.PopMeanStdDev(positive[q], nil)
		meanNegative[q], stdNegative[q] = stat.PopMeanStdDev(negative[q], nil)
	}

	spread := make([]float64, n)
	floats.AddTo(spread, stdNegative, stdPositive)
	degenerate := floats.Sum(spread) == 0

	coord := make([]float64, n)
	for q := 0; q < n; q++ {
		weight := 0.5
		if !degenerate && spread[q] != 0 {
			weight = stdNegative[q] / spread[q]
		}
		coord[q] = meanNegative[q] + (meanPositive[q]-meanNegative[q])*weight
	}
	if floats.HasNaN(coord) || math.IsInf(floats.Sum(coord), 0) {
		return nil, false
	}
	return coord, true
}

//BoundaryFindMethod applies a method only to cells holding at most PointsPerDim^N points.
type BoundaryFindMethod struct {
	Method       BoundaryMethod
	PointsPerDim float64
}

//NewBoundaryFindMethod selects the method by name.
func NewBoundaryFindMethod(name string, pointsPerDim float64) (BoundaryFindMethod, error) {
	method, err := MethodByName(name)
	if err != nil {
		return BoundaryFindMethod{}, err
	}
	return BoundaryFindMethod{Method: method, PointsPerDim: pointsPerDim}, nil
}

//Limit returns the largest cell size the method is applied to in dims dimensions.
func (bm BoundaryFindMethod) Limit(dims int) float64 {
	return math.Pow(bm.PointsPerDim, float64(dims))
}

//Small reports whether a cell of the dataset is small enough for direct estimation.
func (bm BoundaryFindMethod) Small(data Dataset) bool {
	return float64(data.Len()) <= bm.Limit(data.Dims())
}

//FindCoord finds the coordinate of a boundary point, or reports false when the cell is too
//large or the method has no estimate.
func (bm BoundaryFindMethod) FindCoord(data Dataset) ([]float64, bool) {
	if !bm.Small(data) {
		return nil, false
	}
	return bm.Method.Estimate(data)
}
