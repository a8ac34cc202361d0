package bsl

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

// circleData draws n points uniformly from [-1, 1]^dims, labelled +1 inside the ball of radius 0.6.
func circleData(t testing.TB, n, dims int) Dataset {
	t.Helper()
	rnd := rand.New(rand.NewPCG(uint64(n), uint64(dims)))
	x := make([][]float64, n)
	y := make([]float64, n)
	for p := range x {
		x[p] = make([]float64, dims)
		for q := range x[p] {
			x[p][q] = 2*rnd.Float64() - 1
		}
		y[p] = -1
		if floats.Norm(x[p], 2) < 0.6 {
			y[p] = 1
		}
	}
	data, err := NewDatasetFromRows(x, y, false)
	require.NoError(t, err)
	return data
}

func rowsDataset(t testing.TB, x [][]float64, y []float64) Dataset {
	t.Helper()
	data, err := NewDatasetFromRows(x, y, false)
	require.NoError(t, err)
	return data
}
