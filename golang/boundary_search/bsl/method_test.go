package bsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMethodByName(t *testing.T) {
	m, err := MethodByName("")
	require.NoError(t, err)
	assert.IsType(t, NoneMethod{}, m)

	m, err = MethodByName(MethodWeighted)
	require.NoError(t, err)
	assert.IsType(t, WeightedMethod{}, m)

	_, err = MethodByName("median")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNoneMethodNeverEstimates(t *testing.T) {
	data := rowsDataset(t, [][]float64{{0}, {1}}, []float64{-1, 1})
	_, ok := NoneMethod{}.Estimate(data)
	assert.False(t, ok)
}

func TestWeightedMethodTightClassWins(t *testing.T) {
	// The positive class has no spread along x_0, so the estimate lands on its mean there.
	data := rowsDataset(t,
		[][]float64{{3, 1}, {3, 1}, {-2, 0}, {2, 0}},
		[]float64{1, 1, -1, -1})
	coord, ok := WeightedMethod{}.Estimate(data)
	require.True(t, ok)
	assert.InDelta(t, 3.0, coord[0], 1e-12)
	assert.InDelta(t, 0.5, coord[1], 1e-12)
}

func TestWeightedMethodDegenerateSpread(t *testing.T) {
	data := rowsDataset(t,
		[][]float64{{1, 1}, {1, 1}, {3, 3}, {3, 3}},
		[]float64{1, 1, -1, -1})
	coord, ok := WeightedMethod{}.Estimate(data)
	require.True(t, ok)
	assert.InDeltaSlice(t, []float64{2, 2}, coord, 1e-12)
}

func TestWeightedMethodSpreadInOneDimension(t *testing.T) {
	data := rowsDataset(t,
		[][]float64{{1, 0}, {1, 2}, {3, 0}, {3, 4}},
		[]float64{1, 1, -1, -1})
	coord, ok := WeightedMethod{}.Estimate(data)
	require.True(t, ok)
	assert.InDelta(t, 2.0, coord[0], 1e-12)
	assert.InDelta(t, 4.0/3, coord[1], 1e-12)
}

func TestWeightedMethodNeedsBothClasses(t *testing.T) {
	data := rowsDataset(t, [][]float64{{0}, {1}}, []float64{1, 1})
	_, ok := WeightedMethod{}.Estimate(data)
	assert.False(t, ok)
}

func TestBoundaryFindMethodLimit(t *testing.T) {
	bm, err := NewBoundaryFindMethod(MethodWeighted, 2)
	require.NoError(t, err)
	assert.Equal(t, 2.0, bm.Limit(1))
	assert.Equal(t, 4.0, bm.Limit(2))
	assert.Equal(t, 8.0, bm.Limit(3))

	pair := rowsDataset(t, [][]float64{{0}, {1}}, []float64{1, -1})
	assert.True(t, bm.Small(pair))

	small := rowsDataset(t, [][]float64{{0, 0}, {1, 1}, {2, 2}, {3, 3}}, []float64{1, -1, -1, 1})
	assert.True(t, bm.Small(small))
	_, ok := bm.FindCoord(small)
	assert.True(t, ok)

	large := rowsDataset(t, [][]float64{{0, 0}, {1, 1}, {2, 2}, {3, 3}, {4, 4}}, []float64{1, -1, -1, 1, 1})
	assert.False(t, bm.Small(large))
	_, ok = bm.FindCoord(large)
	assert.False(t, ok)
}
