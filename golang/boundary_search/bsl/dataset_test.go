package bsl

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestRelabel(t *testing.T) {
	y, err := Relabel([]float64{7, 3, 3, 7})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, -1, -1, 1}, y)

	_, err = Relabel([]float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrNonBinaryTarget)

	_, err = Relabel([]float64{4, 4})
	assert.ErrorIs(t, err, ErrNonBinaryTarget)
}

func TestNewDatasetLabels(t *testing.T) {
	x := mat.NewDense(3, 2, []float64{0, 0, 1, 1, 2, 2})

	_, err := NewDataset(x, []float64{0, 1, 0}, false)
	assert.ErrorIs(t, err, ErrInvalidLabel)

	data, err := NewDataset(x, []float64{0, 1, 0}, true)
	require.NoError(t, err)
	assert.Equal(t, 3, data.Len())
	assert.Equal(t, 2, data.Dims())
	assert.Equal(t, 1.0, data.Label(1))
	assert.Equal(t, -1.0, data.LabelSum())
	assert.Equal(t, []float64{2, 2}, data.Coords(2))

	_, err = NewDataset(x, []float64{1, -1}, false)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestNewDatasetFromRows(t *testing.T) {
	_, err := NewDatasetFromRows(nil, nil, true)
	assert.ErrorIs(t, err, ErrEmptyDataset)

	_, err = NewDatasetFromRows([][]float64{{0, 1}, {2}}, []float64{1, -1}, false)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	data, err := NewDatasetFromColumn([]float64{0.5, -0.5}, []float64{1, -1}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, data.Dims())
}

func TestDatasetSubsetAndBounds(t *testing.T) {
	data := rowsDataset(t,
		[][]float64{{0, 5}, {1, 4}, {2, 3}, {3, 2}},
		[]float64{-1, -1, 1, 1})

	lo, hi := data.Bounds()
	assert.Equal(t, []float64{0, 2}, lo)
	assert.Equal(t, []float64{3, 5}, hi)

	sub := data.Subset(Box{Min: []float64{1, 0}, Max: []float64{2, 10}})
	require.Equal(t, 2, sub.Len())
	assert.Equal(t, []float64{1, 4}, sub.Coords(0))
	assert.Equal(t, 0.0, sub.LabelSum())

	none := data.Subset(Box{Min: []float64{10, 10}, Max: []float64{11, 11}})
	assert.Zero(t, none.Len())
	assert.Equal(t, 2, none.Dims())
}

func TestDatasetByLabel(t *testing.T) {
	data := rowsDataset(t,
		[][]float64{{0, 5}, {1, 4}, {2, 3}},
		[]float64{-1, 1, -1})
	negative := data.ByLabel(-1)
	require.Len(t, negative, 2)
	assert.Equal(t, []float64{0, 2}, negative[0])
	assert.Equal(t, []float64{5, 3}, negative[1])
}

func TestNpyRoundTrip(t *testing.T) {
	dir := t.TempDir()
	fileX := filepath.Join(dir, "x.npy")
	fileY := filepath.Join(dir, "y.npy")

	x := mat.NewDense(3, 2, []float64{0, 1, 2, 3, 4, 5})
	require.NoError(t, WriteNpy(fileX, x))
	require.NoError(t, WriteNpyVector(fileY, []float64{0, 1, 1}))

	back, err := ReadNpy(fileX)
	require.NoError(t, err)
	assert.True(t, mat.Equal(x, back))

	data, err := ReadDataset(fileX, fileY, true)
	require.NoError(t, err)
	assert.Equal(t, 3, data.Len())
	assert.Equal(t, 1.0, data.LabelSum())
}

func TestReadNpyVectorAsColumn(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "x.npy")
	require.NoError(t, WriteNpyVector(fileName, []float64{0.1, 0.2, 0.3}))

	m, err := ReadNpy(fileName)
	require.NoError(t, err)
	r, c := m.Dims()
	assert.Equal(t, 3, r)
	assert.Equal(t, 1, c)
	assert.Equal(t, 0.2, m.At(1, 0))

	_, err = ReadNpy(filepath.Join(t.TempDir(), "missing.npy"))
	assert.Error(t, err)
}

func TestCollector(t *testing.T) {
	c := NewCollector(2)
	assert.Nil(t, c.Matrix())

	coord := []float64{1, 2}
	c.Add(coord)
	coord[0] = 100
	c.Add([]float64{3, 4})

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, [][]float64{{1, 2}, {3, 4}}, c.Points())
	assert.Equal(t, 4.0, c.Matrix().At(1, 1))
	assert.Panics(t, func() { c.Add([]float64{1}) })
}
