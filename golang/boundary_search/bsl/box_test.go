package bsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBox(t *testing.T) {
	box, err := NewBox([]float64{0, -1}, []float64{1, 1})
	require.NoError(t, err)
	assert.Equal(t, 2, box.Dims())
	assert.Equal(t, []float64{0, -1}, box.Min)

	_, err = NewBox([]float64{0}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	_, err = NewBox([]float64{2}, []float64{1})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewBox(nil, nil)
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestBoxContainsClosedFaces(t *testing.T) {
	left := Box{Min: []float64{0, 0}, Max: []float64{0.5, 1}}
	right := Box{Min: []float64{0.5, 0}, Max: []float64{1, 1}}

	onSeam := []float64{0.5, 0.3}
	assert.True(t, left.Contains(onSeam))
	assert.True(t, right.Contains(onSeam))

	assert.True(t, left.Contains([]float64{0, 0}))
	assert.True(t, right.Contains([]float64{1, 1}))
	assert.False(t, left.Contains([]float64{0.75, 0.3}))
	assert.False(t, right.Contains([]float64{0.75, 1.01}))
}

func TestBoxContainsRandomSeam(t *testing.T) {
	s := NewSplitter(0.2, 5)
	for i := 0; i < 200; i++ {
		split := s.Split(Box{Min: []float64{-0.3}, Max: []float64{1.7}})
		seam := []float64{split.Point(0)}
		lower := Box{Min: []float64{split.At(0, 0)}, Max: []float64{split.At(0, 1)}}
		upper := Box{Min: []float64{split.At(0, 1)}, Max: []float64{split.At(0, 2)}}
		assert.True(t, lower.Contains(seam))
		assert.True(t, upper.Contains(seam))
	}
}

func TestBoxContainsDegenerateInterval(t *testing.T) {
	flat := Box{Min: []float64{0, 2}, Max: []float64{1, 2}}
	assert.True(t, flat.Contains([]float64{0.3, 2}))
	assert.False(t, flat.Contains([]float64{0.3, 2.0001}))
}

func TestNewSplit(t *testing.T) {
	box := Box{Min: []float64{0, 10}, Max: []float64{4, 20}}
	split := NewSplit(box, []float64{0.5, 0.3})

	assert.Equal(t, 2, split.Dims())
	assert.Equal(t, 0.0, split.At(0, 0))
	assert.Equal(t, 2.0, split.Point(0))
	assert.Equal(t, 4.0, split.At(0, 2))
	assert.InDelta(t, 13.0, split.Point(1), 1e-12)
}

func TestNewSplitDegenerateDimension(t *testing.T) {
	box := Box{Min: []float64{1, 3}, Max: []float64{2, 3}}
	split := NewSplit(box, []float64{0.4, 0.6})
	for k := 0; k < 3; k++ {
		assert.Equal(t, 3.0, split.At(1, k))
	}
}

func TestNewSplitPanicsOnRatioCount(t *testing.T) {
	box := Box{Min: []float64{0, 0}, Max: []float64{1, 1}}
	assert.Panics(t, func() { NewSplit(box, []float64{0.5}) })
}

func TestSplitterZeroSpreadBisects(t *testing.T) {
	s := NewSplitter(0, 1)
	for i := 0; i < 10; i++ {
		assert.Equal(t, []float64{0.5, 0.5, 0.5}, s.Ratios(3))
	}
}

func TestSplitterRatiosInRange(t *testing.T) {
	s := NewSplitter(0.2, 42)
	for i := 0; i < 1000; i++ {
		for _, r := range s.Ratios(4) {
			assert.GreaterOrEqual(t, r, 0.3)
			assert.LessOrEqual(t, r, 0.7)
		}
	}
}

func TestSplitterSeeded(t *testing.T) {
	a := NewSplitter(0.25, 9)
	b := NewSplitter(0.25, 9)
	c := NewSplitter(0.25, 10)
	ra, rb, rc := a.Ratios(16), b.Ratios(16), c.Ratios(16)
	assert.Equal(t, ra, rb)
	assert.NotEqual(t, ra, rc)
}
