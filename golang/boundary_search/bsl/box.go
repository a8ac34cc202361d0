package bsl

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

//Box is an axis-aligned cell given by per-dimension minimum and maximum.
type Box struct {
	Min []float64 `json:"min"`
	Max []float64 `json:"max"`
}

//NewBox checks that min and max have the same length and that min <= max in every dimension.
func NewBox(min, max []float64) (Box, error) {
	if len(min) != len(max) {
		return Box{}, fmt.Errorf("bsl: box min has %d dims, max has %d: %w", len(min), len(max), ErrDimensionMismatch)
	}
	if len(min) == 0 {
		return Box{}, fmt.Errorf("bsl: box has no dimensions: %w", ErrDimensionMismatch)
	}
	for i := range min {
		if min[i] > max[i] {
			return Box{}, fmt.Errorf("bsl: box min[%d]=%g exceeds max[%d]=%g: %w", i, min[i], i, max[i], ErrInvalidConfig)
		}
	}
	return Box{Min: append([]float64(nil), min...), Max: append([]float64(nil), max...)}, nil
}

//Dims returns the dimensionality of the box.
func (b Box) Dims() int {
	return len(b.Min)
}

//Equal reports whether both boxes have the same bounds.
func (b Box) Equal(other Box) bool {
	return floats.Equal(b.Min, other.Min) && floats.Equal(b.Max, other.Max)
}

//Contains reports whether point lies in the closed box. The test is written as
//|x - mid| <= half-width, so a point exactly on a face belongs to every box sharing that face.
func (b Box) Contains(point []float64) bool {
	for i := range b.Min {
		if !withinInterval(point[i], b.Min[i], b.Max[i]) {
			return false
		}
	}
	return true
}

func withinInterval(x, lo, hi float64) bool {
	mid := (lo + hi) / 2
	half := (hi - lo) / 2
	d := x - mid
	if d < 0 {
		d = -d
	}
	// rounding of mid and half must not drop a point lying exactly on a face
	return d <= half || x == lo || x == hi
}

//Split stores the (lower, split point, upper) triple of every dimension of a box.
type Split struct {
	triples [][3]float64
}

//NewSplit places the split point of dimension i at min_i + ratios[i]*(max_i - min_i).
//A dimension with min_i == max_i produces three equal values.
func NewSplit(box Box, ratios []float64) Split {
	if len(ratios) != box.Dims() {
		panic(fmt.Sprintf("bsl: %d split ratios for a %d-dimensional box", len(ratios), box.Dims()))
	}
	triples := make([][3]float64, box.Dims())
	for i := range triples {
		lo, hi := box.Min[i], box.Max[i]
		triples[i] = [3]float64{lo, lo + ratios[i]*(hi-lo), hi}
	}
	return Split{triples: triples}
}

//Dims returns the number of split dimensions.
func (s Split) Dims() int {
	return len(s.triples)
}

//At returns the k-th value (0 lower, 1 split point, 2 upper) of dimension dim.
func (s Split) At(dim, k int) float64 {
	return s.triples[dim][k]
}

//Point returns the split point of dimension dim.
func (s Split) Point(dim int) float64 {
	return s.triples[dim][1]
}

//Splitter draws split ratios uniformly from [0.5-spread, 0.5+spread].
type Splitter struct {
	spread float64
	dist   distuv.Uniform
}

//NewSplitter creates a splitter with the given half-width and a PCG source seeded by seed.
func NewSplitter(spread float64, seed uint64) *Splitter {
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &Splitter{
		spread: spread,
		dist:   distuv.Uniform{Min: 0.5 - spread, Max: 0.5 + spread, Src: src},
	}
}

//Ratios returns n fresh ratios. A zero spread always bisects and consumes no randomness.
func (s *Splitter) Ratios(n int) []float64 {
	ratios := make([]float64, n)
	for i := range ratios {
		if s.spread == 0 {
			ratios[i] = 0.5
			continue
		}
		ratios[i] = s.dist.Rand()
	}
	return ratios
}

//Split draws ratios and splits box with them.
func (s *Splitter) Split(box Box) Split {
	return NewSplit(box, s.Ratios(box.Dims()))
}
