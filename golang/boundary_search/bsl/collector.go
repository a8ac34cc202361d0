package bsl

import (
	"sync"

	"gonum.org/v1/gonum/mat"
)

//Collector accumulates boundary points across recursive calls and repeats. Points are never removed.
type Collector struct {
	mu     sync.Mutex
	dims   int
	points [][]float64
}

//NewCollector creates an empty collector for dims-dimensional points.
func NewCollector(dims int) *Collector {
	return &Collector{dims: dims}
}

//Add appends a copy of coord.
func (c *Collector) Add(coord []float64) {
	if len(coord) != c.dims {
		panic("bsl: boundary point dimensionality differs from the collector")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.points = append(c.points, append([]float64(nil), coord...))
}

//Len returns the number of collected points.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.points)
}

//Dims returns the dimensionality of the collected points.
func (c *Collector) Dims() int {
	return c.dims
}

//Points returns a copy of the collected points in the order they were found.
func (c *Collector) Points() [][]float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([][]float64, len(c.points))
	for i, p := range c.points {
		out[i] = append([]float64(nil), p...)
	}
	return out
}

//Matrix returns the points as rows of a dense matrix, or nil when nothing was collected.
func (c *Collector) Matrix() *mat.Dense {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.points) == 0 {
		return nil
	}
	m := mat.NewDense(len(c.points), c.dims, nil)
	for i, p := range c.points {
		m.SetRow(i, p)
	}
	return m
}
