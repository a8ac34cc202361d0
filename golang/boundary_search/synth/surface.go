package synth

import (
	"errors"
	"fmt"
)

var (
	//ErrUnknownSurface is returned by NewSurface for an unsupported kind.
	ErrUnknownSurface = errors.New("synth: unknown surface")
	//ErrDimensionMismatch is returned when bounds, parameters or points disagree in length.
	ErrDimensionMismatch = errors.New("synth: dimension mismatch")
	//ErrNoConvergence is returned by Distance when no point of the surface was found.
	ErrNoConvergence = errors.New("synth: no convergence")
)

//Surface is an implicit surface f(x) = 0 that splits space into the +1 side f > 0 and the -1 side.
type Surface interface {
	Value(x []float64) float64
	//Gradient stores the gradient of f at x in dst, allocating it when dst is nil.
	Gradient(dst, x []float64) []float64
	Dims() int
}

//Sphere is the ellipsoid f(x) = sum((Scale_i x_i)^2) - Radius^2 centred at the origin.
type Sphere struct {
	Radius float64
	Scale  []float64
}

func (s Sphere) Value(x []float64) float64 {
	var sum float64
	for i, v := range x {
		sx := s.Scale[i] * v
		sum += sx * sx
	}
	return sum - s.Radius*s.Radius
}

func (s Sphere) Gradient(dst, x []float64) []float64 {
	if dst == nil {
		dst = make([]float64, len(x))
	}
	for i, v := range x {
		dst[i] = 2 * v * s.Scale[i] * s.Scale[i]
	}
	return dst
}

func (s Sphere) Dims() int {
	return len(s.Scale)
}

//Plane is f(x) = sum(x_i Normal_i + Offset). The offset is added once per dimension.
type Plane struct {
	Offset float64
	Normal []float64
}

func (p Plane) Value(x []float64) float64 {
	var sum float64
	for i, v := range x {
		sum += v*p.Normal[i] + p.Offset
	}
	return sum
}

func (p Plane) Gradient(dst, x []float64) []float64 {
	if dst == nil {
		dst = make([]float64, len(x))
	}
	copy(dst, p.Normal)
	return dst
}

func (p Plane) Dims() int {
	return len(p.Normal)
}

//NewSurface builds a surface from a parameter vector w: w[0] is the radius of a "sphere" or
//the offset of a "plane", and w[1:] are its per-dimension scales or normal.
func NewSurface(kind string, w []float64) (Surface, error) {
	if len(w) < 2 {
		return nil, fmt.Errorf("synth: %s needs at least 2 parameters, got %d: %w", kind, len(w), ErrDimensionMismatch)
	}
	coefs := append([]float64(nil), w[1:]...)
	switch kind {
	case "sphere":
		return Sphere{Radius: w[0], Scale: coefs}, nil
	case "plane":
		return Plane{Offset: w[0], Normal: coefs}, nil
	}
	return nil, fmt.Errorf("synth: %q: %w", kind, ErrUnknownSurface)
}

//Label returns +1 on the positive side of the surface and -1 otherwise.
func Label(s Surface, x []float64) float64 {
	if s.Value(x) > 0 {
		return 1
	}
	return -1
}
