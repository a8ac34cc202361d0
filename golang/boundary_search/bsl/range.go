package bsl

//OrthantIterable is the interface for iteration over a collection of orthant indices.
type OrthantIterable interface {
	HasNext() bool
	GetNext() Orthant
	Len() int
}

//Range is an iterator over orthant indices in the half interval [begin, end) with the step step.
type Range struct {
	begin, end, step, pos int
}

//NewRange initializes a new iterator over a half interval.
func NewRange(start, end, step int) *Range {
	return &Range{start, end, step, start}
}

//AllOrthants iterates over every orthant index of a dims-dimensional split.
func AllOrthants(dims int) *Range {
	return NewRange(0, OrthantCount(dims), 1)
}

//GetNext returns the next element from the iterator and moves iterator to the next position.
func (r *Range) GetNext() Orthant {
	val := r.pos
	r.pos += r.step
	return Orthant(val)
}

//HasNext checks whether there are more values in the iterator.
func (r *Range) HasNext() bool {
	if r.step > 0 {
		return r.pos < r.end
	}
	return r.pos > r.end
}

//Len returns the total number of values the iterator yields from its start.
func (r *Range) Len() int {
	if r.step > 0 {
		if r.end <= r.begin {
			return 0
		}
		return (r.end - r.begin + r.step - 1) / r.step
	}
	if r.begin <= r.end {
		return 0
	}
	return (r.begin - r.end - r.step - 1) / -r.step
}
