package bsl

import "math"

//Purity is the class of a subset of labelled points.
type Purity int

const (
	//Mixed subsets hold both labels below the purity threshold, or no points at all.
	Mixed Purity = iota
	//PurePositive subsets are dominated by +1 labels.
	PurePositive
	//PureNegative subsets are dominated by -1 labels.
	PureNegative
)

func (p Purity) String() string {
	switch p {
	case PurePositive:
		return "pure+"
	case PureNegative:
		return "pure-"
	default:
		return "mixed"
	}
}

//Classify compares the signed label sum S of the subset with its size M: the subset is pure
//when |S| >= threshold*M, positive or negative by the sign of S. Empty subsets are Mixed.
func Classify(data Dataset, threshold float64) Purity {
	m := data.Len()
	if m == 0 {
		return Mixed
	}
	difference := data.LabelSum()
	if math.Abs(difference) < threshold*float64(m) {
		return Mixed
	}
	switch {
	case difference > 0:
		return PurePositive
	case difference < 0:
		return PureNegative
	}
	return Mixed
}
