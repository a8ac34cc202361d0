package bsl

import (
	"errors"
	"log"
)

var (
	//ErrNonBinaryTarget is returned when relabelling finds other than exactly two distinct labels.
	ErrNonBinaryTarget = errors.New("non-binary target")
	//ErrInvalidLabel is returned when labels are expected to be -1/+1 but are not.
	ErrInvalidLabel = errors.New("labels must be -1 or +1")
	//ErrInvalidConfig wraps every configuration validation failure.
	ErrInvalidConfig = errors.New("invalid config")
	//ErrDimensionMismatch is returned when coordinates, labels or box bounds disagree in shape.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	//ErrEmptyDataset is returned when a search is requested on a dataset without points.
	ErrEmptyDataset = errors.New("empty dataset")
	//ErrScaleWarning marks a dimensionality and point count whose orthant enumeration is expensive.
	ErrScaleWarning = errors.New("orthant enumeration is expensive")
)

//HandleError panics on a non-nil error. It is meant for bookkeeping failures that can only
//be caused by a programming mistake and for command line glue.
func HandleError(err error) {
	if err != nil {
		log.Panic(err)
	}
}
