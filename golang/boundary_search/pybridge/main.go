// SPDX-License-Identifier: Apache-2.0

package main

/*
#cgo CFLAGS: -I.
#include <stdlib.h>
*/
import "C"

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"unsafe"

	"gonum.org/v1/gonum/mat"

	"github.com/tarstars/boundary_search/golang/boundary_search/bsl"
)

var (
	handleMu   sync.Mutex
	nextHandle uint64 = 1
	results           = make(map[uint64]*bsl.Result)

	lastErrorMu sync.Mutex
	lastError   string

	logSilenceOnce sync.Once
)

func setLastError(err error) {
	lastErrorMu.Lock()
	defer lastErrorMu.Unlock()
	if err != nil {
		lastError = err.Error()
	} else {
		lastError = ""
	}
}

func getLastError() string {
	lastErrorMu.Lock()
	defer lastErrorMu.Unlock()
	return lastError
}

func storeResult(r *bsl.Result) uint64 {
	handleMu.Lock()
	defer handleMu.Unlock()
	handle := nextHandle
	results[handle] = r
	nextHandle++
	return handle
}

func fetchResult(handle uint64) (*bsl.Result, error) {
	handleMu.Lock()
	defer handleMu.Unlock()
	result, ok := results[handle]
	if !ok {
		return nil, errors.New("invalid boundary handle")
	}
	return result, nil
}

//export FreeBoundary
func FreeBoundary(handle C.ulonglong) {
	handleMu.Lock()
	defer handleMu.Unlock()
	delete(results, uint64(handle))
}

// cDoubles views length C doubles at ptr without copying.
func cDoubles(ptr *C.double, length int) ([]float64, error) {
	switch {
	case length < 0:
		return nil, errors.New("negative length")
	case length == 0:
		return nil, nil
	case ptr == nil:
		return nil, errors.New("null pointer for non-empty slice")
	}
	return unsafe.Slice((*float64)(unsafe.Pointer(ptr)), length), nil
}

// copyDoubles is cDoubles followed by a copy into Go memory.
func copyDoubles(ptr *C.double, length int) ([]float64, error) {
	view, err := cDoubles(ptr, length)
	if err != nil || view == nil {
		return nil, err
	}
	return append([]float64(nil), view...), nil
}

func buildDense(ptr *C.double, rows, cols C.int) (*mat.Dense, error) {
	r := int(rows)
	c := int(cols)
	if r <= 0 || c <= 0 {
		return nil, errors.New("invalid matrix dimensions")
	}
	data, err := copyDoubles(ptr, r*c)
	if err != nil {
		return nil, err
	}
	return mat.NewDense(r, c, data), nil
}

//export FindBoundary
func FindBoundary(
	xPtr *C.double,
	rows C.int,
	cols C.int,
	yPtr *C.double,
	method *C.char,
	pointsPerDim C.double,
	purity C.double,
	rndSplit C.double,
	relabel C.int,
	repeat C.int,
	seed C.ulonglong,
	maxDepth C.int,
	workers C.int,
	xminPtr *C.double,
	xmaxPtr *C.double,
) C.ulonglong {
	setLastError(nil)
	logSilenceOnce.Do(func() {
		log.SetOutput(io.Discard)
	})

	x, err := buildDense(xPtr, rows, cols)
	if err != nil {
		setLastError(err)
		return 0
	}
	y, err := copyDoubles(yPtr, int(rows))
	if err != nil {
		setLastError(err)
		return 0
	}

	cfg := bsl.Config{
		PointsPerDim: float64(pointsPerDim),
		Purity:       float64(purity),
		RndSplit:     float64(rndSplit),
		Relabel:      relabel != 0,
		Repeat:       int(repeat),
		Seed:         uint64(seed),
		MaxDepth:     int(maxDepth),
		Workers:      max(1, int(workers)),
	}
	if method != nil {
		cfg.Method = C.GoString(method)
	}
	// NULL bounds fall back to the data bounds
	if xminPtr != nil {
		if cfg.Xmin, err = copyDoubles(xminPtr, int(cols)); err != nil {
			setLastError(err)
			return 0
		}
	}
	if xmaxPtr != nil {
		if cfg.Xmax, err = copyDoubles(xmaxPtr, int(cols)); err != nil {
			setLastError(err)
			return 0
		}
	}

	finder, err := bsl.NewBoundaryFinderXY(x, y, cfg)
	if err != nil {
		setLastError(err)
		return 0
	}
	if err := finder.FitContext(context.Background()); err != nil {
		setLastError(err)
		return 0
	}
	result := finder.Result()
	return C.ulonglong(storeResult(&result))
}

//export BoundarySize
func BoundarySize(handle C.ulonglong) C.int {
	setLastError(nil)
	result, err := fetchResult(uint64(handle))
	if err != nil {
		setLastError(err)
		return -1
	}
	return C.int(len(result.Points))
}

//export BoundaryDims
func BoundaryDims(handle C.ulonglong) C.int {
	setLastError(nil)
	result, err := fetchResult(uint64(handle))
	if err != nil {
		setLastError(err)
		return -1
	}
	return C.int(result.Box.Dims())
}

//export BoundarySeed
func BoundarySeed(handle C.ulonglong) C.ulonglong {
	setLastError(nil)
	result, err := fetchResult(uint64(handle))
	if err != nil {
		setLastError(err)
		return 0
	}
	return C.ulonglong(result.Seed)
}

//export CopyBoundary
func CopyBoundary(handle C.ulonglong, outputPtr *C.double, length C.int) C.int {
	setLastError(nil)
	result, err := fetchResult(uint64(handle))
	if err != nil {
		setLastError(err)
		return 1
	}

	need := len(result.Points) * result.Box.Dims()
	if int(length) < need {
		setLastError(errors.New("output buffer is too small"))
		return 2
	}
	outSlice, err := cDoubles(outputPtr, need)
	if err != nil {
		setLastError(err)
		return 3
	}
	for p, point := range result.Points {
		copy(outSlice[p*len(point):], point)
	}
	return 0
}

//export SaveBoundary
func SaveBoundary(handle C.ulonglong, path *C.char) C.int {
	setLastError(nil)
	result, err := fetchResult(uint64(handle))
	if err != nil {
		setLastError(err)
		return 1
	}
	if err := result.Save(C.GoString(path)); err != nil {
		setLastError(err)
		return 2
	}
	return 0
}

//export LoadBoundary
func LoadBoundary(path *C.char) C.ulonglong {
	setLastError(nil)
	result, err := bsl.LoadResult(C.GoString(path))
	if err != nil {
		setLastError(err)
		return 0
	}
	return C.ulonglong(storeResult(&result))
}

//export GetLastError
func GetLastError() *C.char {
	errStr := getLastError()
	if errStr == "" {
		return nil
	}
	return C.CString(errStr)
}

//export FreeCString
func FreeCString(str *C.char) {
	if str != nil {
		C.free(unsafe.Pointer(str))
	}
}

func main() {}
