package store

import (
	"encoding/binary"
	"fmt"
	"math"
)

//Float64SliceToBytes packs values as little-endian float64.
func Float64SliceToBytes(values []float64) []byte {
	data := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(data[8*i:], math.Float64bits(v))
	}
	return data
}

//BytesToFloat64Slice unpacks data written by Float64SliceToBytes.
func BytesToFloat64Slice(data []byte) ([]float64, error) {
	if len(data)%8 != 0 {
		return nil, fmt.Errorf("store: %d bytes is not a whole number of float64 values", len(data))
	}
	values := make([]float64, len(data)/8)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[8*i:]))
	}
	return values, nil
}
