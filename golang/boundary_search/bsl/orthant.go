package bsl

import (
	"math/bits"
	"sync"

	"gorgonia.org/tensor"
)

//MaxDims is the largest dimensionality whose orthants can be enumerated.
const MaxDims = 24

//Orthant is the N-bit index of a sub-box of a split: bit i = 0 selects [min_i, split_i]
//and bit i = 1 selects [split_i, max_i].
type Orthant uint32

//OrthantCount returns 2^dims.
func OrthantCount(dims int) int {
	return 1 << dims
}

//Bit returns the bit of dimension dim.
func (o Orthant) Bit(dim int) int {
	return int(o>>dim) & 1
}

//Hamming returns the number of dimensions in which the two orthants lie on different sides.
func (o Orthant) Hamming(other Orthant) int {
	return bits.OnesCount32(uint32(o ^ other))
}

//SharedFace returns the only dimension in which o and other differ. ok is false unless the
//orthants are face-adjacent, i.e. their Hamming distance is exactly one.
func (o Orthant) SharedFace(other Orthant) (dim int, ok bool) {
	diff := uint32(o ^ other)
	if bits.OnesCount32(diff) != 1 {
		return -1, false
	}
	return bits.TrailingZeros32(diff), true
}

//OrthantCell is one sub-box of a split together with the points it contains.
type OrthantCell struct {
	Index  Orthant
	Bounds Box
	Data   Dataset
}

//orthantTable precomputes the bounds of every orthant of the split. The tensor has shape
//(2^N, N, 2); element (idx, dim, 0) is the lower and (idx, dim, 1) the upper bound.
func orthantTable(split Split) *tensor.Dense {
	n := split.Dims()
	count := OrthantCount(n)
	table := tensor.New(tensor.WithShape(count, n, 2), tensor.Of(tensor.Float64))

	for it := AllOrthants(n); it.HasNext(); {
		idx := it.GetNext()
		for dim := 0; dim < n; dim++ {
			k := idx.Bit(dim)
			HandleError(table.SetAt(split.At(dim, k), int(idx), dim, 0))
			HandleError(table.SetAt(split.At(dim, k+1), int(idx), dim, 1))
		}
	}
	return table
}

//cellBounds extracts the box of orthant idx from the table.
func cellBounds(table *tensor.Dense, idx Orthant, n int) Box {
	box := Box{Min: make([]float64, n), Max: make([]float64, n)}
	for dim := 0; dim < n; dim++ {
		lo, err := table.At(int(idx), dim, 0)
		HandleError(err)
		hi, err := table.At(int(idx), dim, 1)
		HandleError(err)
		box.Min[dim] = lo.(float64)
		box.Max[dim] = hi.(float64)
	}
	return box
}

//flatDims returns the mask of dimensions in which the split has zero width.
func flatDims(split Split) Orthant {
	var mask Orthant
	for dim := 0; dim < split.Dims(); dim++ {
		if split.At(dim, 0) == split.At(dim, 2) {
			mask |= 1 << dim
		}
	}
	return mask
}

//fillCells filters data into the cells the iterator yields.
func fillCells(cells []OrthantCell, it OrthantIterable, data Dataset, flat Orthant) {
	for it.HasNext() {
		idx := it.GetNext()
		if idx&flat != 0 {
			// points of a zero-width dimension go to the lower side only
			cells[idx].Data = Dataset{dims: data.Dims()}
			continue
		}
		cells[idx].Data = data.Subset(cells[idx].Bounds)
	}
}

//Enumerate returns the 2^N orthants of the split in index order, each with the subset of data
//it contains. Points on a split plane are included in both neighbouring orthants, except in a
//dimension of zero width, where every point belongs to the lower orthant. Filtering is spread
//over workers goroutines when workers > 1; the result does not depend on workers.
func Enumerate(split Split, data Dataset, workers int) []OrthantCell {
	n := split.Dims()
	table := orthantTable(split)
	all := AllOrthants(n)
	cells := make([]OrthantCell, all.Len())
	for all.HasNext() {
		idx := all.GetNext()
		cells[idx] = OrthantCell{Index: idx, Bounds: cellBounds(table, idx, n)}
	}
	flat := flatDims(split)

	if workers <= 1 || len(cells) == 1 {
		fillCells(cells, AllOrthants(n), data, flat)
		return cells
	}

	// worker w fills every workers-th cell starting at w
	var wg sync.WaitGroup
	for w := 0; w < min(workers, len(cells)); w++ {
		wg.Add(1)
		go func(it OrthantIterable) {
			defer wg.Done()
			fillCells(cells, it, data, flat)
		}(NewRange(w, len(cells), workers))
	}
	wg.Wait()
	return cells
}
