package bsl

import (
	"context"
	"fmt"
	"log"
	"time"

	"gonum.org/v1/gonum/mat"
)

//Stats counts what a boundary search did.
type Stats struct {
	Descents  int `json:"descents"`
	Estimated int `json:"estimated"`
	Adjacent  int `json:"adjacent"`
	Empty     int `json:"empty"`
	Truncated int `json:"truncated"`
	Deepest   int `json:"deepest"`
}

//BoundaryFinder recursively partitions a box into orthants and collects points on the
//boundary between the -1 and +1 classes.
type BoundaryFinder struct {
	cfg      Config
	seed     uint64
	data     Dataset
	box      Box
	method   BoundaryFindMethod
	splitter *Splitter
	coords   *Collector
	stats    Stats
	trace    *Trace
}

//NewBoundaryFinderXY builds the dataset from coordinates and raw labels, relabelling them
//when cfg.Relabel is set, and creates a finder for it.
func NewBoundaryFinderXY(x *mat.Dense, y []float64, cfg Config) (*BoundaryFinder, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	data, err := NewDataset(x, y, cfg.Relabel)
	if err != nil {
		return nil, err
	}
	return NewBoundaryFinder(data, cfg)
}

//NewBoundaryFinder creates a finder over an already labelled dataset. The global box is
//cfg.Xmin/cfg.Xmax where given and the data bounds otherwise.
func NewBoundaryFinder(data Dataset, cfg Config) (*BoundaryFinder, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	if data.Len() == 0 {
		return nil, fmt.Errorf("bsl: no points to search: %w", ErrEmptyDataset)
	}
	n := data.Dims()
	if n > MaxDims {
		return nil, fmt.Errorf("bsl: %d dimensions, at most %d are supported: %w", n, MaxDims, ErrInvalidConfig)
	}

	xmin, xmax := data.Bounds()
	if len(cfg.Xmin) > 0 {
		xmin = cfg.Xmin
	}
	if len(cfg.Xmax) > 0 {
		xmax = cfg.Xmax
	}
	if len(xmin) != n || len(xmax) != n {
		return nil, fmt.Errorf("bsl: box has %d/%d bounds for %d-dimensional data: %w", len(xmin), len(xmax), n, ErrDimensionMismatch)
	}
	box, err := NewBox(xmin, xmax)
	if err != nil {
		return nil, err
	}

	method, err := NewBoundaryFindMethod(cfg.Method, cfg.PointsPerDim)
	if err != nil {
		return nil, err
	}

	if err := CheckScale(n, data.Len(), cfg.MaxOrthantWork); err != nil {
		log.Print("warning: ", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	bf := &BoundaryFinder{
		cfg:      cfg,
		seed:     seed,
		data:     data,
		box:      box,
		method:   method,
		splitter: NewSplitter(cfg.RndSplit, seed),
		coords:   NewCollector(n),
	}
	if cfg.Trace {
		bf.trace = &Trace{}
	}
	return bf, nil
}

//Fit runs the descent from the global box Repeat times.
func (bf *BoundaryFinder) Fit() error {
	return bf.FitContext(context.Background())
}

//FitContext is Fit with cancellation. Points found before ctx is done are kept.
func (bf *BoundaryFinder) FitContext(ctx context.Context) error {
	for repeat := 0; repeat < bf.cfg.Repeat; repeat++ {
		if bf.cfg.Verbose {
			log.Printf("Repeat number %d\n", repeat+1)
		}
		if err := bf.descend(ctx, bf.box, bf.data, 0, -1); err != nil {
			return err
		}
		if bf.cfg.Verbose {
			log.Printf("%d boundary points after %d descents\n", bf.coords.Len(), bf.stats.Descents)
		}
	}
	return nil
}

//descend splits the box once, recurses into mixed orthants that are too large to estimate
//directly and connects face-adjacent pure orthants of opposite classes.
func (bf *BoundaryFinder) descend(ctx context.Context, box Box, data Dataset, depth, parent int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	bf.stats.Descents++
	bf.stats.Deepest = max(bf.stats.Deepest, depth)

	node := -1
	if bf.trace != nil {
		node = bf.trace.open(parent, depth, box, data.Len())
	}

	split := bf.splitter.Split(box)
	classPositive := make([]Orthant, 0)
	classNegative := make([]Orthant, 0)
	estimated, truncated := 0, 0

	for _, cell := range Enumerate(split, data, bf.cfg.Workers) {
		switch Classify(cell.Data, bf.cfg.Purity) {
		case PurePositive:
			classPositive = append(classPositive, cell.Index)
		case PureNegative:
			classNegative = append(classNegative, cell.Index)
		default:
			if cell.Data.Len() == 0 {
				bf.stats.Empty++
				continue
			}
			if coord, ok := bf.method.FindCoord(cell.Data); ok {
				bf.coords.Add(coord)
				estimated++
				continue
			}
			// a cell that no longer shrinks cannot separate its points
			if depth+1 >= bf.cfg.MaxDepth || (cell.Bounds.Equal(box) && cell.Data.Len() == data.Len()) {
				truncated++
				continue
			}
			if err := bf.descend(ctx, cell.Bounds, cell.Data, depth+1, node); err != nil {
				return err
			}
		}
	}

	emitted := bf.connectNeighbours(split, classPositive, classNegative)

	bf.stats.Estimated += estimated
	bf.stats.Truncated += truncated
	bf.stats.Adjacent += emitted
	if bf.trace != nil {
		bf.trace.Nodes[node].Positive = classPositive
		bf.trace.Nodes[node].Negative = classNegative
		bf.trace.Nodes[node].Estimated = estimated
		bf.trace.Nodes[node].Truncated = truncated
		bf.trace.Nodes[node].Emitted = emitted
	}
	return nil
}

//connectNeighbours emits one point for every face-adjacent pair of a positive and a negative orthant.
func (bf *BoundaryFinder) connectNeighbours(split Split, classPositive, classNegative []Orthant) int {
	emitted := 0
	for _, idxPlus := range classPositive {
		for _, idxMinus := range classNegative {
			dim, ok := idxPlus.SharedFace(idxMinus)
			if !ok {
				continue
			}
			bf.coords.Add(FacePoint(split, min(idxPlus, idxMinus), dim))
			emitted++
		}
	}
	return emitted
}

//FacePoint returns the centre of the face that orthant base shares with its neighbour across
//dimension dim: the midpoint of base in every other dimension and the split point in dim.
func FacePoint(split Split, base Orthant, dim int) []float64 {
	coord := make([]float64, split.Dims())
	for i := range coord {
		k := base.Bit(i)
		coord[i] = (split.At(i, k) + split.At(i, k+1)) / 2
	}
	coord[dim] = split.Point(dim)
	return coord
}

//Coords returns the boundary points collected so far.
func (bf *BoundaryFinder) Coords() [][]float64 {
	return bf.coords.Points()
}

//Matrix returns the boundary points as matrix rows, or nil when there are none.
func (bf *BoundaryFinder) Matrix() *mat.Dense {
	return bf.coords.Matrix()
}

//Stats returns the counters of the search so far.
func (bf *BoundaryFinder) Stats() Stats {
	return bf.stats
}

//Trace returns the recorded descent tree, or nil unless Config.Trace was set.
func (bf *BoundaryFinder) Trace() *Trace {
	return bf.trace
}

//Seed returns the seed actually used for the split randomness.
func (bf *BoundaryFinder) Seed() uint64 {
	return bf.seed
}

//Box returns the global box.
func (bf *BoundaryFinder) Box() Box {
	return bf.box
}

//Dims returns the dimensionality of the data.
func (bf *BoundaryFinder) Dims() int {
	return bf.data.Dims()
}
