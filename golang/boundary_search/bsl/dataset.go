package bsl

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

//Dataset holds labelled points as rows of a dense matrix: the first Dims() columns are
//coordinates and the last column is the label (-1 or +1). An empty dataset has a nil matrix.
type Dataset struct {
	Points *mat.Dense
	dims   int
}

//NewDataset unites coordinates x (one row per point) and labels y. When relabel is true the
//two distinct raw labels are mapped in ascending order to -1 and +1; otherwise the labels
//must already be -1 or +1.
func NewDataset(x *mat.Dense, y []float64, relabel bool) (Dataset, error) {
	if x == nil {
		return Dataset{}, fmt.Errorf("bsl: nil coordinates: %w", ErrEmptyDataset)
	}
	h, w := x.Dims()
	if h == 0 || w == 0 {
		return Dataset{}, fmt.Errorf("bsl: %dx%d coordinates: %w", h, w, ErrEmptyDataset)
	}
	if len(y) != h {
		return Dataset{}, fmt.Errorf("bsl: %d labels for %d points: %w", len(y), h, ErrDimensionMismatch)
	}

	labels := y
	if relabel {
		var err error
		if labels, err = Relabel(y); err != nil {
			return Dataset{}, err
		}
	} else if err := checkLabels(y); err != nil {
		return Dataset{}, err
	}

	points := mat.NewDense(h, w+1, nil)
	points.Slice(0, h, 0, w).(*mat.Dense).Copy(x)
	points.SetCol(w, labels)
	return Dataset{Points: points, dims: w}, nil
}

//NewDatasetFromRows builds a dataset from a slice of coordinate rows.
func NewDatasetFromRows(x [][]float64, y []float64, relabel bool) (Dataset, error) {
	if len(x) == 0 {
		return Dataset{}, fmt.Errorf("bsl: no coordinate rows: %w", ErrEmptyDataset)
	}
	w := len(x[0])
	if w == 0 {
		return Dataset{}, fmt.Errorf("bsl: zero-width coordinate rows: %w", ErrDimensionMismatch)
	}
	flat := make([]float64, 0, len(x)*w)
	for p, row := range x {
		if len(row) != w {
			return Dataset{}, fmt.Errorf("bsl: row %d has %d coordinates, want %d: %w", p, len(row), w, ErrDimensionMismatch)
		}
		flat = append(flat, row...)
	}
	return NewDataset(mat.NewDense(len(x), w, flat), y, relabel)
}

//NewDatasetFromColumn builds a one-dimensional dataset.
func NewDatasetFromColumn(x []float64, y []float64, relabel bool) (Dataset, error) {
	if len(x) == 0 {
		return Dataset{}, fmt.Errorf("bsl: no coordinates: %w", ErrEmptyDataset)
	}
	return NewDataset(mat.NewDense(len(x), 1, append([]float64(nil), x...)), y, relabel)
}

//Relabel maps the two distinct values of y to -1 (the smaller) and +1 (the larger).
func Relabel(y []float64) ([]float64, error) {
	distinct := make(map[float64]struct{})
	for _, v := range y {
		distinct[v] = struct{}{}
	}
	if len(distinct) != 2 {
		return nil, fmt.Errorf("bsl: found %d distinct labels: %w", len(distinct), ErrNonBinaryTarget)
	}
	values := make([]float64, 0, 2)
	for v := range distinct {
		values = append(values, v)
	}
	sort.Float64s(values)

	out := make([]float64, len(y))
	for p, v := range y {
		if v == values[0] {
			out[p] = -1
		} else {
			out[p] = 1
		}
	}
	return out, nil
}

func checkLabels(y []float64) error {
	for p, v := range y {
		if v != -1 && v != 1 {
			return fmt.Errorf("bsl: label[%d]=%g: %w", p, v, ErrInvalidLabel)
		}
	}
	return nil
}

//Len returns the number of points.
func (d Dataset) Len() int {
	if d.Points == nil {
		return 0
	}
	h, _ := d.Points.Dims()
	return h
}

//Dims returns the number of coordinates per point.
func (d Dataset) Dims() int {
	return d.dims
}

//Coords returns a read-only view of the coordinates of point p.
func (d Dataset) Coords(p int) []float64 {
	return d.Points.RawRowView(p)[:d.dims]
}

//Label returns the label of point p.
func (d Dataset) Label(p int) float64 {
	return d.Points.At(p, d.dims)
}

//LabelSum returns the signed sum of labels.
func (d Dataset) LabelSum() float64 {
	if d.Len() == 0 {
		return 0
	}
	return floats.Sum(mat.Col(nil, d.dims, d.Points))
}

//Bounds returns the per-dimension minimum and maximum of the coordinates.
func (d Dataset) Bounds() (min, max []float64) {
	min = make([]float64, d.dims)
	max = make([]float64, d.dims)
	for q := 0; q < d.dims; q++ {
		col := mat.Col(nil, q, d.Points)
		min[q] = floats.Min(col)
		max[q] = floats.Max(col)
	}
	return min, max
}

//Subset returns a copy of the points lying in the closed box.
func (d Dataset) Subset(box Box) Dataset {
	keep := make([]int, 0)
	for p := 0; p < d.Len(); p++ {
		if box.Contains(d.Coords(p)) {
			keep = append(keep, p)
		}
	}
	return d.rows(keep)
}

func (d Dataset) rows(keep []int) Dataset {
	if len(keep) == 0 {
		return Dataset{dims: d.dims}
	}
	_, w := d.Points.Dims()
	sub := mat.NewDense(len(keep), w, nil)
	for i, p := range keep {
		sub.SetRow(i, d.Points.RawRowView(p))
	}
	return Dataset{Points: sub, dims: d.dims}
}

//ByLabel returns the coordinates of the points carrying label, one slice per dimension.
func (d Dataset) ByLabel(label float64) [][]float64 {
	columns := make([][]float64, d.dims)
	for p := 0; p < d.Len(); p++ {
		if d.Label(p) != label {
			continue
		}
		for q, v := range d.Coords(p) {
			columns[q] = append(columns[q], v)
		}
	}
	return columns
}

//ReadDataset reads coordinates and labels from two npy files.
func ReadDataset(fileNameX, fileNameY string, relabel bool) (Dataset, error) {
	log.Print("\ttry to load coordinates <", fileNameX, ">")
	x, err := ReadNpy(fileNameX)
	if err != nil {
		return Dataset{}, err
	}
	log.Print("\ttry to load labels <", fileNameY, ">")
	y, err := ReadNpyVector(fileNameY)
	if err != nil {
		return Dataset{}, err
	}
	return NewDataset(x, y, relabel)
}

//ReadNpy reads a one- or two-dimensional npy array. A one-dimensional array becomes a column.
func ReadNpy(fileName string) (*mat.Dense, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("bsl: open %s: %w", fileName, err)
	}
	defer func() { HandleError(f.Close()) }()

	r, err := npyio.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("bsl: read npy header of %s: %w", fileName, err)
	}

	if len(r.Header.Descr.Shape) == 1 {
		var column []float64
		if err := r.Read(&column); err != nil {
			return nil, fmt.Errorf("bsl: read %s: %w", fileName, err)
		}
		if len(column) == 0 {
			return nil, fmt.Errorf("bsl: %s: %w", fileName, ErrEmptyDataset)
		}
		return mat.NewDense(len(column), 1, column), nil
	}

	denseMat := &mat.Dense{}
	if err := r.Read(denseMat); err != nil {
		return nil, fmt.Errorf("bsl: read %s: %w", fileName, err)
	}
	return denseMat, nil
}

//ReadNpyVector reads an npy array of any shape as a flat slice.
func ReadNpyVector(fileName string) ([]float64, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, fmt.Errorf("bsl: open %s: %w", fileName, err)
	}
	defer func() { HandleError(f.Close()) }()

	var values []float64
	if err := npyio.Read(f, &values); err != nil {
		return nil, fmt.Errorf("bsl: read %s: %w", fileName, err)
	}
	return values, nil
}

//WriteNpy stores m as an npy file.
func WriteNpy(fileName string, m *mat.Dense) error {
	dst, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("bsl: create %s: %w", fileName, err)
	}
	defer func() { HandleError(dst.Close()) }()

	if err := npyio.Write(dst, m); err != nil {
		return fmt.Errorf("bsl: write %s: %w", fileName, err)
	}
	return nil
}

//WriteNpyVector stores values as a one-dimensional npy file.
func WriteNpyVector(fileName string, values []float64) error {
	dst, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("bsl: create %s: %w", fileName, err)
	}
	defer func() { HandleError(dst.Close()) }()

	if err := npyio.Write(dst, values); err != nil {
		return fmt.Errorf("bsl: write %s: %w", fileName, err)
	}
	return nil
}
