package bsl

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"
)

//Result is the outcome of a boundary search together with everything needed to reproduce it.
type Result struct {
	Config Config      `json:"config"`
	Seed   uint64      `json:"seed"`
	Box    Box         `json:"box"`
	Points [][]float64 `json:"points"`
	Stats  Stats       `json:"stats"`
	Trace  *Trace      `json:"trace,omitempty"`
}

//Result collects the current state of the finder.
func (bf *BoundaryFinder) Result() Result {
	cfg := bf.cfg
	cfg.Seed = bf.seed
	return Result{
		Config: cfg,
		Seed:   bf.seed,
		Box:    bf.box,
		Points: bf.coords.Points(),
		Stats:  bf.stats,
		Trace:  bf.trace,
	}
}

//FindBoundary runs a complete search over coordinate rows x and raw labels y.
func FindBoundary(ctx context.Context, x [][]float64, y []float64, cfg Config) (Result, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return Result{}, err
	}
	data, err := NewDatasetFromRows(x, y, cfg.Relabel)
	if err != nil {
		return Result{}, err
	}
	bf, err := NewBoundaryFinder(data, cfg)
	if err != nil {
		return Result{}, err
	}
	if err := bf.FitContext(ctx); err != nil {
		return bf.Result(), err
	}
	return bf.Result(), nil
}

//Matrix returns the points as matrix rows, or nil when there are none.
func (r Result) Matrix() *mat.Dense {
	if len(r.Points) == 0 {
		return nil
	}
	m := mat.NewDense(len(r.Points), len(r.Points[0]), nil)
	for i, p := range r.Points {
		m.SetRow(i, p)
	}
	return m
}

//Save writes the result as indented JSON.
func (r Result) Save(filename string) error {
	dest, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("bsl: can't open file %s to write: %w", filename, err)
	}
	defer func() { HandleError(dest.Close()) }()

	resultByteRepr, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("bsl: encode result: %w", err)
	}
	_, err = dest.Write(resultByteRepr)
	return err
}

//LoadResult reads a result written by Save.
func LoadResult(filename string) (result Result, err error) {
	source, err := os.Open(filename)
	if err != nil {
		return Result{}, fmt.Errorf("bsl: open result %s: %w", filename, err)
	}
	defer func() { HandleError(source.Close()) }()

	decoder := json.NewDecoder(source)
	if err := decoder.Decode(&result); err != nil {
		return Result{}, fmt.Errorf("bsl: decode result %s: %w", filename, err)
	}
	return result, nil
}
