package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarstars/boundary_search/golang/boundary_search/bsl"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleResult() bsl.Result {
	cfg := bsl.DefaultConfig()
	cfg.Method = bsl.MethodWeighted
	cfg.Seed = 17
	cfg.Xmin = []float64{-1, -1}
	cfg.Xmax = []float64{1, 1}
	return bsl.Result{
		Config: cfg,
		Seed:   17,
		Box:    bsl.Box{Min: []float64{-1, -1}, Max: []float64{1, 1}},
		Points: [][]float64{{0.5, 0.25}, {-0.125, 0.6}, {0.1, -0.7}},
		Stats:  bsl.Stats{Descents: 9, Estimated: 2, Adjacent: 1, Empty: 3, Deepest: 4},
	}
}

func TestConverterRoundTrip(t *testing.T) {
	values := []float64{0, -1.5, 3.25e-9, 1e300}
	back, err := BytesToFloat64Slice(Float64SliceToBytes(values))
	require.NoError(t, err)
	assert.Equal(t, values, back)

	_, err = BytesToFloat64Slice([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestSaveLoadRun(t *testing.T) {
	db := openTestDB(t)
	result := sampleResult()

	id, err := db.SaveRun("circle", result)
	require.NoError(t, err)

	loaded, err := db.LoadRun(id)
	require.NoError(t, err)
	assert.Equal(t, result.Config, loaded.Config)
	assert.Equal(t, result.Seed, loaded.Seed)
	assert.Equal(t, result.Box, loaded.Box)
	assert.Equal(t, result.Points, loaded.Points)
	assert.Equal(t, result.Stats, loaded.Stats)
	assert.Nil(t, loaded.Trace)

	_, err = db.LoadRun(id + 100)
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestSaveRunWithoutPoints(t *testing.T) {
	db := openTestDB(t)
	result := sampleResult()
	result.Points = nil

	id, err := db.SaveRun("empty", result)
	require.NoError(t, err)
	loaded, err := db.LoadRun(id)
	require.NoError(t, err)
	assert.Empty(t, loaded.Points)
}

func TestListAndDeleteRuns(t *testing.T) {
	db := openTestDB(t)
	first, err := db.SaveRun("first", sampleResult())
	require.NoError(t, err)
	second, err := db.SaveRun("second", sampleResult())
	require.NoError(t, err)

	runs, err := db.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].ID)
	assert.Equal(t, "second", runs[0].Name)
	assert.Equal(t, first, runs[1].ID)
	assert.Equal(t, bsl.MethodWeighted, runs[1].Method)
	assert.Equal(t, uint64(17), runs[1].Seed)
	assert.Equal(t, 2, runs[1].Dims)
	assert.Equal(t, 3, runs[1].PointCount)
	assert.Equal(t, 9, runs[1].Stats.Descents)
	assert.NotEmpty(t, runs[1].CreatedAt)

	require.NoError(t, db.DeleteRun(first))
	_, err = db.LoadRun(first)
	assert.ErrorIs(t, err, ErrRunNotFound)
	assert.ErrorIs(t, db.DeleteRun(first), ErrRunNotFound)

	runs, err = db.ListRuns()
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestReopenKeepsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	db, err := Open(path)
	require.NoError(t, err)
	id, err := db.SaveRun("kept", sampleResult())
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()
	loaded, err := db.LoadRun(id)
	require.NoError(t, err)
	assert.Len(t, loaded.Points, 3)
}
