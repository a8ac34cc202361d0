package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"math/rand/v2"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/tarstars/boundary_search/golang/boundary_search/bsl"
	"github.com/tarstars/boundary_search/golang/boundary_search/store"
	"github.com/tarstars/boundary_search/golang/boundary_search/synth"
)

func decodeConfig(srcConfig string, out interface{}) {
	file, err := os.Open(srcConfig)
	bsl.HandleError(err)
	defer func() { bsl.HandleError(file.Close()) }()

	decoder := json.NewDecoder(file)
	bsl.HandleError(decoder.Decode(out))
}

type GenerateConfig struct {
	Surface   string    `json:"surface"`
	Params    []float64 `json:"params"`
	Noise     bool      `json:"noise"`
	Xmin      []float64 `json:"xmin"`
	Xmax      []float64 `json:"xmax"`
	N         int       `json:"n"`
	Seed      uint64    `json:"seed"`
	FileNameX string    `json:"filename_x"`
	FileNameY string    `json:"filename_y"`
}

func generate(srcConfig string) {
	generateConfig := GenerateConfig{Surface: "sphere", N: 1000}
	decodeConfig(srcConfig, &generateConfig)

	seed := generateConfig.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	src := rand.NewPCG(seed, seed+1)

	var (
		x   *mat.Dense
		y   []float64
		err error
	)
	if generateConfig.Noise {
		x, y, err = synth.UniformNoise(generateConfig.Xmin, generateConfig.Xmax, generateConfig.N, src)
	} else {
		surface, serr := synth.NewSurface(generateConfig.Surface, generateConfig.Params)
		bsl.HandleError(serr)
		x, y, err = synth.MakeData(surface, generateConfig.Xmin, generateConfig.Xmax, generateConfig.N, src)
	}
	bsl.HandleError(err)

	bsl.HandleError(bsl.WriteNpy(generateConfig.FileNameX, x))
	bsl.HandleError(bsl.WriteNpyVector(generateConfig.FileNameY, y))
	log.Printf("%d points with seed %d written to %s and %s\n", generateConfig.N, seed, generateConfig.FileNameX, generateConfig.FileNameY)
}

type RunConfig struct {
	FileNameX        string     `json:"filename_x"`
	FileNameY        string     `json:"filename_y"`
	Search           bsl.Config `json:"search"`
	FileNameBoundary string     `json:"filename_boundary"`
	FileNameResult   string     `json:"filename_result"`
	Database         string     `json:"database"`
	RunName          string     `json:"run_name"`
	FileNameTrace    string     `json:"filename_trace"`
	FigureType       string     `json:"figure_type"`
}

func run(srcConfig string) {
	runConfig := RunConfig{Search: bsl.DefaultConfig(), FigureType: "svg"}
	decodeConfig(srcConfig, &runConfig)
	if runConfig.FileNameTrace != "" {
		runConfig.Search.Trace = true
	}

	log.Println("load dataset")
	data, err := bsl.ReadDataset(runConfig.FileNameX, runConfig.FileNameY, runConfig.Search.Relabel)
	bsl.HandleError(err)
	log.Printf("%d points in %d dimensions\n", data.Len(), data.Dims())

	finder, err := bsl.NewBoundaryFinder(data, runConfig.Search)
	bsl.HandleError(err)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	start := time.Now()
	if err := finder.FitContext(ctx); err != nil {
		log.Print("search interrupted, keeping partial result: ", err)
	}
	stats := finder.Stats()
	log.Printf("%d boundary points, %d descents, %d empty, %d truncated, depth %d, seed %d, %v\n",
		len(finder.Coords()), stats.Descents, stats.Empty, stats.Truncated, stats.Deepest, finder.Seed(), time.Since(start))

	result := finder.Result()
	if runConfig.FileNameBoundary != "" {
		if m := result.Matrix(); m != nil {
			bsl.HandleError(bsl.WriteNpy(runConfig.FileNameBoundary, m))
			log.Println("boundary written to", runConfig.FileNameBoundary)
		} else {
			log.Println("no boundary points, nothing written to", runConfig.FileNameBoundary)
		}
	}
	if runConfig.FileNameResult != "" {
		bsl.HandleError(result.Save(runConfig.FileNameResult))
		log.Println("result written to", runConfig.FileNameResult)
	}
	if runConfig.Database != "" {
		db, err := store.Open(runConfig.Database)
		bsl.HandleError(err)
		defer func() { bsl.HandleError(db.Close()) }()
		id, err := db.SaveRun(runConfig.RunName, result)
		bsl.HandleError(err)
		log.Printf("stored as run %d in %s\n", id, runConfig.Database)
	}
	if runConfig.FileNameTrace != "" {
		bsl.HandleError(result.Trace.Render(runConfig.FileNameTrace, runConfig.FigureType))
		log.Println("trace rendered to", runConfig.FileNameTrace)
	}
}

type GraphConfig struct {
	FileNameResult string `json:"filename_result"`
	FigureType     string `json:"figure_type"`
	FileNameFigure string `json:"filename_figure"`
}

func graph(srcConfig string) {
	graphConfig := GraphConfig{FigureType: "svg"}
	decodeConfig(srcConfig, &graphConfig)

	result, err := bsl.LoadResult(graphConfig.FileNameResult)
	bsl.HandleError(err)
	if result.Trace == nil {
		log.Panic("result ", graphConfig.FileNameResult, " has no trace, rerun with \"trace\": true")
	}
	bsl.HandleError(result.Trace.Render(graphConfig.FileNameFigure, graphConfig.FigureType))
}

type PlotConfig struct {
	FileNameX        string `json:"filename_x"`
	FileNameY        string `json:"filename_y"`
	Relabel          bool   `json:"relabel"`
	FileNameBoundary string `json:"filename_boundary"`
	FileNameHTML     string `json:"filename_html"`
	Title            string `json:"title"`
}

func plot(srcConfig string) {
	plotConfig := PlotConfig{Relabel: true, Title: "boundary search"}
	decodeConfig(srcConfig, &plotConfig)

	data, err := bsl.ReadDataset(plotConfig.FileNameX, plotConfig.FileNameY, plotConfig.Relabel)
	bsl.HandleError(err)
	boundary, err := bsl.ReadNpy(plotConfig.FileNameBoundary)
	bsl.HandleError(err)

	bsl.HandleError(renderScatter(plotConfig.Title, data, boundary, plotConfig.FileNameHTML))
	log.Println("plot written to", plotConfig.FileNameHTML)
}

type EvaluateConfig struct {
	FileNameBoundary  string    `json:"filename_boundary"`
	Surface           string    `json:"surface"`
	Params            []float64 `json:"params"`
	FileNameDistances string    `json:"filename_distances"`
}

func evaluate(srcConfig string) {
	evaluateConfig := EvaluateConfig{Surface: "sphere"}
	decodeConfig(srcConfig, &evaluateConfig)

	surface, err := synth.NewSurface(evaluateConfig.Surface, evaluateConfig.Params)
	bsl.HandleError(err)
	boundary, err := bsl.ReadNpy(evaluateConfig.FileNameBoundary)
	bsl.HandleError(err)

	h, _ := boundary.Dims()
	points := make([][]float64, h)
	for p := range points {
		points[p] = boundary.RawRowView(p)
	}
	distances, err := synth.Distances(surface, points)
	bsl.HandleError(err)

	mean, std := stat.MeanStdDev(distances, nil)
	log.Printf("%d points: mean distance %.6f, std %.6f, max %.6f\n", h, mean, std, floats.Max(distances))

	if evaluateConfig.FileNameDistances != "" {
		bsl.HandleError(bsl.WriteNpyVector(evaluateConfig.FileNameDistances, distances))
	}
}

type RunsConfig struct {
	Database string `json:"database"`
	Delete   int64  `json:"delete"`
}

func runs(srcConfig string) {
	var runsConfig RunsConfig
	decodeConfig(srcConfig, &runsConfig)

	db, err := store.Open(runsConfig.Database)
	bsl.HandleError(err)
	defer func() { bsl.HandleError(db.Close()) }()

	if runsConfig.Delete != 0 {
		bsl.HandleError(db.DeleteRun(runsConfig.Delete))
		log.Println("deleted run", runsConfig.Delete)
	}

	stored, err := db.ListRuns()
	bsl.HandleError(err)
	log.Printf("%-5s | %-20s | %-19s | %-8s | %4s | %7s | %8s\n", "id", "name", "created", "method", "dims", "points", "descents")
	for _, r := range stored {
		log.Printf("%-5d | %-20s | %-19s | %-8s | %4d | %7d | %8d\n", r.ID, r.Name, r.CreatedAt, r.Method, r.Dims, r.PointCount, r.Stats.Descents)
	}
}

func main() {
	runMode := flag.String("mode", "run", "you can select either 'generate', 'run', 'graph', 'plot', 'evaluate' or 'runs' modes")
	config := flag.String("config", "boundary_config.json", "a config file for the run of the program")
	memprofile := flag.String("memprofile", "", "write memory profile to `file`")

	flag.Parse()

	mode, ok := map[string]func(string){
		"generate": generate,
		"run":      run,
		"graph":    graph,
		"plot":     plot,
		"evaluate": evaluate,
		"runs":     runs,
	}[*runMode]
	if !ok {
		log.Fatalf("unknown mode %q", *runMode)
	}
	mode(*config)

	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		bsl.HandleError(err)
		defer func() { bsl.HandleError(f.Close()) }()
		runtime.GC()
		if err := pprof.WriteHeapProfile(f); err != nil {
			log.Fatal("could not write memory profile: ", err)
		}
	}
}
