package bsl

import (
	"fmt"
	"testing"
)

func BenchmarkFindBoundary(b *testing.B) {
	for _, dims := range []int{2, 4, 6} {
		data := circleData(b, 2000, dims)
		for _, workers := range []int{1, 4} {
			b.Run(fmt.Sprintf("dims=%d/workers=%d", dims, workers), func(b *testing.B) {
				cfg := DefaultConfig()
				cfg.Method = MethodWeighted
				cfg.Seed = 1
				cfg.Workers = workers
				for i := 0; i < b.N; i++ {
					bf, err := NewBoundaryFinder(data, cfg)
					if err != nil {
						b.Fatal(err)
					}
					if err := bf.Fit(); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkEnumerate(b *testing.B) {
	data := circleData(b, 5000, 8)
	box := Box{Min: make([]float64, 8), Max: make([]float64, 8)}
	for q := range box.Min {
		box.Min[q], box.Max[q] = -1, 1
	}
	split := NewSplitter(0.2, 1).Split(box)
	for _, workers := range []int{1, 2, 8} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				Enumerate(split, data, workers)
			}
		})
	}
}
