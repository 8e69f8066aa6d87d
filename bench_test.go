package conduit_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/baxromumarov/conduit"
	"github.com/sourcegraph/conc/pool"
	"golang.org/x/sync/errgroup"
)

// These benchmarks compare WorkerPool and Semaphore against the equivalent
// native, errgroup, and conc constructions, the same three-way comparison
// the teacher ran against native/errgroup/conc alternatives.

func BenchmarkLimited_Native(b *testing.B) {
	for _, n := range []int{100, 1000} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				var wg sync.WaitGroup
				sem := make(chan struct{}, 10)
				for j := 0; j < n; j++ {
					wg.Add(1)
					sem <- struct{}{}
					go func() {
						defer func() { <-sem; wg.Done() }()
					}()
				}
				wg.Wait()
			}
		})
	}
}

func BenchmarkLimited_Errgroup(b *testing.B) {
	for _, n := range []int{100, 1000} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				g, _ := errgroup.WithContext(context.Background())
				g.SetLimit(10)
				for j := 0; j < n; j++ {
					g.Go(func() error { return nil })
				}
				_ = g.Wait()
			}
		})
	}
}

func BenchmarkLimited_ConcPool(b *testing.B) {
	for _, n := range []int{100, 1000} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				p := pool.New().WithMaxGoroutines(10)
				for j := 0; j < n; j++ {
					p.Go(func() {})
				}
				p.Wait()
			}
		})
	}
}

func BenchmarkLimited_Semaphore(b *testing.B) {
	for _, n := range []int{100, 1000} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				sem := conduit.NewSemaphore(10)
				var wg sync.WaitGroup
				for j := 0; j < n; j++ {
					wg.Add(1)
					_ = sem.Acquire(context.Background())
					go func() {
						defer wg.Done()
						defer sem.Release()
					}()
				}
				wg.Wait()
			}
		})
	}
}

func BenchmarkLimited_WorkerPool(b *testing.B) {
	for _, n := range []int{100, 1000} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				p := conduit.NewWorkerPool(context.Background(), 10)
				for j := 0; j < n; j++ {
					_ = p.Submit(func() error { return nil })
				}
				_ = p.Close()
			}
		})
	}
}
