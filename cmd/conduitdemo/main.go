package main

import (
	"context"
	"fmt"
	"time"

	"github.com/baxromumarov/conduit"
	"github.com/baxromumarov/conduit/conduitx"
)

func fetchA(ctx context.Context) (string, error) {
	select {
	case <-time.After(30 * time.Millisecond):
		return "A", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func fetchB(ctx context.Context) (string, error) {
	select {
	case <-time.After(10 * time.Millisecond):
		return "B", nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	now := time.Now()

	winner, err := conduit.Race(ctx, fetchA, fetchB)
	if err != nil {
		fmt.Println("race failed:", err)
		return
	}
	fmt.Println("race winner:", winner)

	pool := conduit.NewWorkerPool(ctx, 4)
	for i := 0; i < 20; i++ {
		i := i
		_ = pool.Submit(func() error {
			if i == 13 {
				return fmt.Errorf("task %d unlucky", i)
			}
			return nil
		})
	}
	if err := pool.Close(); err != nil {
		fmt.Println("pool errors:", err)
	}
	fmt.Printf("pool stats: %+v\n", pool.Stats())

	nums := conduitx.FromSlice(ctx, []int{1, 2, 3, 4, 5, 6, 7, 8})
	evens := conduitx.Filter(ctx, nums, func(v int) bool { return v%2 == 0 })
	doubled := conduitx.Map(ctx, evens, func(v int) int { return v * 2 })
	sum := 0
	_ = conduitx.ForEach(ctx, doubled, func(v int) { sum += v })
	fmt.Println("sum of doubled evens:", sum)

	fmt.Println("elapsed:", time.Since(now))
}
