package main

import (
	"fmt"
	"io"
	"time"

	"github.com/pingcap/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/randomizedcoder/tsqueue/internal/queue"
)

func init() {
	benchCmd.Flags().IntP("iterations", "n", 10_000_000, "Number of push+pop iterations per strategy")
	benchCmd.Flags().Int("size", 1024, "Capacity for bounded strategies")
	viper.BindPFlag("iterations", benchCmd.Flags().Lookup("iterations"))
	viper.BindPFlag("benchSize", benchCmd.Flags().Lookup("size"))
}

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Time single-goroutine push+pop for each strategy",
	RunE: func(cmd *cobra.Command, args []string) error {
		n := viper.GetInt("iterations")
		size := viper.GetInt("benchSize")
		if n <= 0 {
			return errors.Errorf("iterations must be greater than zero, got %d", n)
		}
		return runBench(cmd.OutOrStdout(), n, size)
	},
}

type benchResult struct {
	name string
	dur  time.Duration
}

func (r benchResult) perOp(n int) float64 {
	return float64(r.dur.Nanoseconds()) / float64(n)
}

func timePushPop(q queue.Queue[int], n int) time.Duration {
	start := time.Now()
	for i := 0; i < n; i++ {
		q.TryPush(i)
		q.TryPop()
	}
	return time.Since(start)
}

func runBench(w io.Writer, n, size int) error {
	sharded, err := queue.NewSharded[int](size, 1)
	if err != nil {
		return errors.Trace(err)
	}
	strategies := []struct {
		name string
		q    queue.Queue[int]
	}{
		{"TSQueue", queue.New[int]()},
		{"Channel", queue.NewChannel[int](size)},
		{"RingBuffer", queue.NewRingBuffer[int](size)},
		{"Sharded", sharded},
	}

	fmt.Fprintf(w, "Benchmarking queue strategies (%d iterations, size=%d)\n", n, size)
	fmt.Fprintln(w, "─────────────────────────────────────────────────")

	results := make([]benchResult, 0, len(strategies))
	for _, s := range strategies {
		results = append(results, benchResult{name: s.name, dur: timePushPop(s.q, n)})
	}

	base := results[0].perOp(n)
	fmt.Fprintf(w, "\nResults (push + pop per iteration):\n")
	for _, r := range results {
		fmt.Fprintf(w, "  %-11s %v (%.2f ns/op, %.2fx vs TSQueue)\n", r.name+":", r.dur, r.perOp(n), base/r.perOp(n))
	}

	fmt.Fprintf(w, "\nThroughput (theoretical max):\n")
	for _, r := range results {
		fmt.Fprintf(w, "  %-11s %.2f M ops/sec\n", r.name+":", 1000/r.perOp(n))
	}
	return nil
}
