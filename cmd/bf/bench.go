package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"nickandperla.net/bf/pkg/bf"
)

// printBench reports a benchmark and the previous runs of the same program.
func printBench(w io.Writer, run bf.BenchRun, history bf.RunStore) {
	fmt.Fprintf(w, "%s: %s iterations, %s of output each\n",
		run.Name, humanize.Comma(int64(run.Iterations)), humanize.Bytes(uint64(run.Output)))
	fmt.Fprintf(w, "  total %s, %s per iteration\n", run.Elapsed, run.PerIteration())

	if history == nil {
		return
	}
	runs, err := history.Runs(run.Name, 6)
	if err != nil || len(runs) < 2 {
		return
	}
	fmt.Fprintln(w, "  previous:")
	for _, prev := range runs[1:] {
		fmt.Fprintf(w, "    %s per iteration (%s)\n", prev.PerIteration(), humanize.Time(prev.Ts))
	}
}
