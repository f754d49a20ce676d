package bf

import (
	"bytes"
	"fmt"
	"time"

	"nickandperla.net/bf/internal/store"
	"nickandperla.net/bf/internal/stream"
)

// Bench compiles source once and executes it iterations times against a
// zeroed tape and empty input, clearing the tape and output buffer between
// runs. Every run must reproduce the first run's output. The result is
// recorded in the runtime's store when it keeps run history.
func (r *Runtime) Bench(name, source string, iterations, outputCapacity int) (BenchRun, error) {
	if iterations <= 0 {
		return BenchRun{}, fmt.Errorf("bench %s: iterations must be positive", name)
	}

	p, err := r.Compile(source)
	if err != nil {
		return BenchRun{}, err
	}

	memory := make([]int32, r.tapeSize)
	input := stream.NewMemoryReader("")
	output := stream.NewMemoryWriter(outputCapacity)

	var first []byte
	start := time.Now()
	for i := 0; i < iterations; i++ {
		if err := p.Execute(memory, input, output); err != nil {
			return BenchRun{}, fmt.Errorf("bench %s: iteration %d: %w", name, i, err)
		}
		if i == 0 {
			first = output.Bytes()
		} else if output.Len() != len(first) || !bytes.Equal(first, output.Bytes()) {
			return BenchRun{}, fmt.Errorf("bench %s: iteration %d produced different output", name, i)
		}
		clear(memory)
		output.Reset()
		input.Reset()
	}
	run := store.Run{
		Name:       name,
		Iterations: iterations,
		Elapsed:    time.Since(start),
		Output:     len(first),
		Ts:         time.Now().UTC(),
	}

	if rs := r.RunStore(); rs != nil {
		if err := rs.RecordRun(run); err != nil {
			return run, fmt.Errorf("bench %s: record: %w", name, err)
		}
	}
	log.Infof("bench %s: %d iterations in %s", name, iterations, run.Elapsed)
	return run, nil
}
