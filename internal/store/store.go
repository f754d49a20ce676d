// Package store provides persistence for named Brainfuck programs and
// benchmark results.
package store

import "time"

// Store is the interface for program persistence.
type Store interface {
	// Get retrieves a program's source by name. ok is false if not found.
	Get(name string) (source string, ok bool, err error)
	// Put stores a program by name, overwriting if it exists.
	Put(name, source string) error
	// Delete removes a program and its run history.
	Delete(name string) error
	// List returns all program names in sorted order.
	List() ([]string, error)
	// Close releases resources.
	Close() error
}

// Run is one recorded benchmark of a stored or ad-hoc program.
type Run struct {
	Name       string
	Iterations int
	Elapsed    time.Duration // Total time across all iterations
	Output     int           // Bytes produced by one iteration
	Ts         time.Time
}

// PerIteration returns the mean time of one iteration.
func (r Run) PerIteration() time.Duration {
	if r.Iterations == 0 {
		return 0
	}
	return r.Elapsed / time.Duration(r.Iterations)
}

// RunStore extends Store with benchmark history.
type RunStore interface {
	RecordRun(run Run) error
	// Runs returns recorded runs for name, newest first. limit <= 0 means all.
	Runs(name string, limit int) ([]Run, error)
}
