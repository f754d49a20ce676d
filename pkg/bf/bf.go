package bf

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"nickandperla.net/bf/internal/parser"
	"nickandperla.net/bf/internal/programs"
	"nickandperla.net/bf/internal/store"
	"nickandperla.net/bf/internal/stream"
	"nickandperla.net/bf/internal/vm"
)

// Program is a compiled, reusable Brainfuck program.
type Program = vm.Program

// Step describes one instruction of a stepped run.
type Step = vm.Step

// StepFunc is called before each instruction of a stepped run.
type StepFunc = vm.StepFunc

// Error types returned by compilation and execution.
type (
	SyntaxError      = parser.SyntaxError
	OutOfRangeError  = vm.OutOfRangeError
	StreamStateError = stream.StreamStateError
)

// ErrHalt stops a stepped run without error.
var ErrHalt = vm.ErrHalt

// ErrNotFound is returned when a named program is neither stored nor a sample.
var ErrNotFound = errors.New("program not found")

// ErrNoStore is returned by store operations on a Runtime without a store.
var ErrNoStore = errors.New("no program store configured")

// Compile compiles Brainfuck source.
func Compile(source string, opts ...CompileOption) (*Program, error) {
	return parser.Compile(source, opts...)
}

// Run compiles source and runs it on a fresh tape of DefaultTapeSize cells.
func Run(source string, in io.Reader, out io.Writer) error {
	r := New(WithInput(in), WithOutput(out))
	defer r.Close()
	return r.Run(source)
}

// Runtime compiles and runs programs against one tape and one pair of
// console streams. It is not safe for concurrent use.
type Runtime struct {
	store    store.Store
	storeErr error // Why WithSQLiteStore left store unset
	tapeSize int
	traceDir string
	strict   bool
	input    io.Reader
	output   io.Writer

	tape []int32
	in   *stream.ConsoleReader
	out  *stream.ConsoleWriter
}

// New creates a new runtime with the given options.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		tapeSize: DefaultTapeSize,
		input:    os.Stdin,
		output:   os.Stdout,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.tapeSize <= 0 {
		r.tapeSize = DefaultTapeSize
	}
	if r.input == nil {
		r.input = strings.NewReader("")
	}
	if r.output == nil {
		r.output = io.Discard
	}
	r.tape = make([]int32, r.tapeSize)
	r.in, r.out = stream.NewConsole(r.input, r.output)
	return r
}

// Tape returns the runtime's memory tape. Cells persist between runs.
func (r *Runtime) Tape() []int32 {
	return r.tape
}

// Reset clears every cell of the tape.
func (r *Runtime) Reset() {
	clear(r.tape)
}

// Compile compiles source with the runtime's compile settings.
func (r *Runtime) Compile(source string) (*Program, error) {
	return parser.Compile(source, r.compileOptions()...)
}

func (r *Runtime) compileOptions() []CompileOption {
	var opts []CompileOption
	if r.traceDir != "" {
		opts = append(opts, parser.WithTraceDir(r.traceDir))
	}
	if r.strict {
		opts = append(opts, parser.WithStrictBrackets())
	}
	return opts
}

// Execute runs a compiled program on the runtime's tape and streams.
func (r *Runtime) Execute(p *Program) error {
	err := p.Execute(r.tape, r.in, r.out)
	if ferr := r.out.Flush(); err == nil {
		err = ferr
	}
	return err
}

// StepExecute runs a compiled program, calling fn before every instruction.
func (r *Runtime) StepExecute(p *Program, fn StepFunc) error {
	err := p.Step(r.tape, r.in, r.out, func(s Step) error {
		if err := r.out.Flush(); err != nil {
			return err
		}
		return fn(s)
	})
	if ferr := r.out.Flush(); err == nil {
		err = ferr
	}
	return err
}

// Run compiles and executes source.
func (r *Runtime) Run(source string) error {
	p, err := r.Compile(source)
	if err != nil {
		return err
	}
	return r.Execute(p)
}

// Save stores a program's source under name.
func (r *Runtime) Save(name, source string) error {
	if r.store == nil {
		if r.storeErr != nil {
			return fmt.Errorf("save %s: %w", name, r.storeErr)
		}
		return ErrNoStore
	}
	if _, err := r.Compile(source); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return r.store.Put(name, source)
}

// Load returns the source of a stored program, falling back to the
// embedded samples.
func (r *Runtime) Load(name string) (string, error) {
	if r.store != nil {
		src, ok, err := r.store.Get(name)
		if err != nil {
			return "", err
		}
		if ok {
			return src, nil
		}
	}
	if src, ok := programs.Get(name); ok {
		return src, nil
	}
	return "", fmt.Errorf("%s: %w", name, ErrNotFound)
}

// RunStored loads a program by name and runs it.
func (r *Runtime) RunStored(name string) error {
	src, err := r.Load(name)
	if err != nil {
		return err
	}
	return r.Run(src)
}

// Programs lists stored program names followed by the embedded samples
// not shadowed by a stored program.
func (r *Runtime) Programs() ([]string, error) {
	var names []string
	seen := make(map[string]bool)
	if r.store != nil {
		stored, err := r.store.List()
		if err != nil {
			return nil, err
		}
		for _, name := range stored {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, name := range programs.Names() {
		if !seen[name] {
			names = append(names, name)
		}
	}
	return names, nil
}

// RunStore records benchmark runs.
type RunStore = store.RunStore

// BenchRun is one recorded benchmark.
type BenchRun = store.Run

// RunStore returns the store's benchmark history, or nil.
func (r *Runtime) RunStore() RunStore {
	rs, _ := r.store.(store.RunStore)
	return rs
}

// Close flushes output and releases the store.
func (r *Runtime) Close() error {
	var err error
	if r.out != nil {
		err = r.out.Close()
	}
	if r.store != nil {
		if serr := r.store.Close(); err == nil {
			err = serr
		}
	}
	return err
}
