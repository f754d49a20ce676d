// Command bf compiles and runs Brainfuck programs.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"nickandperla.net/bf/internal/config"
	"nickandperla.net/bf/internal/store"
	"nickandperla.net/bf/pkg/bf"
)

type flags struct {
	file       string
	source     string
	example    string
	configPath string
	tape       int
	traceDir   string
	step       bool
	bench      int
	dbPath     string
	save       string
	runName    string
	list       bool
	strict     bool
	disasm     bool
	verbosity  int
}

func parseFlags(args []string) (*flags, error) {
	f := &flags{}
	fs := flag.NewFlagSet("bf", flag.ContinueOnError)
	fs.StringVar(&f.file, "f", "", "Execute Brainfuck file")
	fs.StringVar(&f.source, "e", "", "Execute Brainfuck source string")
	fs.StringVar(&f.example, "example", "", "Run an embedded sample program (cat, fib, hello)")
	fs.StringVar(&f.configPath, "config", config.DefaultPath, "Configuration file")
	fs.IntVar(&f.tape, "tape", 0, "Memory tape size in cells (overrides config)")
	fs.StringVar(&f.traceDir, "trace", "", "Write a debug trace into this directory")
	fs.BoolVar(&f.step, "step", false, "Step through the program one instruction at a time")
	fs.IntVar(&f.bench, "bench", 0, "Benchmark: execute the program N times")
	fs.StringVar(&f.dbPath, "db", "", "SQLite database path (overrides config)")
	fs.StringVar(&f.save, "save", "", "Store the program under this name")
	fs.StringVar(&f.runName, "run", "", "Run a stored program by name")
	fs.BoolVar(&f.list, "list", false, "List stored and sample programs")
	fs.BoolVar(&f.strict, "strict", false, "Reject an unclosed '['")
	fs.BoolVar(&f.disasm, "disasm", false, "Print the compiled instructions instead of running")
	fs.IntVar(&f.verbosity, "v", -1, "Log verbosity (overrides config)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return f, nil
}

// apply layers command-line flags over the configuration file.
func (f *flags) apply(cfg *config.Config) {
	if f.tape > 0 {
		cfg.TapeSize = f.tape
	}
	if f.traceDir != "" {
		cfg.TraceDir = f.traceDir
	}
	if f.dbPath != "" {
		cfg.DB = f.dbPath
	}
	if f.strict {
		cfg.StrictBrackets = true
	}
	if f.verbosity >= 0 {
		cfg.Verbosity = f.verbosity
	}
	if f.bench > 0 {
		cfg.Bench.Iterations = f.bench
	}
}

// needsStore reports whether the command touches the program store.
func (f *flags) needsStore() bool {
	return f.dbPath != "" || f.save != "" || f.runName != "" || f.list || f.bench > 0
}

func main() {
	f, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}
	if err := run(f, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(f *flags, stdin *os.File, stdout io.Writer) error {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	f.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	commonlog.Configure(cfg.Verbosity, nil)

	// Create the reader ONCE; the REPL and program input share it.
	input := bufio.NewReader(stdin)

	opts := []bf.Option{
		bf.WithTapeSize(cfg.TapeSize),
		bf.WithInput(input),
		bf.WithOutput(stdout),
	}
	if f.needsStore() {
		s, err := store.NewSQLite(cfg.DB)
		if err != nil {
			return err
		}
		opts = append(opts, bf.WithStore(s))
	}
	if cfg.TraceDir != "" {
		opts = append(opts, bf.WithTraceDir(cfg.TraceDir))
	}
	if cfg.StrictBrackets {
		opts = append(opts, bf.WithStrictBrackets())
	}

	runtime := bf.New(opts...)
	defer runtime.Close()

	if f.list {
		names, err := runtime.Programs()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(stdout, name)
		}
		return nil
	}

	name, source, err := resolveSource(f, runtime, stdin, input)
	if err != nil {
		return err
	}
	if source == "" && name == "" {
		runREPL(runtime, input, stdout, isatty.IsTerminal(stdin.Fd()))
		return nil
	}

	if f.save != "" {
		if err := runtime.Save(f.save, source); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved %s\n", f.save)
		if f.bench == 0 && !f.step && !f.disasm {
			return nil
		}
	}

	if f.bench > 0 {
		result, err := runtime.Bench(name, source, cfg.Bench.Iterations, cfg.Bench.OutputCapacity)
		if err != nil {
			return err
		}
		printBench(stdout, result, runtime.RunStore())
		return nil
	}

	p, err := runtime.Compile(source)
	if err != nil {
		return err
	}
	if doc := p.Document(); doc != nil {
		fmt.Fprintf(os.Stderr, "trace: %s (%d lines)\n", doc.Path, doc.Lines)
	}

	switch {
	case f.disasm:
		fmt.Fprint(stdout, p.String())
		return nil
	case f.step:
		err = runStepper(runtime, p, os.Stderr)
	default:
		err = runtime.Execute(p)
	}
	if errors.Is(err, io.EOF) {
		// Input ran out; the program ends there.
		return nil
	}
	return err
}

// resolveSource picks the program to run. It returns an empty name and
// source when nothing was given and stdin is a terminal.
func resolveSource(f *flags, runtime *bf.Runtime, stdin *os.File, input io.Reader) (string, string, error) {
	switch {
	case f.file != "":
		data, err := os.ReadFile(f.file)
		if err != nil {
			return "", "", err
		}
		return f.file, string(data), nil
	case f.source != "":
		return "-e", f.source, nil
	case f.example != "":
		src, err := runtime.Load(f.example)
		return f.example, src, err
	case f.runName != "":
		src, err := runtime.Load(f.runName)
		return f.runName, src, err
	case !isatty.IsTerminal(stdin.Fd()) && !isatty.IsCygwinTerminal(stdin.Fd()):
		// Piped input is the program itself
		data, err := io.ReadAll(input)
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return "stdin", string(data), nil
	}
	return "", "", nil
}
