package main

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"nickandperla.net/bf/internal/config"
	"nickandperla.net/bf/pkg/bf"
)

// emptyStdin returns a regular file standing in for piped stdin.
func emptyStdin(t *testing.T, content string) *os.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stdin")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write stdin file: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open stdin file: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func testFlags(t *testing.T, args ...string) *flags {
	t.Helper()
	f, err := parseFlags(append([]string{"-config", filepath.Join(t.TempDir(), "none.toml")}, args...))
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}
	return f
}

func TestRunSourceFlag(t *testing.T) {
	var out bytes.Buffer
	f := testFlags(t, "-e", "+++++>+.>+.<<[->>[-<+>>+<]<[->+>+<<]>[-<+>]>[-<+>]<<.>.<<]", "-tape", "100000")
	if err := run(f, emptyStdin(t, ""), &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	want := []byte{1, 1, 2, 3, 5, 8, 13, 21, 34, 55, 89, 144}
	if !bytes.Equal(out.Bytes(), want) {
		t.Errorf("expected %v, got %v", want, out.Bytes())
	}
}

func TestRunPipedProgram(t *testing.T) {
	var out bytes.Buffer
	if err := run(testFlags(t), emptyStdin(t, "++++++++[>++++++++<-]>+."), &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out.String() != "A" {
		t.Errorf("expected 'A', got %q", out.String())
	}
}

func TestRunExampleWithInput(t *testing.T) {
	var out bytes.Buffer
	// Exhausted input ends cat without an error.
	if err := run(testFlags(t, "-example", "cat"), emptyStdin(t, "meow"), &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out.String() != "meow" {
		t.Errorf("expected 'meow', got %q", out.String())
	}
}

func TestRunDisasm(t *testing.T) {
	var out bytes.Buffer
	if err := run(testFlags(t, "-e", "[-]", "-disasm"), emptyStdin(t, ""), &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Errorf("expected 3 disassembly lines, got %q", out.String())
	}
}

func TestRunReportsErrors(t *testing.T) {
	var out bytes.Buffer
	err := run(testFlags(t, "-e", "+]"), emptyStdin(t, ""), &out)
	if err == nil || !strings.Contains(err.Error(), "unmatched") {
		t.Errorf("expected syntax error, got %v", err)
	}
	err = run(testFlags(t, "-e", "<"), emptyStdin(t, ""), &out)
	if err == nil || !strings.Contains(err.Error(), "out of range") {
		t.Errorf("expected out of range error, got %v", err)
	}
}

func TestSaveRunListBench(t *testing.T) {
	db := filepath.Join(t.TempDir(), "bf.db")
	var out bytes.Buffer

	if err := run(testFlags(t, "-db", db, "-e", "+++.", "-save", "three"), emptyStdin(t, ""), &out); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("save alone should not run the program, got %q", out.String())
	}

	if err := run(testFlags(t, "-db", db, "-run", "three"), emptyStdin(t, ""), &out); err != nil {
		t.Fatalf("run stored failed: %v", err)
	}
	if !bytes.Equal(out.Bytes(), []byte{3}) {
		t.Errorf("expected [3], got %v", out.Bytes())
	}

	out.Reset()
	if err := run(testFlags(t, "-db", db, "-list"), emptyStdin(t, ""), &out); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.HasPrefix(out.String(), "three\n") || !strings.Contains(out.String(), "fib\n") {
		t.Errorf("unexpected list %q", out.String())
	}

	out.Reset()
	if err := run(testFlags(t, "-db", db, "-run", "three", "-bench", "5"), emptyStdin(t, ""), &out); err != nil {
		t.Fatalf("bench failed: %v", err)
	}
	if !strings.Contains(out.String(), "three: 5 iterations") {
		t.Errorf("unexpected bench report %q", out.String())
	}
}

func TestBadDatabaseIsReported(t *testing.T) {
	var out bytes.Buffer
	err := run(testFlags(t, "-db", t.TempDir(), "-e", "+", "-save", "x"), emptyStdin(t, ""), &out)
	if err == nil || errors.Is(err, bf.ErrNoStore) {
		t.Errorf("expected the database open error, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), "open store") {
		t.Errorf("expected an open store error, got %v", err)
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	cfg := config.Default()
	f := testFlags(t, "-tape", "7", "-strict", "-v", "2", "-bench", "3", "-trace", "/tmp/t")
	f.apply(&cfg)
	if cfg.TapeSize != 7 || !cfg.StrictBrackets || cfg.Verbosity != 2 ||
		cfg.Bench.Iterations != 3 || cfg.TraceDir != "/tmp/t" {
		t.Errorf("flags not applied: %+v", cfg)
	}

	cfg = config.Default()
	testFlags(t).apply(&cfg)
	if cfg != config.Default() {
		t.Errorf("unset flags should keep config values, got %+v", cfg)
	}
}

func TestREPL(t *testing.T) {
	var out bytes.Buffer
	runtime := bf.New(bf.WithTapeSize(8), bf.WithOutput(&out))
	defer runtime.Close()

	script := "+++>++\n:tape 3\n[\n->+<]\n:tape 2\n]\n:reset\n:tape 2\n:bogus\n"
	runREPL(runtime, bufio.NewReader(strings.NewReader(script)), &out, false)

	want := "3 2 0\n0 5\nError: syntax error at 1:1: unmatched ']'\n0 0\nError: unknown command :bogus\n"
	if out.String() != want {
		t.Errorf("expected:\n%q\ngot:\n%q", want, out.String())
	}
}

func TestBracketDepth(t *testing.T) {
	tests := []struct {
		src  string
		want int
	}{
		{"", 0},
		{"[[", 2},
		{"[-]", 0},
		{"]", -1},
	}
	for _, tc := range tests {
		if got := bracketDepth(tc.src); got != tc.want {
			t.Errorf("bracketDepth(%q) = %d; want %d", tc.src, got, tc.want)
		}
	}
}

func TestFormatStep(t *testing.T) {
	p, err := bf.Compile("+")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	var line string
	p.Step(make([]int32, 1), nil, nil, func(s bf.Step) error {
		line = formatStep(s)
		return nil
	})
	if !strings.Contains(line, "IncCell") || !strings.Contains(line, "1:1") || !strings.Contains(line, "ptr=0") {
		t.Errorf("unexpected step line %q", line)
	}
}

func TestPrintBench(t *testing.T) {
	runtime := bf.New(bf.WithMemoryStore())
	defer runtime.Close()

	rs := runtime.RunStore()
	old := bf.BenchRun{Name: "fib", Iterations: 10, Elapsed: 20 * time.Microsecond, Ts: time.Now().Add(-time.Hour)}
	rs.RecordRun(old)
	cur := bf.BenchRun{Name: "fib", Iterations: 1000, Elapsed: time.Millisecond, Output: 12, Ts: time.Now()}
	rs.RecordRun(cur)

	var out bytes.Buffer
	printBench(&out, cur, rs)
	report := out.String()
	for _, want := range []string{"fib: 1,000 iterations", "12 B", "1µs per iteration", "previous:", "2µs per iteration", "1 hour ago"} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}
