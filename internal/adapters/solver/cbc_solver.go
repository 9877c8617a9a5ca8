package solver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"transfer-task-service/internal/milp"
	"transfer-task-service/internal/platform/obs"
)

var ErrSolverUnavailable = errors.New("cbc solver unavailable")

// Bytes of solver console output kept for error messages.
const outputTail = 2048

type CBCConfig struct {
	// Path or name of the cbc executable; resolved through PATH.
	Path string
	// Threads passed to cbc; 0 keeps the solver default.
	Threads int
	// WorkDir holds per-call temp directories; "" uses the OS default.
	WorkDir string
}

// CBCSolver implements ports.Solver by running the Coin-OR CBC executable.
//
// Each call writes the model as an LP file into its own temp directory, runs
// cbc on it and parses the solution file. The solver holds only immutable
// configuration and is safe for concurrent use. A started solve is not
// cancelled; the time limit is handed to cbc as its own budget.
type CBCSolver struct {
	path    string
	threads int
	workDir string
}

func NewCBCSolver(cfg CBCConfig) (*CBCSolver, error) {
	name := strings.TrimSpace(cfg.Path)
	if name == "" {
		name = "cbc"
	}

	path, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrSolverUnavailable, name, err)
	}

	if cfg.Threads < 0 {
		return nil, fmt.Errorf("new cbc solver: threads must be >= 0, got %d", cfg.Threads)
	}

	return &CBCSolver{
		path:    path,
		threads: cfg.Threads,
		workDir: cfg.WorkDir,
	}, nil
}

func (s *CBCSolver) Solve(
	ctx context.Context,
	model *milp.Model,
	timeLimit time.Duration,
) (_ milp.Outcome, err error) {
	defer obs.Time(ctx, "cbc.Solve", "model", model.Name, "vars", len(model.Vars))(&err)

	if err := ctx.Err(); err != nil {
		return milp.Outcome{}, fmt.Errorf("cbc solve: %w", err)
	}

	dir, err := os.MkdirTemp(s.workDir, "cbc-*")
	if err != nil {
		return milp.Outcome{}, fmt.Errorf("cbc solve: create work dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(dir) }()

	lpPath := filepath.Join(dir, "model.lp")
	solPath := filepath.Join(dir, "solution.txt")

	if err := writeModelFile(lpPath, model); err != nil {
		return milp.Outcome{}, fmt.Errorf("cbc solve: %w", err)
	}

	var console bytes.Buffer
	cmd := exec.Command(s.path, s.args(lpPath, solPath, timeLimit)...)
	cmd.Dir = dir
	cmd.Stdout = &console
	cmd.Stderr = &console

	if err := cmd.Run(); err != nil {
		return milp.Outcome{}, fmt.Errorf("cbc solve: run %s: %w: %s", s.path, err, tail(console.Bytes()))
	}

	f, err := os.Open(solPath)
	if err != nil {
		return milp.Outcome{}, fmt.Errorf("cbc solve: open solution: %w: %s", err, tail(console.Bytes()))
	}
	defer f.Close()

	out, err := ParseSolution(f, model)
	if err != nil {
		return milp.Outcome{}, fmt.Errorf("cbc solve: %w", err)
	}

	return out, nil
}

// args builds the cbc command line. Order matters: cbc executes its
// arguments as a command sequence.
func (s *CBCSolver) args(lpPath, solPath string, timeLimit time.Duration) []string {
	args := []string{lpPath}
	if timeLimit > 0 {
		// cbc counts CPU seconds unless told otherwise.
		args = append(args, "-timeMode", "elapsed", "-sec", strconv.FormatFloat(timeLimit.Seconds(), 'f', -1, 64))
	}
	if s.threads > 0 {
		args = append(args, "-threads", strconv.Itoa(s.threads))
	}
	return append(args, "-branch", "-printingOptions", "all", "-solution", solPath)
}

func writeModelFile(path string, model *milp.Model) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create model file: %w", err)
	}

	if err := WriteLP(f, model); err != nil {
		_ = f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close model file: %w", err)
	}
	return nil
}

func tail(b []byte) string {
	if len(b) > outputTail {
		b = b[len(b)-outputTail:]
	}
	return strings.TrimSpace(string(b))
}
