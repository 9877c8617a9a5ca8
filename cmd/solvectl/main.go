package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"transfer-task-service/internal/adapters/solver"
	"transfer-task-service/internal/api/dto"
	"transfer-task-service/internal/config"
	"transfer-task-service/internal/platform/obs"
	"transfer-task-service/internal/services"

	"github.com/charmbracelet/log"
	"github.com/go-playground/validator"
)

// solvectl solves a problem file offline and prints the per-category results.
func main() {
	config.LoadEnv()
	cfg := config.Load()

	problemPath := flag.String("problem", "-", "problem JSON file, - for stdin")
	timed := flag.Bool("timed", false, "solve under a time budget instead of to optimality")
	timeLimit := flag.Int("time-limit", 0, "time budget in seconds for -timed (overrides the file)")
	cbcPath := flag.String("cbc", cfg.CBCPath, "path to the cbc executable")
	debug := flag.Bool("debug", cfg.Debug, "log debug output")
	flag.Parse()

	obs.Install(obs.NewLogger(*debug))

	if err := run(*problemPath, *timed, *timeLimit, *cbcPath, cfg, os.Stdout); err != nil {
		log.Fatal("solve failed", "err", err)
	}
}

func run(problemPath string, timed bool, timeLimit int, cbcPath string, cfg config.Config, out io.Writer) error {
	req, err := readRequest(problemPath)
	if err != nil {
		return err
	}

	if timeLimit != 0 {
		req.TimeLimitSeconds = timeLimit
	}
	if err := validator.New().Struct(&req); err != nil {
		return fmt.Errorf("run: validate %s: %w", problemPath, err)
	}
	if err := req.Check(); err != nil {
		return fmt.Errorf("run: check %s: %w", problemPath, err)
	}

	cbc, err := solver.NewCBCSolver(solver.CBCConfig{
		Path:    cbcPath,
		Threads: cfg.CBCThreads,
		WorkDir: cfg.SolverWorkDir,
	})
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	mode := services.ModeExact
	if timed {
		mode = services.ModeTimed
	}

	results, err := services.SolveCategories(context.Background(), req.ToProblem(cfg.DefaultTimeLimitSeconds), cbc, mode)
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(dto.NewCategoryResults(results)); err != nil {
		return fmt.Errorf("run: encode results: %w", err)
	}

	return nil
}

func readRequest(path string) (dto.SolveRequest, error) {
	if path == "-" {
		return dto.DecodeSolveRequest(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return dto.SolveRequest{}, fmt.Errorf("read request: %w", err)
	}
	defer f.Close()

	req, err := dto.DecodeSolveRequest(f)
	if err != nil {
		return dto.SolveRequest{}, fmt.Errorf("read request: %s: %w", path, err)
	}
	return req, nil
}
