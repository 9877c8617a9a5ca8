package solver

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"transfer-task-service/internal/milp"
)

var ErrMalformedSolution = errors.New("malformed cbc solution")

// ParseSolution reads a CBC solution file written with "printingOptions all".
//
// The first line carries the status and, when a solution exists, the
// objective ("Optimal - objective value 25.00000000"). Each following line is
// "index name value reducedCost", optionally prefixed by "**" when the row
// violates a bound. Rows for constraint names are skipped.
func ParseSolution(r io.Reader, m *milp.Model) (milp.Outcome, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return milp.Outcome{}, fmt.Errorf("parse cbc solution: read status: %w", err)
		}
		return milp.Outcome{}, fmt.Errorf("parse cbc solution: %w: empty file", ErrMalformedSolution)
	}

	status, objective, err := parseStatusLine(sc.Text())
	if err != nil {
		return milp.Outcome{}, fmt.Errorf("parse cbc solution: %w", err)
	}

	out := milp.Outcome{Status: status}
	if objective == nil {
		return out, nil
	}

	idx := m.VarIndex()
	values := make([]float64, len(m.Vars))

	line := 1
	for sc.Scan() {
		line++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "**" {
			fields = fields[1:]
		}
		if len(fields) < 3 {
			return milp.Outcome{}, fmt.Errorf("parse cbc solution: %w: line %d has %d fields", ErrMalformedSolution, line, len(fields))
		}

		id, ok := idx[fields[1]]
		if !ok {
			continue
		}

		v, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return milp.Outcome{}, fmt.Errorf("parse cbc solution: %w: line %d value %q", ErrMalformedSolution, line, fields[2])
		}
		values[id] = v
	}
	if err := sc.Err(); err != nil {
		return milp.Outcome{}, fmt.Errorf("parse cbc solution: read values: %w", err)
	}

	out.Objective = objective
	out.Values = values
	return out, nil
}

// parseStatusLine maps the CBC headline to a raw status and an objective,
// which is nil when CBC found no integer solution.
func parseStatusLine(line string) (milp.RawStatus, *float64, error) {
	line = strings.TrimSpace(line)
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return milp.RawNotSolved, nil, fmt.Errorf("%w: empty status line", ErrMalformedSolution)
	}

	lower := strings.ToLower(line)

	switch fields[0] {
	case "Optimal":
		obj, err := objectiveFrom(line)
		if err != nil {
			return milp.RawNotSolved, nil, err
		}
		return milp.RawOptimal, obj, nil
	case "Infeasible", "Integer":
		return milp.RawInfeasible, nil, nil
	case "Unbounded":
		return milp.RawUnbounded, nil, nil
	case "Stopped":
		status := milp.RawNotSolved
		if strings.Contains(lower, "on time") {
			status = milp.RawTimedOut
		}
		if strings.Contains(lower, "no integer solution") || strings.Contains(lower, "no solution") {
			return status, nil, nil
		}
		if !strings.Contains(lower, "objective value") {
			return status, nil, nil
		}
		obj, err := objectiveFrom(line)
		if err != nil {
			return milp.RawNotSolved, nil, err
		}
		return status, obj, nil
	default:
		return milp.RawNotSolved, nil, nil
	}
}

func objectiveFrom(line string) (*float64, error) {
	const marker = "objective value"
	i := strings.Index(line, marker)
	if i < 0 {
		return nil, fmt.Errorf("%w: no objective in %q", ErrMalformedSolution, line)
	}

	rest := strings.Fields(line[i+len(marker):])
	if len(rest) == 0 {
		return nil, fmt.Errorf("%w: no objective in %q", ErrMalformedSolution, line)
	}

	v, err := strconv.ParseFloat(rest[0], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: objective %q", ErrMalformedSolution, rest[0])
	}
	return &v, nil
}
