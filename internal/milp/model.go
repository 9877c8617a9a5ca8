// Package milp holds a solver-agnostic description of a mixed-integer linear
// program and of the outcome a solver reports for it.
package milp

import "fmt"

type VarKind int

const (
	Continuous VarKind = iota
	Integer
	Binary
)

func (k VarKind) String() string {
	switch k {
	case Continuous:
		return "continuous"
	case Integer:
		return "integer"
	case Binary:
		return "binary"
	default:
		return fmt.Sprintf("VarKind(%d)", int(k))
	}
}

// Index of a variable inside its Model.
type VarID int

// A decision variable. Upper < 0 means the variable has no upper bound.
// Binary variables are always bounded to [0, 1].
type Var struct {
	Name      string
	Kind      VarKind
	Lower     float64
	Upper     float64
	Objective float64
}

// Unbounded returns true when the variable has no finite upper bound.
func (v Var) Unbounded() bool { return v.Kind != Binary && v.Upper < 0 }

type Sense int

const (
	LessOrEqual Sense = iota
	Equal
	GreaterOrEqual
)

func (s Sense) String() string {
	switch s {
	case LessOrEqual:
		return "<="
	case Equal:
		return "="
	case GreaterOrEqual:
		return ">="
	default:
		return fmt.Sprintf("Sense(%d)", int(s))
	}
}

type Term struct {
	Var  VarID
	Coef float64
}

// A linear row: Σ terms <sense> RHS.
type Constraint struct {
	Name  string
	Terms []Term
	Sense Sense
	RHS   float64
}

// A minimization problem. Variables and constraints are kept in insertion
// order so that writers and solvers see a deterministic model.
type Model struct {
	Name        string
	Vars        []Var
	Constraints []Constraint
}

func NewModel(name string) *Model {
	return &Model{Name: name}
}

func (m *Model) AddVar(v Var) VarID {
	if v.Kind == Binary {
		v.Lower, v.Upper = 0, 1
	}
	m.Vars = append(m.Vars, v)
	return VarID(len(m.Vars) - 1)
}

func (m *Model) AddConstraint(name string, terms []Term, sense Sense, rhs float64) {
	m.Constraints = append(m.Constraints, Constraint{
		Name:  name,
		Terms: terms,
		Sense: sense,
		RHS:   rhs,
	})
}

// VarIndex maps variable names to their ids.
func (m *Model) VarIndex() map[string]VarID {
	idx := make(map[string]VarID, len(m.Vars))
	for i, v := range m.Vars {
		idx[v.Name] = VarID(i)
	}
	return idx
}

// Empty reports whether the model has no decision variables.
func (m *Model) Empty() bool { return len(m.Vars) == 0 }

// ObjectiveValue evaluates the objective for the given variable values.
func (m *Model) ObjectiveValue(values []float64) (float64, error) {
	if len(values) != len(m.Vars) {
		return 0, fmt.Errorf("objective value: got %d values for %d variables", len(values), len(m.Vars))
	}

	total := 0.0
	for i, v := range m.Vars {
		total += v.Objective * values[i]
	}
	return total, nil
}

// Violations lists every constraint or bound the given values break by more than tol.
func (m *Model) Violations(values []float64, tol float64) []string {
	if len(values) != len(m.Vars) {
		return []string{fmt.Sprintf("got %d values for %d variables", len(values), len(m.Vars))}
	}

	var out []string
	for i, v := range m.Vars {
		x := values[i]
		if x < v.Lower-tol || (!v.Unbounded() && x > v.Upper+tol) {
			out = append(out, fmt.Sprintf("%s=%g outside bounds", v.Name, x))
		}
	}

	for _, c := range m.Constraints {
		lhs := 0.0
		for _, t := range c.Terms {
			lhs += t.Coef * values[t.Var]
		}

		ok := true
		switch c.Sense {
		case LessOrEqual:
			ok = lhs <= c.RHS+tol
		case Equal:
			ok = lhs >= c.RHS-tol && lhs <= c.RHS+tol
		case GreaterOrEqual:
			ok = lhs >= c.RHS-tol
		}
		if !ok {
			out = append(out, fmt.Sprintf("%s: %g %s %g", c.Name, lhs, c.Sense, c.RHS))
		}
	}

	return out
}

func (m *Model) String() string {
	return fmt.Sprintf("model %q: %d vars, %d constraints", m.Name, len(m.Vars), len(m.Constraints))
}
