package milp

// Status as reported by the solving backend, before any simplification.
type RawStatus int

const (
	RawNotSolved RawStatus = iota
	RawOptimal
	RawInfeasible
	RawTimedOut
	RawUnbounded
)

func (s RawStatus) String() string {
	switch s {
	case RawOptimal:
		return "Optimal"
	case RawInfeasible:
		return "Infeasible"
	case RawTimedOut:
		return "TimedOut"
	case RawUnbounded:
		return "Unbounded"
	default:
		return "NotSolved"
	}
}

// What a solver returns for one model.
// Objective is non-nil iff a feasible incumbent was found; Values is then
// indexed by VarID.
type Outcome struct {
	Status    RawStatus
	Objective *float64
	Values    []float64
}

// HasIncumbent reports whether a feasible solution came back.
func (o Outcome) HasIncumbent() bool { return o.Objective != nil }

// Value returns the value of v, or 0 when the outcome carries no values.
func (o Outcome) Value(v VarID) float64 {
	if int(v) < 0 || int(v) >= len(o.Values) {
		return 0
	}
	return o.Values[v]
}
