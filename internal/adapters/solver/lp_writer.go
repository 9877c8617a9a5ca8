package solver

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"transfer-task-service/internal/milp"

	"github.com/shopspring/decimal"
)

// Terms written per line; LP readers cap line length.
const termsPerLine = 8

// WriteLP writes the model in CPLEX LP format as read by CBC.
// Numbers are written as plain decimals, never in exponent form.
func WriteLP(w io.Writer, m *milp.Model) error {
	if m == nil {
		return errors.New("write lp: model is nil")
	}
	if m.Empty() {
		return errors.New("write lp: model has no variables")
	}

	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "\\ %s\n", lpName(m.Name))
	bw.WriteString("Minimize\n")

	obj := make([]milp.Term, 0, len(m.Vars))
	for i, v := range m.Vars {
		if v.Objective != 0 {
			obj = append(obj, milp.Term{Var: milp.VarID(i), Coef: v.Objective})
		}
	}
	if len(obj) == 0 {
		// An objective row needs at least one term.
		obj = append(obj, milp.Term{Var: 0, Coef: 0})
	}
	bw.WriteString(" obj:")
	writeTerms(bw, m, obj)
	bw.WriteString("\n")

	bw.WriteString("Subject To\n")
	for i, c := range m.Constraints {
		if len(c.Terms) == 0 {
			return fmt.Errorf("write lp: constraint %q has no terms", c.Name)
		}
		name := c.Name
		if name == "" {
			name = fmt.Sprintf("c%d", i)
		}
		fmt.Fprintf(bw, " %s:", name)
		writeTerms(bw, m, c.Terms)
		fmt.Fprintf(bw, " %s %s\n", c.Sense, formatNumber(c.RHS))
	}

	var bounds, generals, binaries []string
	for _, v := range m.Vars {
		switch v.Kind {
		case milp.Binary:
			binaries = append(binaries, v.Name)
			continue
		case milp.Integer:
			generals = append(generals, v.Name)
		}

		switch {
		case !v.Unbounded():
			bounds = append(bounds, fmt.Sprintf("%s <= %s <= %s", formatNumber(v.Lower), v.Name, formatNumber(v.Upper)))
		case v.Lower != 0:
			bounds = append(bounds, fmt.Sprintf("%s >= %s", v.Name, formatNumber(v.Lower)))
		}
	}

	writeSection(bw, "Bounds", bounds)
	writeSection(bw, "Generals", generals)
	writeSection(bw, "Binaries", binaries)
	bw.WriteString("End\n")

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write lp: flush: %w", err)
	}
	return nil
}

func writeTerms(bw *bufio.Writer, m *milp.Model, terms []milp.Term) {
	for i, t := range terms {
		if i > 0 && i%termsPerLine == 0 {
			bw.WriteString("\n   ")
		}

		coef := decimal.NewFromFloat(t.Coef)
		sign := "+"
		if coef.IsNegative() {
			sign = "-"
			coef = coef.Neg()
		}
		if i == 0 && sign == "+" {
			fmt.Fprintf(bw, " %s %s", coef.String(), m.Vars[t.Var].Name)
			continue
		}
		fmt.Fprintf(bw, " %s %s %s", sign, coef.String(), m.Vars[t.Var].Name)
	}
}

func writeSection(bw *bufio.Writer, title string, lines []string) {
	if len(lines) == 0 {
		return
	}
	bw.WriteString(title + "\n")
	for _, l := range lines {
		bw.WriteString(" " + strings.TrimSpace(l) + "\n")
	}
}

func formatNumber(v float64) string {
	return decimal.NewFromFloat(v).String()
}

// lpName reduces s to characters that cannot break an LP line.
func lpName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}
