package harness

import (
	"fmt"
	"strings"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)
	return buf.String()
}

// EvaluateAssertions runs every assertion against r and returns the failure
// messages, in assertion order.
func EvaluateAssertions(r *Result, assertions []Assertion) []string {
	var errs []string
	for _, a := range assertions {
		if err := evaluate(r, a); err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

func evaluate(r *Result, a Assertion) error {
	switch a.Type {
	case AssertSlot, AssertOffset, AssertObjectStartX, AssertReverse:
		return assertPlan(r, a)
	case AssertLineEquals:
		return assertLineEquals(r, a)
	case AssertLineUnchanged:
		return assertLineUnchanged(r, a)
	case AssertUnchangedAfterPurge:
		return assertUnchangedAfterPurge(r)
	case AssertFinalState:
		return assertFinalState(r, a)
	case AssertProbeLines, AssertPurgeLines:
		return assertCount(r, a)
	default:
		return fmt.Errorf("unknown assertion type: %s", a.Type)
	}
}

// assertPlan checks one planning value. Slot and offset are available even
// when the analysis failed.
func assertPlan(r *Result, a Assertion) error {
	if r.Shift == nil {
		return missing(a.Type, "no slot was selected")
	}
	if a.Type != AssertSlot && a.Type != AssertOffset && r.Shift.Rewrite == nil {
		return missing(a.Type, "the first object was not located")
	}

	var actual interface{}
	switch a.Type {
	case AssertSlot:
		actual = r.Shift.Slot
	case AssertOffset:
		actual = r.Shift.Offset
	case AssertObjectStartX:
		actual = r.Shift.ObjectStartX
	case AssertReverse:
		actual = r.Shift.Reverse
	}

	if !valuesEqual(a.Value, actual) {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%v", a.Value),
			Actual:   fmt.Sprintf("%v", actual),
		}
	}
	return nil
}

func assertLineEquals(r *Result, a Assertion) error {
	line, err := outputLine(r, a)
	if err != nil {
		return err
	}
	if line != a.Text {
		return &AssertionError{
			Type:     AssertLineEquals,
			Expected: fmt.Sprintf("line %d = %q", a.Line, a.Text),
			Actual:   fmt.Sprintf("%q", line),
		}
	}
	return nil
}

func assertLineUnchanged(r *Result, a Assertion) error {
	line, err := outputLine(r, a)
	if err != nil {
		return err
	}
	in := stripTerminator(r.Input[a.Line-1])
	if line != in {
		return &AssertionError{
			Type:     AssertLineUnchanged,
			Expected: fmt.Sprintf("line %d = %q", a.Line, in),
			Actual:   fmt.Sprintf("%q", line),
		}
	}
	return nil
}

// assertUnchangedAfterPurge compares raw lines, terminators included.
func assertUnchangedAfterPurge(r *Result) error {
	out := r.Output()
	if out == nil {
		return missing(AssertUnchangedAfterPurge, "no output stream")
	}
	end := r.Shift.Rewrite.PurgeEnd
	if end == 0 {
		return missing(AssertUnchangedAfterPurge, "the purge block was never left")
	}

	for i := end; i < len(out); i++ {
		if out[i] != r.Input[i] {
			return &AssertionError{
				Type:     AssertUnchangedAfterPurge,
				Expected: fmt.Sprintf("line %d = %q", i+1, r.Input[i]),
				Actual:   fmt.Sprintf("%q", out[i]),
			}
		}
	}
	return nil
}

func assertFinalState(r *Result, a Assertion) error {
	if r.Output() == nil {
		return missing(AssertFinalState, "no output stream")
	}
	actual := r.Shift.Rewrite.Final.String()
	if actual != a.State {
		return &AssertionError{
			Type:     AssertFinalState,
			Expected: a.State,
			Actual:   actual,
		}
	}
	return nil
}

func assertCount(r *Result, a Assertion) error {
	if r.Output() == nil {
		return missing(a.Type, "no output stream")
	}
	actual := r.Shift.Rewrite.ProbeLines
	if a.Type == AssertPurgeLines {
		actual = r.Shift.Rewrite.PurgeLines
	}
	if !valuesEqual(a.Value, actual) {
		return &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("%v", a.Value),
			Actual:   fmt.Sprintf("%d", actual),
		}
	}
	return nil
}

func outputLine(r *Result, a Assertion) (string, error) {
	out := r.Output()
	if out == nil {
		return "", missing(a.Type, "no output stream")
	}
	if a.Line > len(out) {
		return "", &AssertionError{
			Type:     a.Type,
			Expected: fmt.Sprintf("at least %d lines", a.Line),
			Actual:   fmt.Sprintf("%d lines", len(out)),
		}
	}
	return stripTerminator(out[a.Line-1]), nil
}

func missing(typ, why string) error {
	return &AssertionError{Type: typ, Expected: "a completed rewrite", Actual: why}
}

func stripTerminator(line string) string {
	return strings.TrimRight(line, "\r\n")
}

// valuesEqual compares a YAML-decoded expectation with an actual value.
// YAML integers and floats compare numerically.
func valuesEqual(expected, actual interface{}) bool {
	ef, eok := toFloat(expected)
	af, aok := toFloat(actual)
	if eok && aok {
		return ef == af
	}
	return expected == actual
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}
