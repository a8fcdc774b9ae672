package harness

import (
	"errors"
	"fmt"

	"github.com/roach88/purgeshift/internal/gcodefile"
	"github.com/roach88/purgeshift/internal/purge"
	"github.com/roach88/purgeshift/internal/testutil"
)

// Run executes a scenario and returns the result.
//
// An error is returned only when the scenario cannot be executed at all, for
// example when its G-code file is unreadable. Pipeline failures are recorded
// in the result and checked against ExpectError.
func Run(scenario *Scenario) (*Result, error) {
	lines, err := loadInput(scenario)
	if err != nil {
		return nil, fmt.Errorf("failed to load input: %w", err)
	}

	result := NewResult()
	result.Input = lines

	shift, err := execute(scenario, lines)
	result.Shift = shift
	result.Err = err
	checkError(result, scenario.ExpectError)

	if err == nil && len(result.Output()) != len(lines) {
		result.AddError(fmt.Sprintf("line count changed: %d in, %d out", len(lines), len(result.Output())))
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}

	return result, nil
}

func loadInput(s *Scenario) ([]string, error) {
	if s.GCode != "" {
		return gcodefile.Read(s.GCode)
	}
	return gcodefile.SplitLines([]byte(s.Input)), nil
}

func execute(s *Scenario, lines []string) (*purge.Result, error) {
	var mask purge.Mask
	if s.Mask != "" {
		m, err := purge.ParseMask(s.Mask)
		if err != nil {
			return nil, err
		}
		mask = m
	}

	if s.Slot == nil {
		return nil, errors.New("mask accepted but scenario forces no slot")
	}
	index, ok := drawIndex(mask, *s.Slot)
	if !ok {
		return nil, fmt.Errorf("slot %d is not allowed by mask %q", *s.Slot, s.Mask)
	}

	return purge.Shift(lines, purge.Options{
		Mask:   mask,
		Rand:   testutil.NewFixedRand(index),
		ShiftW: s.ShiftW,
	})
}

// checkError compares the pipeline error with the expected purge error code.
func checkError(r *Result, expected string) {
	var pe *purge.Error
	gotCode := ""
	if errors.As(r.Err, &pe) {
		gotCode = string(pe.Code)
	}

	switch {
	case expected == "" && r.Err != nil:
		r.AddError(fmt.Sprintf("unexpected error: %v", r.Err))
	case expected != "" && r.Err == nil:
		r.AddError(fmt.Sprintf("expected error %s, run succeeded", expected))
	case expected != "" && gotCode != expected:
		r.AddError(fmt.Sprintf("expected error %s, got %v", expected, r.Err))
	}
}

// drawIndex returns the value a FixedRand must yield for SelectSlot to pick
// slot under mask.
func drawIndex(mask purge.Mask, slot int) (int, bool) {
	for i, s := range mask.Slots() {
		if s == slot {
			return i, true
		}
	}
	return 0, false
}
