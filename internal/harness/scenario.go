package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/roach88/purgeshift/internal/purge"
)

// Scenario defines an end-to-end purge scenario.
type Scenario struct {
	// Name uniquely identifies this scenario. It also names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Input is the G-code stream, inline.
	Input string `yaml:"input,omitempty"`

	// GCode is a G-code file path, relative to the scenario file.
	// Exactly one of Input and GCode must be set.
	GCode string `yaml:"gcode,omitempty"`

	// Mask is the inclusion mask as typed on the command line.
	// Empty means all slots.
	Mask string `yaml:"mask,omitempty"`

	// Slot is the slot the selector must pick. Required unless the scenario
	// expects INVALID_MASK.
	Slot *int `yaml:"slot,omitempty"`

	// ShiftW enables the W-axis shift on probe lines.
	ShiftW bool `yaml:"shift_w,omitempty"`

	// ExpectError is the purge error code the run must fail with.
	ExpectError string `yaml:"expect_error,omitempty"`

	// Assertions validate the plan and the rewritten stream.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates one aspect of a run.
type Assertion struct {
	// Type selects the check. See the package documentation.
	Type string `yaml:"type"`

	// Line is a 1-based output line number (line_equals, line_unchanged).
	Line int `yaml:"line,omitempty"`

	// Text is the expected line content without its terminator (line_equals).
	Text string `yaml:"text,omitempty"`

	// Value is the expected scalar (slot, offset, object_start_x, reverse,
	// probe_lines, purge_lines).
	Value interface{} `yaml:"value,omitempty"`

	// State is the expected final state name (final_state).
	State string `yaml:"state,omitempty"`
}

// Assertion type constants.
const (
	AssertSlot                = "slot"
	AssertOffset              = "offset"
	AssertObjectStartX        = "object_start_x"
	AssertReverse             = "reverse"
	AssertLineEquals          = "line_equals"
	AssertLineUnchanged       = "line_unchanged"
	AssertUnchangedAfterPurge = "unchanged_after_purge"
	AssertFinalState          = "final_state"
	AssertProbeLines          = "probe_lines"
	AssertPurgeLines          = "purge_lines"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.GCode != "" && !filepath.IsAbs(scenario.GCode) {
		scenario.GCode = filepath.Join(filepath.Dir(path), scenario.GCode)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadScenarios loads every *.yaml file in dir, in lexical order.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no scenarios in %s", dir)
	}

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := LoadScenario(p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(p), err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if (s.Input == "") == (s.GCode == "") {
		return fmt.Errorf("exactly one of input and gcode is required")
	}

	if s.GCode != "" {
		if _, err := os.Stat(s.GCode); os.IsNotExist(err) {
			return fmt.Errorf("gcode file not found: %s", s.GCode)
		}
	}

	switch purge.ErrorCode(s.ExpectError) {
	case "", purge.ErrCodeObjectStartNotFound, purge.ErrCodeMalformedCoordinate:
	case purge.ErrCodeInvalidMask:
		// The mask never parses, so there is no slot to force.
		return validateAssertions(s.Assertions, true)
	default:
		return fmt.Errorf("unknown expect_error %q", s.ExpectError)
	}

	if s.Mask != "" {
		if _, err := purge.ParseMask(s.Mask); err != nil {
			return fmt.Errorf("mask: %w", err)
		}
	}

	if s.Slot == nil {
		return fmt.Errorf("slot is required")
	}
	if _, ok := drawIndex(purge.Mask(s.Mask), *s.Slot); !ok {
		return fmt.Errorf("slot %d is not allowed by mask %q", *s.Slot, s.Mask)
	}

	return validateAssertions(s.Assertions, s.ExpectError != "")
}

func validateAssertions(assertions []Assertion, failing bool) error {
	if len(assertions) == 0 && !failing {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, a := range assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertSlot, AssertOffset, AssertObjectStartX, AssertReverse, AssertProbeLines, AssertPurgeLines:
		if a.Value == nil {
			return fmt.Errorf("assertions[%d]: value is required for %s", index, a.Type)
		}
	case AssertLineEquals, AssertLineUnchanged:
		if a.Line < 1 {
			return fmt.Errorf("assertions[%d]: line must be positive for %s", index, a.Type)
		}
	case AssertFinalState:
		if a.State == "" {
			return fmt.Errorf("assertions[%d]: state is required for final_state", index)
		}
	case AssertUnchangedAfterPurge:
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
