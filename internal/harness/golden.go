package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/purgeshift/internal/gcodefile"
)

// RunWithGolden executes a scenario, fails t on any scenario error, and
// compares the rewritten stream against testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Scenarios that expect an error have no output and skip the comparison.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	for _, msg := range result.Errors {
		t.Error(msg)
	}

	if scenario.ExpectError == "" && result.Output() != nil {
		AssertGolden(t, scenario.Name, result)
	}
	return result, nil
}

// AssertGolden compares the result's output stream against a golden file
// without re-running the scenario.
func AssertGolden(t *testing.T, name string, result *Result) {
	t.Helper()

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, gcodefile.Join(result.Output()))
}
