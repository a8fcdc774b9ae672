package harness

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/purgeshift/internal/purge"
)

func intPtr(v int) *int { return &v }

const forwardInput = "G1 X42 Y-4 Z5\nG0 X10 Y-5\nG0 X15 E7\nG1 X170 Y10\nG1 X90 Y20 E1\n"

func TestRun_ForcesSlotUnderMask(t *testing.T) {
	result, err := Run(&Scenario{
		Name:  "masked",
		Mask:  "00101",
		Slot:  intPtr(4),
		Input: forwardInput,
	})
	require.NoError(t, err)
	require.True(t, result.Pass, "errors: %v", result.Errors)

	assert.Equal(t, 4, result.Shift.Slot)
	assert.Equal(t, float64(184), result.Shift.Offset)
	// X170 sits next to the lower bound of slot 4, so the purge is mirrored.
	assert.Equal(t, "G0 X240.0 Y-5\n", result.Output()[1])
}

func TestRun_EmptyMaskUsesSlotAsIndex(t *testing.T) {
	result, err := Run(&Scenario{Name: "all", Slot: intPtr(3), Input: forwardInput})
	require.NoError(t, err)
	require.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, 3, result.Shift.Slot)
}

func TestRun_UnexpectedError(t *testing.T) {
	result, err := Run(&Scenario{Name: "missing", Slot: intPtr(0), Input: "G0 X10 Y-5\n"})
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "unexpected error")
	assert.True(t, purge.IsObjectStartNotFound(result.Err))
	assert.Nil(t, result.Output())
}

func TestRun_ExpectedErrorNotRaised(t *testing.T) {
	result, err := Run(&Scenario{
		Name:        "succeeds",
		Slot:        intPtr(0),
		Input:       forwardInput,
		ExpectError: string(purge.ErrCodeObjectStartNotFound),
	})
	require.NoError(t, err)

	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[0], "expected error OBJECT_START_NOT_FOUND, run succeeded")
}

func TestRun_WrongErrorCode(t *testing.T) {
	result, err := Run(&Scenario{
		Name:        "wrong",
		Slot:        intPtr(0),
		Input:       "G0 X10 Y-5\n",
		ExpectError: string(purge.ErrCodeMalformedCoordinate),
	})
	require.NoError(t, err)

	assert.False(t, result.Pass)
	assert.Contains(t, result.Errors[0], "expected error MALFORMED_COORDINATE")
}

func TestRun_InvalidMask(t *testing.T) {
	result, err := Run(&Scenario{
		Name:        "bad mask",
		Mask:        "11",
		Input:       forwardInput,
		ExpectError: string(purge.ErrCodeInvalidMask),
	})
	require.NoError(t, err)

	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Nil(t, result.Shift)
}

func TestRun_UnreadableGCode(t *testing.T) {
	_, err := Run(&Scenario{
		Name:  "gone",
		Slot:  intPtr(0),
		GCode: filepath.Join(t.TempDir(), "gone.gcode"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load input")
}

func TestRun_AssertionFailuresAreCollected(t *testing.T) {
	result, err := Run(&Scenario{
		Name:  "wrong expectations",
		Slot:  intPtr(2),
		Input: forwardInput,
		Assertions: []Assertion{
			{Type: AssertReverse, Value: true},
			{Type: AssertLineEquals, Line: 2, Text: "G0 X148.0 Y-5"},
		},
	})
	require.NoError(t, err)

	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "Assertion failed: reverse")
	assert.Contains(t, result.Errors[1], `Actual: "G0 X102.0 Y-5"`)
}

func TestDrawIndex(t *testing.T) {
	idx, ok := drawIndex("01011", 3)
	assert.True(t, ok)
	assert.Equal(t, 1, idx)

	_, ok = drawIndex("01011", 0)
	assert.False(t, ok)

	idx, ok = drawIndex("", 4)
	assert.True(t, ok)
	assert.Equal(t, 4, idx)
}
