package purge

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/purgeshift/internal/testutil"
)

// purgeFixture builds a minimal stream: one probe line, a purge block that
// starts at G0 X10 Y-5, and a first object starting at objectX.
func purgeFixture(objectX string) []string {
	return []string{
		"G1 X42 Y-4 Z5\n",
		"G0 X10 Y-5\n",
		"G0 X15 E7\n",
		"G1 X" + objectX + " Y10\n",
	}
}

func TestShift_ObjectNearLowerBoundReverses(t *testing.T) {
	res, err := Shift(purgeFixture("80"), Options{Mask: DefaultMask, Rand: testutil.NewFixedRand(2)})
	require.NoError(t, err)

	assert.Equal(t, 2, res.Slot)
	assert.Equal(t, 92.0, res.Offset)
	assert.Equal(t, 80.0, res.ObjectStartX)
	assert.Equal(t, 4, res.ObjectStartLine)
	assert.True(t, res.Reverse)
	assert.Equal(t, "G0 X148.0 Y-5\n", res.Lines()[1])
	assert.Equal(t, "G0 X143.0 E7\n", res.Lines()[2])
}

func TestShift_ObjectNearUpperBoundStaysForward(t *testing.T) {
	res, err := Shift(purgeFixture("170"), Options{Mask: DefaultMask, Rand: testutil.NewFixedRand(2)})
	require.NoError(t, err)

	assert.False(t, res.Reverse)
	assert.Equal(t, "G0 X102.0 Y-5\n", res.Lines()[1])
	assert.Equal(t, "G0 X107.0 E7\n", res.Lines()[2])
}

func TestShift_EquidistantStaysForward(t *testing.T) {
	res, err := Shift(purgeFixture("125"), Options{Mask: DefaultMask, Rand: testutil.NewFixedRand(2)})
	require.NoError(t, err)

	assert.False(t, res.Reverse)
	assert.Equal(t, "G0 X102.0 Y-5\n", res.Lines()[1])
}

func TestShift_ObjectStartNotFound(t *testing.T) {
	lines := []string{"G1 X42 Y-4\n", "G0 X10 Y-5\n"}

	res, err := Shift(lines, Options{Rand: testutil.NewFixedRand(1)})
	require.Error(t, err)
	assert.True(t, IsObjectStartNotFound(err))

	// The selection is still reported.
	require.NotNil(t, res)
	assert.Equal(t, 1, res.Slot)
	assert.Equal(t, 46.0, res.Offset)
	assert.Nil(t, res.Lines())
}

func TestShift_ShiftW(t *testing.T) {
	lines := []string{"G29 P1 X30 Y0 W32\n", "G1 X80 Y10\n"}

	res, err := Shift(lines, Options{Mask: "00010", Rand: testutil.NewFixedRand(0), ShiftW: true})
	require.NoError(t, err)
	assert.Equal(t, "G29 P1 X168.0 Y0 W170.0\n", res.Lines()[0])
}

func TestShift_WarnsWithoutPurgeBlock(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Shift([]string{"G1 X80 Y10\n"}, Options{Rand: testutil.NewFixedRand(0), Logger: logger})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "no purge block found")
	assert.Contains(t, out, "purge slot selected")
	assert.Contains(t, out, "stream rewritten")
}

func TestShift_SeededRandIsReproducible(t *testing.T) {
	a, err := Shift(purgeFixture("80"), Options{Mask: DefaultMask, Rand: NewRand(99)})
	require.NoError(t, err)
	b, err := Shift(purgeFixture("80"), Options{Mask: DefaultMask, Rand: NewRand(99)})
	require.NoError(t, err)

	assert.Equal(t, a.Slot, b.Slot)
	assert.Equal(t, a.Lines(), b.Lines())
}
