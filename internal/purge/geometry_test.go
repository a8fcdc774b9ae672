package purge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindObjectStartX(t *testing.T) {
	tests := []struct {
		name     string
		lines    []string
		wantX    float64
		wantLine int
	}{
		{
			name:     "first positive Y wins",
			lines:    []string{"G1 X42 Y-4 Z5\n", "G1 X80 Y10 F3000\n", "G1 X90 Y20\n"},
			wantX:    80,
			wantLine: 2,
		},
		{
			name:     "decimal coordinate",
			lines:    []string{"G1 X101.375 Y95.2 F10800\n"},
			wantX:    101.375,
			wantLine: 1,
		},
		{
			name:     "lower case command",
			lines:    []string{"g1 x12.5 y3\n"},
			wantX:    12.5,
			wantLine: 1,
		},
		{
			name:     "skips zero Y",
			lines:    []string{"G1 X5 Y0\n", "G1 X6 Y0.1\n"},
			wantX:    6,
			wantLine: 2,
		},
		{
			name:     "skips G1 without X first",
			lines:    []string{"G1 Y10 X20\n", "G1 X30 Y10\n"},
			wantX:    30,
			wantLine: 2,
		},
		{
			name:     "skips indented line",
			lines:    []string{"  G1 X20 Y10\n", "G1 X30 Y10\n"},
			wantX:    30,
			wantLine: 2,
		},
		{
			name:     "skips G0 moves",
			lines:    []string{"G0 X20 Y10\n", "G1 X30 Y10\n"},
			wantX:    30,
			wantLine: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, line, err := FindObjectStartX(tt.lines)
			require.NoError(t, err)
			assert.Equal(t, tt.wantX, x)
			assert.Equal(t, tt.wantLine, line)
		})
	}
}

func TestFindObjectStartX_NotFound(t *testing.T) {
	lines := []string{
		"G28\n",
		"G1 X42 Y-4 Z5\n",
		"G0 X10 Y-5\n",
		"G1 Z0.2\n",
	}

	_, _, err := FindObjectStartX(lines)
	require.Error(t, err)
	assert.True(t, IsObjectStartNotFound(err))
	assert.Contains(t, err.Error(), "Syntax may have changed")
}

func TestFindObjectStartX_Empty(t *testing.T) {
	_, _, err := FindObjectStartX(nil)
	assert.True(t, IsObjectStartNotFound(err))
}

func TestFindObjectStartX_MalformedX(t *testing.T) {
	_, _, err := FindObjectStartX([]string{"G1 Z1\n", "G1 Xabc Y10\n"})
	require.Error(t, err)
	assert.True(t, IsMalformedCoordinate(err))

	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 2, pe.Line)
}

func TestWindow(t *testing.T) {
	lower, upper := Window(92)
	assert.Equal(t, 92.0, lower)
	assert.Equal(t, 158.0, upper)
}

func TestReversePurge(t *testing.T) {
	tests := []struct {
		name   string
		startX float64
		offset float64
		want   bool
	}{
		// A forward purge ends at the upper bound; reverse when the
		// object is nearer the lower one.
		{name: "near lower bound", startX: 80, offset: 92, want: true},
		{name: "near upper bound", startX: 170, offset: 92, want: false},
		{name: "equidistant stays forward", startX: 125, offset: 92, want: false},
		{name: "inside window near lower", startX: 10, offset: 0, want: true},
		{name: "far right of slot 0", startX: 200, offset: 0, want: false},
		{name: "left of slot 4", startX: 20, offset: 184, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReversePurge(tt.startX, tt.offset))
		})
	}
}
