package purge

import (
	"math"
	"strconv"
	"strings"
)

// FindObjectStartX returns the X coordinate where the first object starts.
//
// It looks for the first line beginning with "G1 X" that carries a positive Y,
// and reads X from the second whitespace-delimited field. X must be the first
// argument on that line; this is the layout the slicer emits and the
// direction decision depends on it.
func FindObjectStartX(lines []string) (float64, int, error) {
	for i, line := range lines {
		if !strings.HasPrefix(strings.ToUpper(line), "G1 X") {
			continue
		}
		y, ok := firstY(line)
		if !ok || y <= 0 {
			continue
		}
		fields := strings.Fields(line)
		x, err := strconv.ParseFloat(fields[1][1:], 64)
		if err != nil {
			return 0, i + 1, NewMalformedCoordinateError(i+1, fields[1])
		}
		return x, i + 1, nil
	}
	return 0, 0, NewObjectStartNotFoundError()
}

// Window returns the lower and upper X bounds of the purge window at offset.
func Window(offset float64) (lower, upper float64) {
	return offset, offset + PurgeSpan
}

// ReversePurge reports whether the purge line should be mirrored inside its
// window. A forward purge finishes at the upper end, so it is reversed when
// startX is strictly farther from the upper bound than from the lower one.
// Ties keep the forward direction.
func ReversePurge(startX, offset float64) bool {
	lower, upper := Window(offset)
	return math.Abs(startX-upper) > math.Abs(startX-lower)
}
