package purge

import (
	"regexp"
	"strconv"
)

// Axis tokens may be negative so the same patterns work for other printers'
// purge procedures.
var (
	xPattern = regexp.MustCompile(`(?i)\bX(-?\d+\.?\d*)`)
	yPattern = regexp.MustCompile(`(?i)\bY(-?\d+\.?\d*)`)
	wPattern = regexp.MustCompile(`(?i)\bW(-?\d+\.?\d*)`)
)

// LineTransform rewrites a single G-code line.
type LineTransform func(line string) string

// ShiftX returns a transform that moves every X token on a line by offset.
func ShiftX(offset float64) LineTransform {
	return func(line string) string {
		return substitute(line, xPattern, 'X', func(x float64) float64 { return x + offset })
	}
}

// MirrorX returns a transform that reflects every X token inside the purge
// window at offset.
func MirrorX(offset float64) LineTransform {
	return func(line string) string {
		return substitute(line, xPattern, 'X', func(x float64) float64 { return offset + PurgeSpan - x })
	}
}

// ShiftW returns a transform that moves every W token on a line by offset.
func ShiftW(offset float64) LineTransform {
	return func(line string) string {
		return substitute(line, wPattern, 'W', func(w float64) float64 { return w + offset })
	}
}

// substitute applies fn to the value of every token re matches. Rewritten
// values are rendered with one decimal digit.
func substitute(line string, re *regexp.Regexp, axis byte, fn func(float64) float64) string {
	return re.ReplaceAllStringFunc(line, func(tok string) string {
		v, err := strconv.ParseFloat(tok[1:], 64)
		if err != nil {
			return tok
		}
		return FormatCoord(axis, fn(v))
	})
}

// FormatCoord renders an axis token such as "X102.0".
func FormatCoord(axis byte, v float64) string {
	return string(axis) + strconv.FormatFloat(v, 'f', 1, 64)
}

// firstY returns the value of the first Y token on line.
func firstY(line string) (float64, bool) {
	m := yPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	y, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return y, true
}
