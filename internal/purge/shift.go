package purge

import (
	"io"
	"log/slog"
)

// Options configures Shift.
type Options struct {
	// Mask restricts the eligible slots. Empty means all slots.
	Mask Mask

	// Rand drives slot selection. Required.
	Rand Rand

	// ShiftW enables the W-axis shift on probe lines.
	ShiftW bool

	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger
}

// Result describes one purge relocation.
type Result struct {
	Slot   int
	Offset float64

	// ObjectStartX is the first object's starting X, read from line
	// ObjectStartLine (1-based).
	ObjectStartX    float64
	ObjectStartLine int

	Reverse bool

	Rewrite *RewriteResult
}

// Lines returns the rewritten stream, or nil if the rewrite did not run.
func (r *Result) Lines() []string {
	if r == nil || r.Rewrite == nil {
		return nil
	}
	return r.Rewrite.Lines
}

// Shift selects a slot, analyzes the stream and rewrites it.
//
// If the analysis fails the returned Result is still non-nil with Slot and
// Offset populated, so callers can report the selection alongside the error.
func Shift(lines []string, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	slot := SelectSlot(opts.Mask, opts.Rand)
	res := &Result{Slot: slot, Offset: Offset(slot)}
	logger.Debug("purge slot selected",
		"slot", slot,
		"offset", res.Offset,
		"mask", string(opts.Mask),
	)

	startX, startLine, err := FindObjectStartX(lines)
	if err != nil {
		return res, err
	}
	res.ObjectStartX = startX
	res.ObjectStartLine = startLine
	res.Reverse = ReversePurge(startX, res.Offset)

	lower, upper := Window(res.Offset)
	logger.Debug("first object located",
		"x", startX,
		"line", startLine,
		"purge_lower", lower,
		"purge_upper", upper,
		"reverse", res.Reverse,
	)

	res.Rewrite = Rewrite(lines, RewriteOptions{
		Offset:  res.Offset,
		Reverse: res.Reverse,
		ShiftW:  opts.ShiftW,
	})

	rw := res.Rewrite
	if rw.PurgeStart == 0 {
		logger.Warn("no purge block found; every G1/G29 line was treated as a probe line",
			"probe_lines", rw.ProbeLines,
		)
	}
	logger.Debug("stream rewritten",
		"lines", len(rw.Lines),
		"probe_lines", rw.ProbeLines,
		"purge_lines", rw.PurgeLines,
		"purge_start", rw.PurgeStart,
		"purge_end", rw.PurgeEnd,
		"final_state", rw.Final.String(),
	)

	return res, nil
}
