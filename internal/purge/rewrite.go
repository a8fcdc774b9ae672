package purge

import "strings"

// State is the position of the rewriter relative to the purge block.
// Transitions only move forward: Outside -> InPurge -> Processed.
type State int

const (
	// StateOutsidePurge covers the probing moves before the purge block.
	StateOutsidePurge State = iota
	// StateInPurge is entered on the first G0 with a negative Y.
	StateInPurge
	// StatePurgeProcessed is entered on the first G1 with a positive Y inside
	// the purge block. Nothing is rewritten after it.
	StatePurgeProcessed
)

// String returns a short name for logging.
func (s State) String() string {
	switch s {
	case StateOutsidePurge:
		return "outside_purge"
	case StateInPurge:
		return "in_purge"
	case StatePurgeProcessed:
		return "purge_processed"
	default:
		return "unknown"
	}
}

// RewriteOptions configures a rewrite pass.
type RewriteOptions struct {
	// Offset is the X offset of the chosen slot.
	Offset float64

	// Reverse mirrors purge-line X coordinates inside the purge window.
	Reverse bool

	// ShiftW also moves W tokens on probe lines by Offset. Off by default:
	// W shifting is not part of the stock behavior.
	ShiftW bool
}

// RewriteResult holds the rewritten stream and what the pass observed.
type RewriteResult struct {
	Lines []string

	// ProbeLines and PurgeLines count lines whose content changed.
	ProbeLines int
	PurgeLines int

	// PurgeStart and PurgeEnd are 1-based line numbers of the purge block
	// entry and exit lines, or 0 if the transition never happened.
	PurgeStart int
	PurgeEnd   int

	// Final is the state after the last line.
	Final State
}

type rewriter struct {
	state  State
	probe  []LineTransform
	purge  LineTransform
	result *RewriteResult
}

// Rewrite makes a single forward pass over lines and returns a new slice of
// the same length. The input slice is not modified.
//
// Probe lines (G1/G29 before the purge block) get their X tokens shifted by
// the offset. Inside the purge block, G0 lines get their X tokens shifted, or
// mirrored when opts.Reverse is set. The entry line itself is a purge line.
func Rewrite(lines []string, opts RewriteOptions) *RewriteResult {
	rw := &rewriter{
		state:  StateOutsidePurge,
		probe:  []LineTransform{ShiftX(opts.Offset)},
		purge:  ShiftX(opts.Offset),
		result: &RewriteResult{Lines: make([]string, len(lines))},
	}
	if opts.ShiftW {
		rw.probe = append(rw.probe, ShiftW(opts.Offset))
	}
	if opts.Reverse {
		rw.purge = MirrorX(opts.Offset)
	}

	for i, line := range lines {
		rw.result.Lines[i] = rw.next(i+1, line)
	}
	rw.result.Final = rw.state
	return rw.result
}

func (rw *rewriter) next(lineNo int, line string) string {
	if rw.state == StatePurgeProcessed {
		return line
	}

	cmd := strings.ToUpper(strings.TrimSpace(line))
	isG0 := strings.HasPrefix(cmd, "G0")
	isG1 := strings.HasPrefix(cmd, "G1")

	if rw.state == StateOutsidePurge {
		if isG0 {
			if y, ok := firstY(line); ok && y < 0 {
				rw.state = StateInPurge
				rw.result.PurgeStart = lineNo
			}
		} else if isG1 || strings.HasPrefix(cmd, "G29") {
			out := line
			for _, t := range rw.probe {
				out = t(out)
			}
			if out != line {
				rw.result.ProbeLines++
			}
			line = out
		}
	}

	// Not an else branch: the entry line is also the first purge line.
	if rw.state == StateInPurge {
		if isG0 {
			out := rw.purge(line)
			if out != line {
				rw.result.PurgeLines++
			}
			line = out
		}
		if isG1 {
			if y, ok := firstY(line); ok && y > 0 {
				rw.state = StatePurgeProcessed
				rw.result.PurgeEnd = lineNo
			}
		}
	}

	return line
}
