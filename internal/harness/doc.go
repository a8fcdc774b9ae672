// Package harness runs end-to-end purge scenarios described in YAML.
//
// A scenario supplies the input G-code, the inclusion mask and the slot the
// selector must land on, then asserts on the plan and the rewritten stream.
//
// # Scenario Format
//
//	name: object_near_upper_bound
//	description: "Object at X170 keeps the purge forward in slot 2"
//	mask: "11111"
//	slot: 2
//	input: |
//	  G0 X10 Y-5
//	  G1 X170 Y10
//	assertions:
//	  - type: reverse
//	    value: false
//	  - type: line_equals
//	    line: 1
//	    text: "G0 X102.0 Y-5"
//
// Instead of input, gcode names a file relative to the scenario file.
//
// A scenario that expects the pipeline to fail sets expect_error to one of
// the purge error codes (INVALID_MASK, OBJECT_START_NOT_FOUND,
// MALFORMED_COORDINATE). Failing scenarios produce no output stream.
//
// # Assertion Types
//
//   - slot, offset, object_start_x, reverse: compare a planning value
//   - line_equals: line N of the output (1-based, terminator stripped) equals text
//   - line_unchanged: line N of the output equals the input line
//   - unchanged_after_purge: every line after the purge exit equals the input
//   - final_state: the rewriter's state after the last line
//   - probe_lines, purge_lines: number of rewritten lines of each kind
//
// Every successful run is also checked for a preserved line count.
//
// # Deterministic Testing
//
// The forced slot is translated into the index the selector draws, and fed
// through testutil.FixedRand, so scenarios never depend on a seed.
package harness
