// Package purge relocates the slicer's fixed purge line to one of five slots
// along the X axis and keeps the surrounding toolpath consistent with it.
//
// The transformation runs in three strictly sequential stages over an
// in-memory slice of G-code lines:
//
//  1. SelectSlot picks a slot index in [0,4], optionally restricted by a Mask.
//     The slot maps to an X offset of slot*SlotSpacing.
//  2. FindObjectStartX scans once for the first object's starting X, and
//     ReversePurge decides whether the purge line should be mirrored inside
//     its window so that it ends nearer to that point.
//  3. Rewrite makes one forward pass with a monotonic state machine
//     (outside purge block, in purge block, purge processed) and shifts the
//     X tokens of probe lines and purge lines.
//
// Shift chains the three stages and returns a Result.
//
// PURGE GEOMETRY:
//
// The stock purge starts at X0 and ends at X51, but is only on the bed from
// X15 to X51. Mirroring must keep the on-bed positions, so the full window is
// PurgeSpan (66) wide. Slots are SlotSpacing (46) apart, which fits five
// windows on the bed.
//
// Nothing in this package touches the filesystem or global state. Randomness
// is injected through Rand so slot selection can be reproduced in tests.
package purge
