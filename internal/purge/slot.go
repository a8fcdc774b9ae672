package purge

import (
	"math/rand/v2"
	"regexp"
	"strings"
)

const (
	// SlotCount is the number of discrete purge positions.
	SlotCount = 5

	// SlotSpacing is the X distance between neighbouring slots.
	SlotSpacing = 46

	// PurgeSpan is the width of the purge window, including the 15mm that is
	// off the bed.
	PurgeSpan = 66

	// DefaultMask makes every slot eligible.
	DefaultMask Mask = "11111"
)

var maskPattern = regexp.MustCompile(`^[01]{5}$`)

// Mask is an inclusion mask: one binary digit per slot, '1' meaning eligible.
// The zero value means no mask was given and all slots are eligible.
type Mask string

// ParseMask validates s as five binary digits containing at least one '1'.
func ParseMask(s string) (Mask, error) {
	if !maskPattern.MatchString(s) || !strings.Contains(s, "1") {
		return "", NewMaskError(s)
	}
	return Mask(s), nil
}

// Slots returns the eligible slot indices in ascending order.
func (m Mask) Slots() []int {
	if m == "" {
		return []int{0, 1, 2, 3, 4}
	}
	slots := make([]int, 0, SlotCount)
	for i, bit := range m {
		if bit == '1' {
			slots = append(slots, i)
		}
	}
	return slots
}

// Rand is the randomness source consumed by SelectSlot.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// NewRand returns a PCG-backed generator; equal seeds give equal selections.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// SelectSlot picks a slot uniformly among those m allows.
// m must be empty or have passed ParseMask.
func SelectSlot(m Mask, rng Rand) int {
	if m == "" {
		return rng.IntN(SlotCount)
	}
	slots := m.Slots()
	return slots[rng.IntN(len(slots))]
}

// Offset returns the X offset for slot.
func Offset(slot int) float64 {
	return float64(slot * SlotSpacing)
}
