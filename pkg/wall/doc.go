// Package wall scatters a fixed set of targets over a grid of slots to build
// a "wall of photos" layout.
//
// # Overview
//
// A [Randomizer] assigns every target a unique slot picked through a
// uniformly shuffled permutation, then perturbs the slot's anchor with
// jitter and draws a rotation angle:
//
//	rot = uniform(-10, 10)
//	x   = slot.X + uniform(-30, 30)
//	y   = slot.Y + uniform(-20, 50)
//
// The result is written to each target as an inline style:
//
//	transform:rotate(<rot>deg);top:<y>px;left:<x>px;
//
// # Slots
//
// [DefaultSlots] returns the 28 predefined anchors of a 7×4 grid with
// columns at 50, 380, 730, 1080, 1430, 1780, 2130 and rows at 50, 360, 700,
// 1040. Slots are ordered column by column, so slot 5 is (380, 360).
//
// # Randomness
//
// All draws go through a [Source]. *rand.Rand from math/rand/v2 satisfies
// it; [NewSource] builds a seeded PCG generator for reproducible layouts.
// Without [WithSource] each Randomizer seeds itself from the runtime.
//
// # Overflow
//
// With more targets than slots the default [OverflowSkip] policy places as
// many targets as there are slots and leaves the rest untouched.
// [OverflowError] rejects the call with a TOO_MANY_TARGETS error instead and
// mutates nothing. Zero targets is a no-op, never an error.
package wall
