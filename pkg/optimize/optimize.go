// Package optimize removes redundant motion from emitted G-code text.
package optimize

import (
	"strings"

	"github.com/nikomatt69/cadcamfun-sub003/pkg/gcode"
)

// state is the explicit accumulator threaded through the optimization
// fold: the last known position and the currently deferred Z-lift.
type state struct {
	x, y, z  *float64
	deferred string // pending Z-only rapid, empty when none
}

// Optimize collapses redundant rapid Z-only moves in a single forward
// pass. A rapid that only raises Z is deferred rather than emitted;
// consecutive deferred lifts collapse to the last one. The pending
// lift is re-emitted ahead of the next line, so relative ordering of
// everything else is preserved. The pass is idempotent: optimizing
// already-optimized text yields identical text.
func Optimize(text string) string {
	var b strings.Builder
	st := state{}

	for _, in := range gcode.Parse(text) {
		st = step(&b, st, in)
	}
	if st.deferred != "" {
		b.WriteString(st.deferred)
		b.WriteString("\n")
	}
	return b.String()
}

func step(b *strings.Builder, st state, in gcode.Instruction) state {
	// A lone rising Z rapid is deferred; a newer one replaces it.
	if !in.Opaque && in.IsRapid() && in.X == nil && in.Y == nil && in.Z != nil &&
		(st.z == nil || *in.Z >= *st.z) {
		st.deferred = in.Raw
		st.z = in.Z
		return st
	}

	if st.deferred != "" {
		b.WriteString(st.deferred)
		b.WriteString("\n")
		st.deferred = ""
	}
	if !in.Opaque && in.IsMotion() {
		st = track(st, in)
	}
	b.WriteString(in.Raw)
	b.WriteString("\n")
	return st
}

// track updates the last known position from a motion instruction.
func track(st state, in gcode.Instruction) state {
	if in.X != nil {
		st.x = in.X
	}
	if in.Y != nil {
		st.y = in.Y
	}
	if in.Z != nil {
		st.z = in.Z
	}
	return st
}
