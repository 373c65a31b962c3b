package gcode

import (
	"fmt"
	"strings"
)

// Move is a dialect-neutral motion target. Nil fields are absent
// operands and are omitted from the emitted line.
type Move struct {
	X, Y, Z *float64
	F       *float64
}

// Float is a convenience for building optional operands.
func Float(v float64) *float64 { return &v }

// Num formats a coordinate or feed value. All dialects emit three
// decimals.
func Num(v float64) string {
	s := fmt.Sprintf("%.3f", v)
	if s == "-0.000" {
		return "0.000"
	}
	return s
}

// Comment renders text as a trailing-style comment line.
func Comment(text string) string {
	return "; " + text
}

// word renders one optional operand, leading space included.
func word(letter string, v *float64) string {
	if v == nil {
		return ""
	}
	return " " + letter + Num(*v)
}

// Header emits the program prologue: units, absolute positioning,
// spindle start and optional coolant.
func (d Dialect) Header(spindleSpeed float64, coolant bool) string {
	var b strings.Builder
	switch d {
	case DialectHeidenhain:
		b.WriteString("BEGIN PGM TOOLPATH MM\n")
		fmt.Fprintf(&b, "TOOL CALL 1 Z S%.0f\n", spindleSpeed)
		b.WriteString("M3\n")
	case DialectFanuc:
		b.WriteString("%\n")
		b.WriteString("O0001 ; toolpath program\n")
		b.WriteString("G21 G90 G17\n")
		b.WriteString("G54\n")
		fmt.Fprintf(&b, "M3 S%.0f\n", spindleSpeed)
	default:
		b.WriteString("; toolpath program\n")
		b.WriteString("G21 ; millimeters\n")
		b.WriteString("G90 ; absolute positioning\n")
		b.WriteString("G17 ; XY plane\n")
		fmt.Fprintf(&b, "M3 S%.0f ; spindle on\n", spindleSpeed)
	}
	if coolant {
		b.WriteString("M8 ; coolant on\n")
	}
	return b.String()
}

// Footer emits the program epilogue: retract, spindle stop, coolant
// off, program end.
func (d Dialect) Footer() string {
	switch d {
	case DialectHeidenhain:
		return "L Z50.000 R0 FMAX\nM5\nM9\nEND PGM TOOLPATH MM\n"
	case DialectFanuc:
		return "G0 Z50.000\nM5\nM9\nM30\n%\n"
	default:
		return "G0 Z50.000 ; retract\nM5 ; spindle stop\nM9 ; coolant off\nM30 ; program end\n"
	}
}

// Rapid emits a positioning move.
func (d Dialect) Rapid(m Move) string {
	if d == DialectHeidenhain {
		return "L" + word("X", m.X) + word("Y", m.Y) + word("Z", m.Z) + " R0 FMAX"
	}
	return "G0" + word("X", m.X) + word("Y", m.Y) + word("Z", m.Z)
}

// Linear emits a cutting move at the move's feed rate.
func (d Dialect) Linear(m Move) string {
	if d == DialectHeidenhain {
		return "L" + word("X", m.X) + word("Y", m.Y) + word("Z", m.Z) + word("F", m.F)
	}
	return "G1" + word("X", m.X) + word("Y", m.Y) + word("Z", m.Z) + word("F", m.F)
}

// Circular emits an arc to (endX, endY) around the center offset
// (centerI, centerJ) relative to the arc start point. Heidenhain takes
// an absolute circle center; it is reconstructed from the end point,
// which is exact whenever the arc closes on its start.
func (d Dialect) Circular(endX, endY, centerI, centerJ float64, clockwise bool, feed float64) string {
	if d == DialectHeidenhain {
		dir := "DR+"
		if clockwise {
			dir = "DR-"
		}
		return "CC X" + Num(endX+centerI) + " Y" + Num(endY+centerJ) + "\n" +
			"C X" + Num(endX) + " Y" + Num(endY) + " " + dir + " F" + Num(feed)
	}
	code := "G3"
	if clockwise {
		code = "G2"
	}
	return code + " X" + Num(endX) + " Y" + Num(endY) +
		" I" + Num(centerI) + " J" + Num(centerJ) + " F" + Num(feed)
}

// Drill emits a canned drilling cycle at (x, y). A positive dwell
// selects the peck-with-dwell form; Heidenhain always emits a
// Q-parameterized cycle definition block.
func (d Dialect) Drill(x, y, depth, retract, feed, dwell float64) string {
	if d == DialectHeidenhain {
		var b strings.Builder
		b.WriteString("CYCL DEF 200 DRILLING\n")
		fmt.Fprintf(&b, "Q200=%s ;SET-UP CLEARANCE\n", Num(retract))
		fmt.Fprintf(&b, "Q201=%s ;DEPTH\n", Num(-depth))
		fmt.Fprintf(&b, "Q206=%s ;FEED RATE FOR PLUNGING\n", Num(feed))
		fmt.Fprintf(&b, "Q202=%s ;PLUNGING DEPTH\n", Num(depth))
		fmt.Fprintf(&b, "Q211=%s ;DWELL TIME AT DEPTH\n", Num(dwell))
		fmt.Fprintf(&b, "L X%s Y%s R0 FMAX M99", Num(x), Num(y))
		return b.String()
	}
	if dwell > 0 {
		// Peck cycle with dwell; peck a third of the depth per pass.
		return "G83 X" + Num(x) + " Y" + Num(y) + " Z" + Num(-depth) +
			" R" + Num(retract) + " Q" + Num(depth/3) + " P" + Num(dwell) +
			" F" + Num(feed) + "\nG80"
	}
	return "G81 X" + Num(x) + " Y" + Num(y) + " Z" + Num(-depth) +
		" R" + Num(retract) + " F" + Num(feed) + "\nG80"
}

// Contour emits a contour-milling cycle preamble. Generic and Fanuc
// controllers have no canned contour cycle, so the parameters are
// recorded as a comment ahead of the explicit per-level moves.
func (d Dialect) Contour(depth, stepDown, feed float64) string {
	if d == DialectHeidenhain {
		var b strings.Builder
		b.WriteString("CYCL DEF 25 CONTOUR TRAIN\n")
		fmt.Fprintf(&b, "Q1=%s ;MILLING DEPTH\n", Num(-depth))
		fmt.Fprintf(&b, "Q10=%s ;PLUNGING DEPTH\n", Num(-stepDown))
		fmt.Fprintf(&b, "Q12=%s ;FEED RATE", Num(feed))
		return b.String()
	}
	return Comment(fmt.Sprintf("contour depth=%s stepdown=%s feed=%s",
		Num(depth), Num(stepDown), Num(feed)))
}
