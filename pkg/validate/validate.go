// Package validate scans emitted G-code text for safety-rule
// violations. Checks are static and stateless: identical input always
// yields the identical warning set, and validation never fails hard.
package validate

import (
	"fmt"

	"github.com/nikomatt69/cadcamfun-sub003/pkg/gcode"
)

// safeHeight is the Z a program must rapid back to at least once.
const safeHeight = 10.0

// maxRapidDrop is the largest tolerated Z drop between consecutive
// rapid moves before flagging a collision risk.
const maxRapidDrop = 5.0

// Warning is a single validation finding.
type Warning struct {
	Rule    string // stable rule identifier
	Line    int    // 1-based program line, 0 for program-level findings
	Message string
}

func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("[%s] line %d: %s", w.Rule, w.Line, w.Message)
	}
	return fmt.Sprintf("[%s] %s", w.Rule, w.Message)
}

// Check runs all safety rules over the program text in a fixed order.
func Check(text string) []Warning {
	ins := gcode.Parse(text)

	var warnings []Warning
	warnings = append(warnings, checkSafeHeightReturn(ins)...)
	warnings = append(warnings, checkSpindleStop(ins)...)
	warnings = append(warnings, checkCoolantOff(ins)...)
	warnings = append(warnings, checkRapidDrops(ins)...)
	return warnings
}

// checkSafeHeightReturn requires at least one rapid retract above the
// safe height.
func checkSafeHeightReturn(ins []gcode.Instruction) []Warning {
	for _, in := range ins {
		if in.IsRapid() && in.Z != nil && *in.Z > safeHeight {
			return nil
		}
	}
	return []Warning{{
		Rule:    "safe-height",
		Message: fmt.Sprintf("no rapid return above safe height Z%.0f", safeHeight),
	}}
}

// checkSpindleStop requires a spindle stop command.
func checkSpindleStop(ins []gcode.Instruction) []Warning {
	for _, in := range ins {
		if in.Code == "M5" {
			return nil
		}
	}
	return []Warning{{
		Rule:    "spindle-stop",
		Message: "program never stops the spindle (M5 missing)",
	}}
}

// checkCoolantOff requires a coolant off command.
func checkCoolantOff(ins []gcode.Instruction) []Warning {
	for _, in := range ins {
		if in.Code == "M9" {
			return nil
		}
	}
	return []Warning{{
		Rule:    "coolant-off",
		Message: "program never switches coolant off (M9 missing)",
	}}
}

// checkRapidDrops flags rapid-to-rapid Z drops large enough to risk
// driving the tool into material.
func checkRapidDrops(ins []gcode.Instruction) []Warning {
	var warnings []Warning
	var lastRapidZ *float64

	for i, in := range ins {
		if !in.IsRapid() {
			if in.IsMotion() {
				lastRapidZ = nil // cutting moves reset the rapid chain
			}
			continue
		}
		if in.Z != nil {
			if lastRapidZ != nil && *lastRapidZ-*in.Z > maxRapidDrop {
				warnings = append(warnings, Warning{
					Rule:    "rapid-plunge",
					Line:    i + 1,
					Message: fmt.Sprintf("rapid drops %s below previous rapid, collision risk", gcode.Num(*lastRapidZ-*in.Z)),
				})
			}
			lastRapidZ = in.Z
		}
	}
	return warnings
}
